// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds the configuration from the capsule.yaml file.
// The `yaml` tags are used by the parser to map file keys to struct fields.
type SiteConfig struct {
	Title        string `yaml:"title"`         // index page heading
	Intro        string `yaml:"intro"`         // index page intro line
	PostsHeading string `yaml:"posts_heading"` // heading above the post list
	ContentDir   string `yaml:"content"`       // markdown source root
	OutputDir    string `yaml:"output"`        // gemtext destination root
	BlogDir      string `yaml:"blog_dir"`      // posts subdirectory of content
}

// Default returns the configuration used when no capsule.yaml exists.
func Default() SiteConfig {
	return SiteConfig{
		Title:        "Blog",
		Intro:        "Witaj w wersji Gemini mojego bloga!",
		PostsHeading: "Posty",
		ContentDir:   "content",
		OutputDir:    "public_gemini",
		BlogDir:      "blog",
	}
}

// LoadSiteConfig reads the capsule config, falling back to defaults when the
// file does not exist. Fields left empty in the file keep their defaults, so
// a partial config is fine; a file that exists but fails to parse is an
// error, not a silent fallback.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	return cfg, nil
}
