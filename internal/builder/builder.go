// internal/builder/builder.go
package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gemgen/internal/config"
	"gemgen/internal/gemtext"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
}

// BuildSite converts every Markdown file under the content directory into a
// mirrored tree of gemtext files and writes the blog index. It returns the
// number of content files converted (the index page is not counted).
func BuildSite(outputDir, contentDir string, site config.SiteConfig, opts BuildOptions) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		fmt.Println("Cleaning destination directory...")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	filesConverted := 0
	if err := filepath.Walk(contentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(info.Name()) != ".md" {
			return nil
		}
		// Section pages are a source-tree convention, never converted.
		if info.Name() == "_index.md" {
			return nil
		}

		contentBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if !utf8.Valid(contentBytes) {
			return fmt.Errorf("content file is not valid UTF-8: %s", path)
		}

		relPath, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}

		outputPath := filepath.Join(outputDir, outputRelPath(relPath))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return err
		}

		gmi := gemtext.ConvertDocument(string(contentBytes))
		if err := os.WriteFile(outputPath, []byte(gmi), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}

		fmt.Printf("Converted: %s -> %s\n", path, outputPath)
		filesConverted++
		return nil
	}); err != nil {
		return 0, err
	}

	if err := BuildIndex(outputDir, contentDir, site); err != nil {
		return 0, err
	}
	return filesConverted, nil
}

// outputRelPath maps a content-relative source path to its gemtext
// counterpart. A post's index.md is named after its parent directory
// (blog/my-post/index.md -> blog/my-post.gmi); everything else maps
// path-for-path with the extension swapped.
func outputRelPath(relPath string) string {
	if filepath.Base(relPath) == "index.md" {
		dir := filepath.Dir(relPath)
		if dir != "." {
			return dir + ".gmi"
		}
	}
	return strings.TrimSuffix(relPath, ".md") + ".gmi"
}
