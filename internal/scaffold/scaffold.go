// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// CreateNewSite lays out an empty capsule source tree.
func CreateNewSite(name string) error {
	fmt.Println("Scaffolding new capsule in:", name)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(name, path), []byte(content), 0644)
	}

	for _, dir := range []string{"content/blog", "archetypes"} {
		if err := mkdir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"capsule.yaml":          capsuleYamlContent,
		"archetypes/default.md": archetypeDefaultMdContent,
		"content/about.md":      aboutMdContent,
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}

	fmt.Println("Capsule scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  gemgen new post \"My first post\"")
	fmt.Println("  gemgen serve")
	return nil
}

// CreateNewPost creates content/blog/<slug>/index.md from the archetype.
func CreateNewPost(title, contentDir, blogDir string) error {
	slug := Slugify(title)
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from title %q", title)
	}

	path := filepath.Join(contentDir, blogDir, slug, "index.md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("post already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	archetypePath := filepath.Join("archetypes", "default.md")
	tmplBytes, err := os.ReadFile(archetypePath)
	if os.IsNotExist(err) {
		tmplBytes = []byte(archetypeDefaultMdContent)
	} else if err != nil {
		return fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}

	tmpl, err := template.New("archetype").Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title string
		Date  string
	}{
		Title: title,
		Date:  time.Now().Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render archetype: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}

	fmt.Println("Created:", path)
	return nil
}

// Slugify turns a post title into a directory name.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

const capsuleYamlContent = `# Gemini capsule configuration.
title: "Blog"
intro: "Witaj w wersji Gemini mojego bloga!"
posts_heading: "Posty"
content: "content"
output: "public_gemini"
blog_dir: "blog"
`

const archetypeDefaultMdContent = `---
title: "{{ .Title }}"
date: "{{ .Date }}"
summary: ""
---

`

const aboutMdContent = `---
title: "About"
---

This capsule is generated from Markdown sources with gemgen.
`
