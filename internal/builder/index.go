// internal/builder/index.go
package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gemgen/internal/config"
	"gemgen/internal/gemtext"
)

// Post is one blog entry as it appears on the generated index page.
type Post struct {
	Title string
	Date  string // normalized YYYY-MM-DD, or "" when the post has none
	Path  string // output-relative link target, e.g. "blog/my-post.gmi"
}

// CollectPosts scans the blog subdirectory of the content tree for post
// directories containing an index.md and returns them newest-first. Only the
// frontmatter is consulted; a post with no title falls back to its directory
// name. Sorting compares date strings lexicographically, so posts with
// missing or non-ISO dates sink to the bottom of the list.
func CollectPosts(contentDir string, site config.SiteConfig) ([]Post, error) {
	blogDir := filepath.Join(contentDir, site.BlogDir)
	entries, err := os.ReadDir(blogDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var posts []Post
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		indexFile := filepath.Join(blogDir, entry.Name(), "index.md")
		content, err := os.ReadFile(indexFile)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read post %s: %w", indexFile, err)
		}

		meta, _ := gemtext.Split(string(content))
		title := meta.Title()
		if title == "" {
			title = entry.Name()
		}

		posts = append(posts, Post{
			Title: title,
			Date:  meta.Date(),
			Path:  site.BlogDir + "/" + entry.Name() + ".gmi",
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

// BuildIndex writes the root index.gmi listing all blog posts newest-first.
func BuildIndex(outputDir, contentDir string, site config.SiteConfig) error {
	posts, err := CollectPosts(contentDir, site)
	if err != nil {
		return err
	}

	lines := []string{
		"# " + site.Title,
		"",
		site.Intro,
		"",
		"## " + site.PostsHeading,
		"",
	}
	for _, post := range posts {
		lines = append(lines, fmt.Sprintf("=> %s [%s] %s", post.Path, post.Date, post.Title))
	}

	indexPath := filepath.Join(outputDir, "index.gmi")
	if err := os.WriteFile(indexPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write index %s: %w", indexPath, err)
	}

	fmt.Printf("Created index: %s\n", indexPath)
	return nil
}
