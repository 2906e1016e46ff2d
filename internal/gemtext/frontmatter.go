// internal/gemtext/frontmatter.go
package gemtext

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const fmDelim = "---"

// Metadata holds the YAML frontmatter of one content file. Only title, date
// and summary matter to the converter; everything else is kept but ignored.
type Metadata map[string]interface{}

// Title returns the frontmatter title, or "" when absent or not a string.
func (m Metadata) Title() string {
	if s, ok := m["title"].(string); ok {
		return s
	}
	return ""
}

// Summary returns the frontmatter summary, or "".
func (m Metadata) Summary() string {
	if s, ok := m["summary"].(string); ok {
		return s
	}
	return ""
}

// Date returns the frontmatter date normalized to YYYY-MM-DD. The YAML
// parser hands unquoted ISO dates back as time.Time and quoted ones as
// strings; strings are trusted as-is, anything else is stringified.
func (m Metadata) Date() string {
	switch v := m["date"].(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SplitStrict separates a YAML frontmatter block from the document body.
// Only the first two "---" delimiters are structural; any further "---" in
// the body is left alone. A missing block returns (nil, raw, nil); a present
// but unparseable block returns the error alongside the untouched input, so
// callers (and tests) can tell "no frontmatter" from "broken frontmatter".
func SplitStrict(raw string) (Metadata, string, error) {
	if !strings.HasPrefix(raw, fmDelim) {
		return nil, raw, nil
	}
	parts := strings.SplitN(raw, fmDelim, 3)
	if len(parts) < 3 {
		return nil, raw, nil
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, raw, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = Metadata{}
	}
	return meta, strings.TrimSpace(parts[2]), nil
}

// Split is the forgiving boundary used by the builder: broken frontmatter
// degrades to "no frontmatter", never an error.
func Split(raw string) (Metadata, string) {
	meta, body, err := SplitStrict(raw)
	if err != nil || meta == nil {
		return Metadata{}, raw
	}
	return meta, body
}
