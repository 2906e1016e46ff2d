package gemtext

import (
	"testing"
	"time"
)

func TestSplit_NoFrontmatter(t *testing.T) {
	input := "# Just a heading\nSome text.\n"
	meta, body := Split(input)
	if len(meta) != 0 {
		t.Errorf("expected empty metadata, got %v", meta)
	}
	if body != input {
		t.Errorf("body = %q, want input unchanged", body)
	}
}

func TestSplit_FrontmatterAndBody(t *testing.T) {
	input := "---\ntitle: Hello\nsummary: Intro text\n---\n\n# Heading\n\nBody text.\n"
	meta, body := Split(input)
	if meta.Title() != "Hello" {
		t.Errorf("title = %q, want %q", meta.Title(), "Hello")
	}
	if meta.Summary() != "Intro text" {
		t.Errorf("summary = %q, want %q", meta.Summary(), "Intro text")
	}
	if body != "# Heading\n\nBody text." {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing closing delimiter", "---\ntitle: Unclosed\n\nBody.\n"},
		{"invalid yaml", "---\n: invalid: yaml: {{{\n---\nBody.\n"},
		{"bare delimiter only", "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body := Split(tt.input)
			if len(meta) != 0 {
				t.Errorf("expected empty metadata, got %v", meta)
			}
			// The whole original text becomes the body, not a
			// truncated remainder.
			if body != tt.input {
				t.Errorf("body = %q, want original input", body)
			}
		})
	}
}

func TestSplitStrict_DistinguishesBrokenFromAbsent(t *testing.T) {
	meta, _, err := SplitStrict("no frontmatter here")
	if meta != nil || err != nil {
		t.Errorf("absent: meta = %v, err = %v, want nil, nil", meta, err)
	}

	_, body, err := SplitStrict("---\n: invalid: yaml: {{{\n---\nBody.\n")
	if err == nil {
		t.Fatal("broken: expected a parse error")
	}
	if body != "---\n: invalid: yaml: {{{\n---\nBody.\n" {
		t.Errorf("broken: body = %q, want untouched input", body)
	}
}

func TestSplit_ExtraDelimitersStayInBody(t *testing.T) {
	input := "---\ntitle: T\n---\nBefore\n---\nAfter"
	_, body := Split(input)
	if body != "Before\n---\nAfter" {
		t.Errorf("body = %q, want later delimiters preserved", body)
	}
}

func TestSplit_EmptyBlock(t *testing.T) {
	meta, body := Split("---\n\n---\nBody.")
	if meta == nil || len(meta) != 0 {
		t.Errorf("meta = %v, want empty non-nil map", meta)
	}
	if body != "Body." {
		t.Errorf("body = %q, want %q", body, "Body.")
	}
}

func TestMetadata_Date(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{"absent", Metadata{}, ""},
		{"string passed through", Metadata{"date": "2024-01-02"}, "2024-01-02"},
		{"native timestamp formatted", Metadata{"date": time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)}, "2024-01-02"},
		{"other scalar stringified", Metadata{"date": 20240102}, "20240102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.Date(); got != tt.want {
				t.Errorf("Date() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplit_YAMLDateNormalizes(t *testing.T) {
	meta, _ := Split("---\ndate: 2024-01-02\n---\nBody.")
	if got := meta.Date(); got != "2024-01-02" {
		t.Errorf("Date() = %q, want %q", got, "2024-01-02")
	}
}

func TestSplit_UnknownKeysPreserved(t *testing.T) {
	meta, _ := Split("---\ntitle: T\ndraft: true\n---\nBody.")
	if _, ok := meta["draft"]; !ok {
		t.Error("expected unrecognized key to survive in the map")
	}
}
