// internal/gemtext/convert.go
package gemtext

import (
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,3})\s*(.+)$`)
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe    = regexp.MustCompile("`([^`]+)`")
	emojiRe   = regexp.MustCompile(`:\w+:`)
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// lineKind tags the single conversion rule that applies to a source line.
// Classification is first-match-wins in the order the constants are declared.
type lineKind int

const (
	lineFence lineKind = iota
	linePreformatted
	lineShortcode
	lineHeading
	lineBoldHeading
	lineListItem
	lineQuote
	linePlain
)

// lineClass is one classified source line with the captures its rewrite
// rule needs.
type lineClass struct {
	kind  lineKind
	text  string // rule-specific payload (heading text, item text, ...)
	level int    // heading level, 1-3
}

// classifyLine assigns exactly one rewrite rule to a source line. inCode is
// the only conversion state: inside a fenced block every non-fence line is
// preformatted and all other rules are suspended.
func classifyLine(line string, inCode bool) lineClass {
	stripped := strings.TrimSpace(line)

	if strings.HasPrefix(stripped, "```") {
		return lineClass{kind: lineFence}
	}
	if inCode {
		return lineClass{kind: linePreformatted, text: line}
	}
	if strings.Contains(line, "{{<") || strings.Contains(line, "{{%") {
		return lineClass{kind: lineShortcode}
	}
	// Gemtext has three heading levels. Four or more leading '#' would
	// still satisfy the greedy pattern, so reject them up front; such
	// lines fall through to plain handling.
	if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "####") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			return lineClass{kind: lineHeading, level: len(m[1]), text: m[2]}
		}
	}
	if strings.HasPrefix(stripped, "**") && strings.HasSuffix(stripped, "**") {
		text := ""
		if len(stripped) > 4 {
			text = stripped[2 : len(stripped)-2]
		}
		return lineClass{kind: lineBoldHeading, text: text}
	}
	if strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* ") {
		return lineClass{kind: lineListItem, text: stripped[2:]}
	}
	if strings.HasPrefix(stripped, ">") {
		return lineClass{kind: lineQuote, text: strings.TrimSpace(stripped[1:])}
	}
	return lineClass{kind: linePlain, text: line}
}

// destyle removes inline bold, italic and code markup in one non-recursive
// pass. Nested emphasis is not handled; the patterns never backtrack into
// each other's output.
func destyle(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	return text
}

// ConvertLinks pulls every [label](url) token out of a line and appends one
// "=> url label" gemtext link line per token, in source order. The plain
// text fragments around the tokens are joined with no separator, so link
// targets always float to the end of the line they appeared on.
func ConvertLinks(text string) string {
	matches := linkRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var plain strings.Builder
	links := make([]string, 0, len(matches))
	last := 0
	for _, m := range matches {
		plain.WriteString(text[last:m[0]])
		links = append(links, "=> "+text[m[4]:m[5]]+" "+text[m[2]:m[3]])
		last = m[1]
	}
	plain.WriteString(text[last:])

	return plain.String() + "\n" + strings.Join(links, "\n")
}

// Convert renders one document body to gemtext lines, preceded by the
// title/date/summary preamble drawn from its metadata.
func Convert(meta Metadata, body string) []string {
	var lines []string

	if title := meta.Title(); title != "" {
		lines = append(lines, "# "+title, "")
	}
	if date := meta.Date(); date != "" {
		lines = append(lines, "Data: "+date, "")
	}
	if summary := meta.Summary(); summary != "" {
		lines = append(lines, summary, "")
	}

	inCode := false
	for _, line := range strings.Split(body, "\n") {
		c := classifyLine(line, inCode)
		switch c.kind {
		case lineFence:
			// Language annotations are dropped; only the delimiter
			// survives.
			lines = append(lines, "```")
			inCode = !inCode
		case linePreformatted:
			lines = append(lines, c.text)
		case lineShortcode:
			// Hugo shortcodes take the whole line with them.
		case lineHeading:
			lines = append(lines, strings.Repeat("#", c.level)+" "+c.text)
		case lineBoldHeading:
			lines = append(lines, "## "+c.text)
		case lineListItem:
			lines = append(lines, "* "+destyle(c.text))
		case lineQuote:
			lines = append(lines, "> "+c.text)
		case linePlain:
			text := emojiRe.ReplaceAllString(destyle(c.text), "")
			lines = append(lines, ConvertLinks(text))
		}
	}

	return lines
}

// ConvertDocument is the whole pipeline for one raw source file: split the
// frontmatter, convert the body, join the gemtext lines.
func ConvertDocument(raw string) string {
	meta, body := Split(raw)
	return strings.Join(Convert(meta, body), "\n")
}
