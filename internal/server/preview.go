// internal/server/preview.go
package server

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlSanitizer = bluemonday.UGCPolicy()

// RenderPreview turns a generated gemtext document into a minimal HTML page
// so the capsule can be proofread in a regular browser. Line semantics
// follow gemtext: the leading token decides the element, and everything
// between preformatted toggles is emitted verbatim inside <pre>.
func RenderPreview(gmi string, unsafe bool) []byte {
	var b strings.Builder
	inPre := false
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(gmi, "\n") {
		if strings.HasPrefix(line, "```") {
			closeList()
			if inPre {
				b.WriteString("</pre>\n")
			} else {
				b.WriteString("<pre>\n")
			}
			inPre = !inPre
			continue
		}
		if inPre {
			b.WriteString(html.EscapeString(line))
			b.WriteString("\n")
			continue
		}

		switch {
		case strings.HasPrefix(line, "=>"):
			closeList()
			target, label := splitLink(strings.TrimSpace(line[2:]))
			fmt.Fprintf(&b, "<p><a href=%q>%s</a></p>\n",
				target, html.EscapeString(label))
		case strings.HasPrefix(line, "###"):
			closeList()
			fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(strings.TrimSpace(line[3:])))
		case strings.HasPrefix(line, "##"):
			closeList()
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(strings.TrimSpace(line[2:])))
		case strings.HasPrefix(line, "#"):
			closeList()
			fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(strings.TrimSpace(line[1:])))
		case strings.HasPrefix(line, "* "):
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(line[2:]))
		case strings.HasPrefix(line, ">"):
			closeList()
			fmt.Fprintf(&b, "<blockquote>%s</blockquote>\n",
				html.EscapeString(strings.TrimSpace(line[1:])))
		case strings.TrimSpace(line) == "":
			closeList()
		default:
			closeList()
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
		}
	}
	closeList()
	if inPre {
		b.WriteString("</pre>\n")
	}

	body := b.String()
	if !unsafe {
		body = htmlSanitizer.Sanitize(body)
	}

	return []byte("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n" +
		previewStyle + "</head>\n<body>\n" + body + liveReloadScript + "</body>\n</html>\n")
}

// splitLink separates a gemtext link line's target from its label. A link
// with no label uses the target as its visible text.
func splitLink(rest string) (target, label string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", ""
	}
	target = fields[0]
	label = strings.TrimSpace(rest[len(fields[0]):])
	if label == "" {
		label = target
	}
	return target, label
}

const previewStyle = `<style>
  body { max-width: 42rem; margin: 2rem auto; font-family: monospace; padding: 0 1rem; }
  pre { background: #f4f4f4; padding: 0.5rem; overflow-x: auto; }
  blockquote { border-left: 3px solid #999; margin-left: 0; padding-left: 1rem; color: #555; }
</style>
`
