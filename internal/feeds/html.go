package feeds

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces feed-supplied HTML to plain text. Script and style
// blocks are dropped entirely; block elements become paragraph breaks so
// content structure survives for the quality analyzer. Input that fails to
// parse is returned as-is.
func StripHTML(html string) string {
	if !strings.ContainsRune(html, '<') {
		return strings.TrimSpace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	doc.Find("p, br, div, li, h1, h2, h3, h4").AfterHtml("\n\n")

	text := doc.Text()

	// Collapse runs of blank lines left by nested block elements.
	lines := strings.Split(text, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
