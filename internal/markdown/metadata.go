package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-wiki/pkg/interfaces"
)

var firstH1Re = regexp.MustCompile(`(?m)^# (.+)$`)

// ExtractTitle returns the text of the first H1 in raw markdown, or the
// empty string when the document has none.
func ExtractTitle(content string) string {
	m := firstH1Re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractHeadings scans raw markdown for ATX headings and returns them in
// document order, each with its anchor slug. Headings are recomputed from
// raw content on every call; callers that need caching wrap this at the
// content layer.
func ExtractHeadings(content string) []interfaces.PageHeading {
	if content == "" {
		return nil
	}

	var headings []interfaces.PageHeading
	for _, m := range headingRe.FindAllStringSubmatch(content, -1) {
		text := strings.TrimSpace(m[2])
		headings = append(headings, interfaces.PageHeading{
			Level: len(m[1]),
			Text:  text,
			ID:    HeadingID(text),
		})
	}
	return headings
}
