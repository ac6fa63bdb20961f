package markdown

import (
	"regexp"
	"strings"
)

var (
	headingTagRe = regexp.MustCompile(`(?is)<(h[1-6])([^>]*)>(.*?)</(h[1-6])>`)
	idAttrRe     = regexp.MustCompile(`(?i)\sid\s*=`)
)

// EnsureHeadingIDs guarantees every h1..h6 element in the supplied HTML has
// an id attribute. Existing ids are left untouched; missing ones are
// synthesised from the heading's text content with HeadingID. The pass is
// idempotent: running it over already-processed HTML returns identical
// output.
func EnsureHeadingIDs(htmlText string) string {
	if !strings.Contains(strings.ToLower(htmlText), "<h") {
		return htmlText
	}

	return headingTagRe.ReplaceAllStringFunc(htmlText, func(match string) string {
		m := headingTagRe.FindStringSubmatch(match)
		if !strings.EqualFold(m[1], m[4]) {
			return match
		}
		if idAttrRe.MatchString(m[2]) {
			return match
		}
		id := HeadingID(m[3])
		return "<" + m[1] + ` id="` + id + `"` + m[2] + ">" + m[3] + "</" + m[4] + ">"
	})
}
