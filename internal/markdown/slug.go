package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// slugFallback is emitted when a heading slugs down to nothing.
const slugFallback = "header"

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// HeadingID derives the anchor slug for a heading: markup is stripped, the
// text lower-cased, every run of characters outside [a-z0-9] collapses to a
// single hyphen, and leading/trailing hyphens are trimmed. Empty results
// yield the literal "header". The same algorithm feeds rendered heading IDs,
// tables of contents, and anchors, so the three always agree. Headings with
// identical text produce identical slugs; no uniqueness suffix is applied.
func HeadingID(text string) string {
	id := StripTags(text)
	id = strings.ToLower(id)
	id = nonAlnumRun.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return slugFallback
	}
	return id
}

// StripTags removes HTML markup from text, keeping only text content. The
// tokenizer also decodes entities, matching how a DOM reads textContent.
func StripTags(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
