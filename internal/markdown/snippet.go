package markdown

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	snippetPunctRe      = regexp.MustCompile("[#*`\\[\\]()]")
	snippetWhitespaceRe = regexp.MustCompile(`\s+`)
)

// SearchSnippet builds a plain-text excerpt of content centered on the
// first case-insensitive occurrence of query, with every occurrence inside
// the window wrapped in <mark> tags. The markup preserves the original
// casing of each match. All other text is HTML-escaped. length bounds the
// excerpt in runes; non-positive values fall back to 200.
func SearchSnippet(content, query string, length int) string {
	if length <= 0 {
		length = 200
	}

	clean := snippetPunctRe.ReplaceAllString(content, "")
	clean = strings.TrimSpace(snippetWhitespaceRe.ReplaceAllString(clean, " "))

	runes := []rune(clean)
	queryRunes := []rune(query)

	pos := foldIndex(runes, queryRunes, 0)
	if pos < 0 {
		if len(runes) > length {
			runes = runes[:length]
		}
		return html.EscapeString(string(runes)) + "..."
	}

	start := pos - length/2
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}

	snippet := highlightMatches(runes[start:end], queryRunes)
	if start > 0 {
		snippet = "..." + snippet
	}
	return snippet + "..."
}

// highlightMatches escapes window and wraps each case-insensitive
// occurrence of query in <mark>, keeping the matched text's casing.
func highlightMatches(window, query []rune) string {
	if len(query) == 0 {
		return html.EscapeString(string(window))
	}

	var b strings.Builder
	last := 0
	for {
		pos := foldIndex(window, query, last)
		if pos < 0 {
			break
		}
		b.WriteString(html.EscapeString(string(window[last:pos])))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(string(window[pos : pos+len(query)])))
		b.WriteString("</mark>")
		last = pos + len(query)
	}
	b.WriteString(html.EscapeString(string(window[last:])))
	return b.String()
}

// foldIndex returns the rune index of the first case-insensitive
// occurrence of needle in haystack at or after from, or -1.
func foldIndex(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(needle[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
