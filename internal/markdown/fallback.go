package markdown

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// FallbackParse converts markdown to HTML using the self-contained parser.
// It runs a fixed sequence of regex and line-scanning passes, each operating
// on the output of the previous one. The ordering is load-bearing: code
// block contents are escaped before the inline passes run, and the paragraph
// pass must come last so it can recognise blocks that earlier passes already
// turned into HTML.
//
// Known quirks preserved from the original pipeline, on purpose:
//   - numbered-list items convert after the <ul> wrapping step, so they end
//     up as bare <li> elements outside any list container;
//   - the link pass fires before the image pass, so images with non-empty
//     alt text render as "!" followed by a link;
//   - the autolink pass can re-match URLs inside attributes emitted by the
//     link pass.
func FallbackParse(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = parseFencedCodeBlocks(text)
	text = parseHeadings(text)
	text = parseHorizontalRules(text)
	text = parseBlockquotes(text)
	text = parseTables(text)
	text = parseTaskLists(text)
	text = parseLists(text)
	text = parseInlineCode(text)
	text = parseLinks(text)
	text = parseImages(text)
	text = parseStrikethrough(text)
	text = parseBold(text)
	text = parseItalic(text)
	text = parseAutolinks(text)
	text = parseParagraphs(text)

	return text
}

var fencedCodeRe = regexp.MustCompile("(?ms)^```(\\w+)?\\s*\\n(.*?)\\n```$")

func parseFencedCodeBlocks(text string) string {
	return fencedCodeRe.ReplaceAllStringFunc(text, func(block string) string {
		m := fencedCodeRe.FindStringSubmatch(block)
		code := html.EscapeString(m[2])
		langClass := ""
		if m[1] != "" {
			langClass = ` class="language-` + html.EscapeString(m[1]) + `"`
		}
		return "<pre><code" + langClass + ">" + code + "</code></pre>"
	})
}

var headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func parseHeadings(text string) string {
	return headingRe.ReplaceAllStringFunc(text, func(line string) string {
		m := headingRe.FindStringSubmatch(line)
		level := len(m[1])
		title := strings.TrimSpace(m[2])
		id := HeadingID(title)
		tag := "h" + strconv.Itoa(level)
		return "<" + tag + ` id="` + id + `">` + title + "</" + tag + ">"
	})
}

var horizontalRuleRe = regexp.MustCompile(`(?m)^[ \t]*(-{3,}|\*{3,}|_{3,})[ \t]*$`)

func parseHorizontalRules(text string) string {
	return horizontalRuleRe.ReplaceAllString(text, "<hr>")
}

var blockquoteRe = regexp.MustCompile(`(?m)^>\s?(.+)$`)

func parseBlockquotes(text string) string {
	// One paragraph per quoted line; consecutive lines are not merged.
	return blockquoteRe.ReplaceAllString(text, "<blockquote><p>$1</p></blockquote>")
}

var tableSeparatorRe = regexp.MustCompile(`^\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?\s*$`)

func parseTables(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	var tableRows []string
	inTable := false

	for _, line := range lines {
		if strings.Contains(line, "|") && strings.TrimSpace(line) != "" {
			inTable = true
			if tableSeparatorRe.MatchString(strings.TrimSpace(line)) {
				continue
			}
			tableRows = append(tableRows, line)
			continue
		}
		if inTable {
			result = append(result, renderSimpleTable(tableRows))
			inTable = false
			tableRows = nil
		}
		result = append(result, line)
	}
	if inTable && len(tableRows) > 0 {
		result = append(result, renderSimpleTable(tableRows))
	}

	return strings.Join(result, "\n")
}

func renderSimpleTable(rows []string) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<table>")
	first := true

	for _, row := range rows {
		var cells []string
		for _, cell := range strings.Split(strings.Trim(row, "| "), "|") {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				cells = append(cells, trimmed)
			}
		}

		if first {
			b.WriteString("<thead><tr>")
			for _, cell := range cells {
				b.WriteString("<th>" + html.EscapeString(cell) + "</th>")
			}
			b.WriteString("</tr></thead><tbody>")
			first = false
			continue
		}

		b.WriteString("<tr>")
		for _, cell := range cells {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

var taskListRe = regexp.MustCompile(`(?m)^[-*+]\s+\[([ xX])\]\s+(.+)$`)

func parseTaskLists(text string) string {
	return taskListRe.ReplaceAllStringFunc(text, func(line string) string {
		m := taskListRe.FindStringSubmatch(line)
		checked := ""
		if strings.EqualFold(m[1], "x") {
			checked = "checked "
		}
		return `<li class="task-list-item"><input type="checkbox" ` + checked + `disabled> ` + html.EscapeString(m[2]) + "</li>"
	})
}

var (
	bulletItemRe  = regexp.MustCompile(`(?m)^[-*+]\s+(.+)$`)
	listWrapRe    = regexp.MustCompile(`(?s)(<li>.*</li>)`)
	orderedItemRe = regexp.MustCompile(`(?m)^\d+\.\s+(.+)$`)
)

func parseLists(text string) string {
	text = bulletItemRe.ReplaceAllString(text, "<li>$1</li>")
	text = listWrapRe.ReplaceAllString(text, "<ul>$1</ul>")
	text = orderedItemRe.ReplaceAllString(text, "<li>$1</li>")
	return text
}

var inlineCodeRe = regexp.MustCompile("`([^`]+)`")

func parseInlineCode(text string) string {
	return inlineCodeRe.ReplaceAllString(text, "<code>$1</code>")
}

var linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

func parseLinks(text string) string {
	return linkRe.ReplaceAllString(text, `<a href="$2">$1</a>`)
}

var imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

func parseImages(text string) string {
	return imageRe.ReplaceAllString(text, `<img src="$2" alt="$1">`)
}

var strikethroughRe = regexp.MustCompile(`~~([^~]+)~~`)

func parseStrikethrough(text string) string {
	return strikethroughRe.ReplaceAllString(text, "<del>$1</del>")
}

var (
	boldAsteriskRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderscoreRe = regexp.MustCompile(`__([^_]+)__`)
)

func parseBold(text string) string {
	text = boldAsteriskRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderscoreRe.ReplaceAllString(text, "<strong>$1</strong>")
	return text
}

var (
	italicAsteriskRe   = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnderscoreRe = regexp.MustCompile(`_([^_]+)_`)
)

func parseItalic(text string) string {
	text = replaceUnlessAdjacent(text, italicAsteriskRe, '*')
	text = replaceUnlessAdjacent(text, italicUnderscoreRe, '_')
	return text
}

// replaceUnlessAdjacent emulates the negative lookaround the original italic
// pattern relied on: a candidate span is skipped when the delimiter directly
// borders another copy of itself, so leftover bold markers never turn italic.
// Skipped spans are not rescanned, so delimiters they would have freed stay
// literal too.
func replaceUnlessAdjacent(text string, re *regexp.Regexp, delim byte) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if (start > 0 && text[start-1] == delim) || (end < len(text) && text[end] == delim) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString("<em>")
		b.WriteString(text[m[2]:m[3]])
		b.WriteString("</em>")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

var autolinkRe = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"` + "`" + `{}\[\]\\]+`)

func parseAutolinks(text string) string {
	return autolinkRe.ReplaceAllStringFunc(text, func(rawURL string) string {
		url := html.EscapeString(rawURL)
		return `<a href="` + url + `">` + url + "</a>"
	})
}

var blockTagRe = regexp.MustCompile(`<(?:h[1-6]|ul|ol|li|table|pre|code|blockquote|hr|div|p)\b`)

func parseParagraphs(text string) string {
	var result []string
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if blockTagRe.MatchString(paragraph) {
			result = append(result, paragraph)
		} else {
			result = append(result, "<p>"+paragraph+"</p>")
		}
	}
	return strings.Join(result, "\n\n")
}
