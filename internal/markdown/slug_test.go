package markdown

import "testing"

func TestHeadingID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"mixed case", "API Reference", "api-reference"},
		{"markup stripped", "<em>Styled</em> Text", "styled-text"},
		{"leading trailing trimmed", "  --Setup--  ", "setup"},
		{"digits preserved", "Version 2.0 Notes", "version-2-0-notes"},
		{"empty falls back", "", "header"},
		{"symbols only fall back", "!!!", "header"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeadingID(tc.in); got != tc.want {
				t.Fatalf("HeadingID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHeadingIDIdenticalTextIdenticalSlug(t *testing.T) {
	first := HeadingID("Configuration")
	second := HeadingID("Configuration")
	if first != second {
		t.Fatalf("expected identical slugs, got %q and %q", first, second)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("plain text"); got != "plain text" {
		t.Fatalf("expected passthrough for plain text, got %q", got)
	}
	if got := StripTags("<strong>bold</strong> and <a href=\"x\">link</a>"); got != "bold and link" {
		t.Fatalf("expected markup removed, got %q", got)
	}
	if got := StripTags("a &amp; b"); got != "a &amp; b" {
		t.Fatalf("expected text without brackets untouched, got %q", got)
	}
}
