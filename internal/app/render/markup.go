package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Table: true, atom.Tr: true, atom.Blockquote: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Pre: true, atom.Hr: true,
}

// StripMarkup reduces rich-text HTML to plain paragraphs separated by a blank line.
// Inline whitespace is collapsed; script and style content is dropped.
func StripMarkup(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var (
		paragraphs []string
		current    strings.Builder
		skip       int
	)
	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail: keep what was read
			flush()
			return strings.Join(paragraphs, "\n\n")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
				continue
			}
			if blockTags[a] {
				flush()
			}
		case html.TextToken:
			if skip == 0 {
				current.Write(z.Text())
			}
		}
	}
}
