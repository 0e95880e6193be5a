package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	// elementTagRE matches opening, closing and empty tags of paragraphs and text boxes.
	elementTagRE = regexp.MustCompile(`<(/?)w:(p|txbxContent)(?:\s[^>]*|/)?>`)
	textRunRE    = regexp.MustCompile(`(<w:t(?:\s[^>]*)?>)([^<]*)(</w:t>)`)
)

// PopulateDocx fills ${KEY} tokens in the body of a .docx (paragraphs and table cells alike)
// and returns the new document.
func PopulateDocx(blob []byte, values map[string]string) ([]byte, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer r.Close()

	doc := r.Editable()
	doc.SetContent(substituteDocumentXML(doc.GetContent(), escapeValues(values)))

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

// substituteDocumentXML works on WordprocessingML. Each text run is substituted on its own
// unless Word has split a token across runs; then the paragraph's text is joined into its
// first run so the token can still be matched.
func substituteDocumentXML(content string, values map[string]string) string {
	replacer := newReplacer(values)
	return replaceSpans(content, elementSpans(content, "p"), func(p string) string {
		return substituteParagraph(p, values, replacer)
	})
}

// substituteParagraph fills one outermost paragraph. Text boxes anchored inside it hold
// paragraphs of their own; they are cut out, filled separately and put back so their runs
// never join the outer paragraph's text.
func substituteParagraph(p string, values map[string]string, replacer *strings.Replacer) string {
	var boxes []string
	p = replaceSpans(p, elementSpans(p, "txbxContent"), func(box string) string {
		boxes = append(boxes, substituteDocumentXML(box, values))
		return boxMarker(len(boxes) - 1)
	})

	runs := textRunRE.FindAllStringSubmatch(p, -1)
	texts := make([]string, len(runs))
	for i, m := range runs {
		texts[i] = m[2]
	}

	if !splitToken(texts, values) {
		p = textRunRE.ReplaceAllStringFunc(p, func(run string) string {
			m := textRunRE.FindStringSubmatch(run)
			return m[1] + replacer.Replace(m[2]) + m[3]
		})
	} else {
		merged := replacer.Replace(strings.Join(texts, ""))
		first := true
		p = textRunRE.ReplaceAllStringFunc(p, func(run string) string {
			m := textRunRE.FindStringSubmatch(run)
			if first {
				first = false
				return preserveSpace(m[1]) + merged + m[3]
			}
			return m[1] + m[3]
		})
	}

	for i, box := range boxes {
		p = strings.Replace(p, boxMarker(i), box, 1)
	}
	return p
}

// boxMarker cannot occur in XML text, so it survives run substitution untouched.
func boxMarker(i int) string {
	return fmt.Sprintf("\x00%d\x00", i)
}

// elementSpans returns the byte ranges of the outermost w:<name> elements in s, tracking
// nesting depth so an inner closing tag does not end the outer element.
func elementSpans(s, name string) [][2]int {
	var spans [][2]int
	depth, start := 0, 0
	for _, loc := range elementTagRE.FindAllStringSubmatchIndex(s, -1) {
		if s[loc[4]:loc[5]] != name {
			continue
		}
		tag := s[loc[0]:loc[1]]
		switch {
		case strings.HasSuffix(tag, "/>"):
			// empty element, nothing to fill
		case loc[3] > loc[2]:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, [2]int{start, loc[1]})
			}
		default:
			if depth == 0 {
				start = loc[0]
			}
			depth++
		}
	}
	return spans
}

func replaceSpans(s string, spans [][2]int, fn func(string) string) string {
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(s[last:sp[0]])
		b.WriteString(fn(s[sp[0]:sp[1]]))
		last = sp[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// splitToken reports whether some token only appears once the runs are joined.
func splitToken(texts []string, values map[string]string) bool {
	if len(texts) < 2 {
		return false
	}
	joined := strings.Join(texts, "")
	if !containsAnyToken(joined, values) {
		return false
	}
	for k := range values {
		inRuns := 0
		for _, t := range texts {
			inRuns += strings.Count(t, k)
		}
		if strings.Count(joined, k) > inRuns {
			return true
		}
	}
	return false
}

func preserveSpace(open string) string {
	if strings.Contains(open, "xml:space") {
		return open
	}
	return `<w:t xml:space="preserve">`
}

func escapeValues(values map[string]string) map[string]string {
	escaped := make(map[string]string, len(values))
	for k, v := range values {
		var b strings.Builder
		_ = xml.EscapeText(&b, []byte(v))
		escaped[k] = b.String()
	}
	return escaped
}
