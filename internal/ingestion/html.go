package ingestion

import (
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Elements that end the current line, and those that also leave a blank
// line so the parser sees a new block.
var (
	lineBreakElements = map[string]bool{
		"p": true, "div": true, "ul": true, "ol": true, "li": true, "tr": true,
		"table": true, "dl": true, "dt": true, "dd": true, "pre": true,
		"blockquote": true, "address": true, "br": true,
	}
	paragraphBreakElements = map[string]bool{
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"section": true, "article": true, "hr": true,
	}
)

// HTMLToText flattens an HTML resume into lines. List items become "• "
// bullets and headings are set off by blank lines.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, template, head").Remove()

	w := &textWriter{}
	w.walk(doc.Selection)
	return w.b.String(), nil
}

// textWriter accumulates text, deferring line breaks until the next word so
// that nested block elements do not stack blank lines.
type textWriter struct {
	b       strings.Builder
	pending int  // newlines owed before the next word
	space   bool // whitespace seen since the last word
}

func (w *textWriter) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			w.text(child.Text())
		case paragraphBreakElements[name]:
			w.brk(2)
			w.walk(child)
			w.brk(2)
		case name == "li":
			w.brk(1)
			w.text("• ")
			w.walk(child)
			w.brk(1)
		case lineBreakElements[name]:
			w.brk(1)
			w.walk(child)
			w.brk(1)
		default:
			w.walk(child)
		}
	})
}

func (w *textWriter) text(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}

	if w.b.Len() > 0 {
		switch {
		case w.pending > 0:
			w.b.WriteString(strings.Repeat("\n", w.pending))
		case w.space || unicode.IsSpace([]rune(s)[0]):
			w.b.WriteByte(' ')
		}
	}
	w.b.WriteString(strings.Join(fields, " "))

	runes := []rune(s)
	w.space = unicode.IsSpace(runes[len(runes)-1])
	w.pending = 0
}

func (w *textWriter) brk(n int) {
	if n > w.pending {
		w.pending = n
	}
	w.space = false
}
