// Package fragment turns server-rendered HTML fragments into terminal text.
package fragment

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	bullet     = "• "
	cellGap    = "  "
	ruleMarker = "\x00rule"
)

var policy = bluemonday.UGCPolicy()

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "tbody": true,
	"thead": true, "tfoot": true, "tr": true, "ul": true,
}

// paragraph-like elements are followed by a blank line.
var spacedElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "table": true, "ul": true, "ol": true, "blockquote": true,
}

// Render sanitizes markup and lays it out as lines no wider than width.
// A width of zero or less disables wrapping.
func Render(markup string, width int) []string {
	clean := policy.Sanitize(markup)
	nodes, err := html.ParseFragment(strings.NewReader(clean), bodyContext())
	if err != nil {
		return wrapLines(splitPlain(clean), width)
	}
	r := &renderer{}
	for _, n := range nodes {
		r.walk(n)
	}
	r.flush()
	return wrapLines(r.lines, width)
}

// PlainText renders markup without wrapping.
func PlainText(markup string) string {
	return strings.Join(Render(markup, 0), "\n")
}

// NodeText returns the whitespace-collapsed text content of n.
func NodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

type renderer struct {
	lines   []string
	current strings.Builder
	pre     int
}

func (r *renderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			r.walk(child)
		}
		return
	}

	switch n.Data {
	case "br":
		r.flush()
		return
	case "hr":
		r.flush()
		r.lines = append(r.lines, ruleMarker)
		return
	case "td", "th":
		if r.current.Len() > 0 {
			prev := strings.TrimRight(r.current.String(), " ")
			r.current.Reset()
			r.current.WriteString(prev + cellGap)
		}
	}

	block := blockElements[n.Data]
	if block {
		r.flush()
	}
	if n.Data == "li" {
		r.current.WriteString(bullet)
	}
	if n.Data == "pre" {
		r.pre++
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		r.walk(child)
	}
	if n.Data == "pre" {
		r.pre--
	}
	if block {
		r.flush()
		if spacedElements[n.Data] {
			r.blank()
		}
	}
}

func (r *renderer) text(data string) {
	if r.pre > 0 {
		parts := strings.Split(data, "\n")
		for i, part := range parts {
			if i > 0 {
				r.flush()
			}
			r.current.WriteString(part)
		}
		return
	}
	fields := strings.Fields(data)
	if len(fields) == 0 {
		if r.current.Len() > 0 && data != "" {
			r.space()
		}
		return
	}
	if startsWithSpace(data) {
		r.space()
	}
	r.current.WriteString(strings.Join(fields, " "))
	if endsWithSpace(data) {
		r.space()
	}
}

func (r *renderer) space() {
	s := r.current.String()
	if s == "" || strings.HasSuffix(s, " ") || s == bullet {
		return
	}
	r.current.WriteByte(' ')
}

func (r *renderer) flush() {
	line := strings.TrimRight(r.current.String(), " ")
	r.current.Reset()
	if line == "" || line == strings.TrimSpace(bullet) {
		return
	}
	r.lines = append(r.lines, line)
}

func (r *renderer) blank() {
	if len(r.lines) == 0 || r.lines[len(r.lines)-1] == "" {
		return
	}
	r.lines = append(r.lines, "")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n\f") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n\f") != s
}

func splitPlain(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

func wrapLines(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == ruleMarker {
			n := width
			if n <= 0 {
				n = 3
			}
			out = append(out, strings.Repeat("─", n))
			continue
		}
		if width <= 0 || ansi.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(ansi.Wrap(line, width, ""), "\n")...)
	}
	return trimBlank(out)
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, 0, end-start)
	prevBlank := false
	for _, line := range lines[start:end] {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	return out
}
