// Package markdown turns author-written documentation fragments into
// markdown text and composes pages for individual entities.
package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

func splitLines(text string) []string {
	return lineBreak.Split(text, -1)
}

func indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// FindCommonPrefix returns the longest run of leading spaces and tabs shared
// by every non-blank line. ok is false when two lines are indented
// inconsistently, that is when neither indentation is a prefix of the other.
func FindCommonPrefix(lines []string) (prefix string, ok bool) {
	seen := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lp := indentation(line)
		switch {
		case !seen:
			prefix, seen = lp, true
		case strings.HasPrefix(lp, prefix):
		case strings.HasPrefix(prefix, lp):
			prefix = lp
		default:
			return "", false
		}
	}
	return prefix, true
}

// StripPrefix removes prefix from every line of text that starts with it.
// Leading blank lines are dropped, as is a final line left empty.
func StripPrefix(text, prefix string) string {
	lines := splitLines(text)
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// Unindent strips the indentation common to all lines of text.
func Unindent(text string) string {
	prefix, _ := FindCommonPrefix(splitLines(text))
	return StripPrefix(text, prefix)
}

// ConvertInlineTags renders a documentation fragment as de-indented
// markdown. <c> becomes strong emphasis, <code> becomes a fenced block and
// every other element is replaced by its converted inner text. Fenced blocks
// are de-indented once, so indentation inside code examples survives the
// strip applied to the surrounding text.
func ConvertInlineTags(f *model.Fragment) string {
	if f == nil {
		return ""
	}
	prefix, ok := FindCommonPrefix(splitLines(f.Text()))
	if !ok {
		prefix = ""
	}
	c := &converter{prefix: prefix}
	return c.expand(StripPrefix(c.nodes(f), prefix))
}

// converter holds finished fenced blocks out of the text until every strip
// has run. Each block is represented by a placeholder that carries no
// whitespace or line breaks.
type converter struct {
	prefix string
	blocks []string
}

func placeholder(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}

func (c *converter) expand(s string) string {
	for i, block := range c.blocks {
		s = strings.Replace(s, placeholder(i), block, 1)
	}
	return s
}

func (c *converter) nodes(f *model.Fragment) string {
	var b strings.Builder
	for _, n := range f.Nodes {
		if n.Element == nil {
			b.WriteString(n.Text)
			continue
		}
		b.WriteString(c.element(n.Element))
	}
	return b.String()
}

func (c *converter) element(el *model.Fragment) string {
	switch el.Name {
	case "c":
		return "__" + el.Text() + "__"
	case "code":
		block := fence(StripPrefix(el.Text(), c.prefix))
		if block == "" {
			return ""
		}
		c.blocks = append(c.blocks, block)
		return placeholder(len(c.blocks) - 1)
	default:
		return StripPrefix(c.nodes(el), c.prefix)
	}
}

func fence(snippet string) string {
	if snippet == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("```")
	if !strings.HasPrefix(snippet, "\n") && !strings.HasPrefix(snippet, "\r") {
		b.WriteByte('\n')
	}
	b.WriteString(snippet)
	if !strings.HasSuffix(snippet, "\n") && !strings.HasSuffix(snippet, "\r") {
		b.WriteByte('\n')
	}
	b.WriteString("```")
	return b.String()
}
