// Package xmldoc reads compiler-generated XML documentation files into flat
// lists of member documentation records.
package xmldoc

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
)

// Documentation is the parsed content of one documentation file.
type Documentation struct {
	// AssemblyName is empty when the file does not name its assembly.
	AssemblyName string
	Members      []*Record
}

// Record is the documentation of a single member, addressed by kind and
// canonical identifier.
type Record struct {
	Kind       model.MemberKind
	Identifier string
	Doc        model.DocPayload
}

func (r *Record) String() string {
	return string(r.Kind.Code()) + ":" + r.Identifier
}

// Parser converts documentation files. The zero value is ready to use and
// logs nothing.
type Parser struct {
	Logger *slog.Logger
}

func (p *Parser) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// ReadFile parses the documentation file at path.
func (p *Parser) ReadFile(path string) (*Documentation, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: documentation file path is empty", model.ErrInvalidArgument)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening documentation file: %w", err)
	}
	defer f.Close()

	p.logger().Debug("reading documentation file", "path", path)
	doc, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a documentation document. The root element must be <doc>; a
// missing <members> element yields an empty member list.
func (p *Parser) Parse(r io.Reader) (*Documentation, error) {
	root, err := readRoot(r)
	if err != nil {
		return nil, err
	}
	if root.Name != "doc" {
		return nil, fmt.Errorf("%w: no <doc> element found, root is <%s>", model.ErrInvalidOperation, root.Name)
	}

	result := &Documentation{}
	if asm := child(root, "assembly"); asm != nil {
		result.AssemblyName = strings.TrimSpace(child(asm, "name").Text())
	}

	members := child(root, "members")
	if members == nil {
		p.logger().Warn("documentation file has no <members> element", "assembly", result.AssemblyName)
		return result, nil
	}

	for _, m := range children(members, "member") {
		rec, err := newRecord(m)
		if err != nil {
			return nil, err
		}
		result.Members = append(result.Members, rec)
	}
	p.logger().Debug("parsed documentation", "assembly", result.AssemblyName, "members", len(result.Members))
	return result, nil
}

// ParseFragment parses a single XML element into a fragment.
func ParseFragment(s string) (*model.Fragment, error) {
	return readRoot(strings.NewReader(s))
}

func newRecord(m *model.Fragment) (*Record, error) {
	name := m.Attr("name")
	kind, id, err := ParseIdentifier(name)
	if err != nil {
		return nil, fmt.Errorf("parsing member %q: %w", name, err)
	}
	return &Record{
		Kind:       kind,
		Identifier: id,
		Doc: model.DocPayload{
			Summary:        child(m, "summary"),
			Remarks:        child(m, "remarks"),
			Example:        child(m, "example"),
			Value:          child(m, "value"),
			Returns:        child(m, "returns"),
			Parameters:     children(m, "param"),
			TypeParameters: children(m, "typeparam"),
			Exceptions:     children(m, "exception"),
		},
	}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readRoot(r io.Reader) (*model.Fragment, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document has no root element", model.ErrInvalidOperation)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding documentation XML: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return readElement(dec, start)
		}
	}
}

// readElement consumes tokens up to the end of start. Character data is kept
// verbatim, including indentation, so the text can be normalised later.
func readElement(dec *xml.Decoder, start xml.StartElement) (*model.Fragment, error) {
	f := &model.Fragment{Name: start.Name.Local}
	if len(start.Attr) > 0 {
		f.Attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			f.Attrs[a.Name.Local] = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding <%s>: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el, err := readElement(dec, t)
			if err != nil {
				return nil, err
			}
			f.Nodes = append(f.Nodes, model.Node{Element: el})
		case xml.CharData:
			text := string(t)
			if n := len(f.Nodes); n > 0 && f.Nodes[n-1].Element == nil {
				f.Nodes[n-1].Text += text
				continue
			}
			f.Nodes = append(f.Nodes, model.Node{Text: text})
		case xml.EndElement:
			return f, nil
		}
	}
}

func child(f *model.Fragment, name string) *model.Fragment {
	if f == nil {
		return nil
	}
	for _, n := range f.Nodes {
		if n.Element != nil && n.Element.Name == name {
			return n.Element
		}
	}
	return nil
}

func children(f *model.Fragment, name string) []*model.Fragment {
	var out []*model.Fragment
	for _, n := range f.Nodes {
		if n.Element != nil && n.Element.Name == name {
			out = append(out, n.Element)
		}
	}
	return out
}
