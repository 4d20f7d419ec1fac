package model

import "strings"

// Fragment is one element of author-written documentation markup, such as a
// <summary> block, kept opaque until a renderer converts it.
type Fragment struct {
	Name  string            `json:"name" yaml:"name"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Nodes []Node            `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// Node is either a run of character data or a nested element.
type Node struct {
	Text    string    `json:"text,omitempty" yaml:"text,omitempty"`
	Element *Fragment `json:"element,omitempty" yaml:"element,omitempty"`
}

// Attr returns the named attribute, or "" when absent.
func (f *Fragment) Attr(name string) string {
	if f == nil {
		return ""
	}
	return f.Attrs[name]
}

// Text returns the concatenated character data of f and all its descendants.
func (f *Fragment) Text() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	f.writeText(&b)
	return b.String()
}

func (f *Fragment) writeText(b *strings.Builder) {
	for _, n := range f.Nodes {
		if n.Element != nil {
			n.Element.writeText(b)
			continue
		}
		b.WriteString(n.Text)
	}
}

// DocPayload is the documentation attached to one entity.
type DocPayload struct {
	Summary        *Fragment   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Remarks        *Fragment   `json:"remarks,omitempty" yaml:"remarks,omitempty"`
	Example        *Fragment   `json:"example,omitempty" yaml:"example,omitempty"`
	Value          *Fragment   `json:"value,omitempty" yaml:"value,omitempty"`
	Returns        *Fragment   `json:"returns,omitempty" yaml:"returns,omitempty"`
	Parameters     []*Fragment `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	TypeParameters []*Fragment `json:"type_parameters,omitempty" yaml:"type_parameters,omitempty"`
	Exceptions     []*Fragment `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// Param returns the <param> fragment documenting the named parameter.
func (d *DocPayload) Param(name string) *Fragment {
	return byName(d.Parameters, name)
}

// TypeParam returns the <typeparam> fragment documenting the named type parameter.
func (d *DocPayload) TypeParam(name string) *Fragment {
	return byName(d.TypeParameters, name)
}

func byName(fragments []*Fragment, name string) *Fragment {
	for _, f := range fragments {
		if f.Attr("name") == name {
			return f
		}
	}
	return nil
}
