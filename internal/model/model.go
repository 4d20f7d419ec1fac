// Package model defines the documentation model built from module metadata
// and enriched with author-written documentation.
package model

// Documentable is implemented by every entity that can carry documentation.
type Documentable interface {
	// Identifier returns the canonical identifier the entity is indexed under.
	Identifier() string
	// AttachDoc replaces the entity's documentation with d.
	AttachDoc(d *DocPayload)
}

// Namespace is one segment of the dotted namespace hierarchy.
type Namespace struct {
	Name     string                `json:"name" yaml:"name"`
	FullName string                `json:"full_name" yaml:"full_name"`
	Children map[string]*Namespace `json:"children,omitempty" yaml:"children,omitempty"`
	Types    map[string]*Type      `json:"types,omitempty" yaml:"types,omitempty"`
}

// NewNamespace creates a namespace node below parent (nil for a root node).
func NewNamespace(name string, parent *Namespace) *Namespace {
	full := name
	if parent != nil {
		full = parent.FullName + "." + name
	}
	return &Namespace{
		Name:     name,
		FullName: full,
		Children: make(map[string]*Namespace),
		Types:    make(map[string]*Type),
	}
}

// Type is a class, struct, interface or enum definition.
type Type struct {
	Name              string          `json:"name" yaml:"name"`
	FullName          string          `json:"full_name" yaml:"full_name"`
	Namespace         string          `json:"namespace" yaml:"namespace"`
	AssemblyName      string          `json:"assembly_name,omitempty" yaml:"assembly_name,omitempty"`
	Accessibility     Accessibility   `json:"accessibility" yaml:"accessibility"`
	Kind              TypeKind        `json:"kind" yaml:"kind"`
	BaseType          string          `json:"base_type,omitempty" yaml:"base_type,omitempty"`
	IsStatic          bool            `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	IsSealed          bool            `json:"is_sealed,omitempty" yaml:"is_sealed,omitempty"`
	Interfaces        []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	GenericParameters []*GenericParam `json:"generic_parameters,omitempty" yaml:"generic_parameters,omitempty"`
	NestedTypes       []*Type         `json:"nested_types,omitempty" yaml:"nested_types,omitempty"`
	Events            []*Event        `json:"events,omitempty" yaml:"events,omitempty"`
	Fields            []*Field        `json:"fields,omitempty" yaml:"fields,omitempty"`
	Properties        []*Property     `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods           []*Method       `json:"methods,omitempty" yaml:"methods,omitempty"`
	Doc               *DocPayload     `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (t *Type) Identifier() string { return t.FullName }

// AttachDoc sets the type documentation and the descriptions of its generic
// parameters, matched by name.
func (t *Type) AttachDoc(d *DocPayload) {
	t.Doc = d
	describeGenericParams(t.GenericParameters, d)
}

// Method returns the first method whose simple or full name matches name.
func (t *Type) Method(name string) *Method {
	for _, m := range t.Methods {
		if m.Name == name || m.FullName == name {
			return m
		}
	}
	return nil
}

// GenericParam is a generic type parameter declared by a type or method.
type GenericParam struct {
	Name        string    `json:"name" yaml:"name"`
	Description *Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

// SourceRef locates a member body in a source file.
type SourceRef struct {
	File        string `json:"file" yaml:"file"`
	StartLine   int    `json:"start_line" yaml:"start_line"`
	StartColumn int    `json:"start_column" yaml:"start_column"`
	EndLine     int    `json:"end_line" yaml:"end_line"`
	EndColumn   int    `json:"end_column" yaml:"end_column"`
}

// Method is a method or constructor.
type Method struct {
	Name              string          `json:"name" yaml:"name"`
	FullName          string          `json:"full_name" yaml:"full_name"`
	Accessibility     Accessibility   `json:"accessibility" yaml:"accessibility"`
	ReturnType        string          `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Parameters        []*Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	GenericParameters []*GenericParam `json:"generic_parameters,omitempty" yaml:"generic_parameters,omitempty"`
	IsConstructor     bool            `json:"is_constructor,omitempty" yaml:"is_constructor,omitempty"`
	IsStatic          bool            `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	Source            *SourceRef      `json:"source,omitempty" yaml:"source,omitempty"`
	Doc               *DocPayload     `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (m *Method) Identifier() string { return m.FullName }

// AttachDoc sets the method documentation. Parameters and generic parameters
// pick up the fragment with the matching name attribute; unmatched ones are
// left undocumented.
func (m *Method) AttachDoc(d *DocPayload) {
	m.Doc = d
	for _, p := range m.Parameters {
		p.Description = nil
		if d != nil {
			p.Description = d.Param(p.Name)
		}
	}
	describeGenericParams(m.GenericParameters, d)
}

// Parameter is one formal parameter of a method.
type Parameter struct {
	Name        string    `json:"name" yaml:"name"`
	Type        string    `json:"type" yaml:"type"`
	IsOut       bool      `json:"is_out,omitempty" yaml:"is_out,omitempty"`
	IsByRef     bool      `json:"is_by_ref,omitempty" yaml:"is_by_ref,omitempty"`
	Description *Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

type Field struct {
	Name          string        `json:"name" yaml:"name"`
	FullName      string        `json:"full_name" yaml:"full_name"`
	Type          string        `json:"type" yaml:"type"`
	Accessibility Accessibility `json:"accessibility" yaml:"accessibility"`
	IsConst       bool          `json:"is_const,omitempty" yaml:"is_const,omitempty"`
	IsStatic      bool          `json:"is_static,omitempty" yaml:"is_static,omitempty"`
	IsReadOnly    bool          `json:"is_read_only,omitempty" yaml:"is_read_only,omitempty"`
	Doc           *DocPayload   `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (f *Field) Identifier() string      { return f.FullName }
func (f *Field) AttachDoc(d *DocPayload) { f.Doc = d }

// Property is a property with optional get and set accessors. Accessibility
// is the more visible of the two accessors.
type Property struct {
	Name             string        `json:"name" yaml:"name"`
	FullName         string        `json:"full_name" yaml:"full_name"`
	Type             string        `json:"type" yaml:"type"`
	Accessibility    Accessibility `json:"accessibility" yaml:"accessibility"`
	GetAccessibility Accessibility `json:"get_accessibility" yaml:"get_accessibility"`
	SetAccessibility Accessibility `json:"set_accessibility" yaml:"set_accessibility"`
	HasGetter        bool          `json:"has_getter,omitempty" yaml:"has_getter,omitempty"`
	HasSetter        bool          `json:"has_setter,omitempty" yaml:"has_setter,omitempty"`
	Doc              *DocPayload   `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (p *Property) Identifier() string      { return p.FullName }
func (p *Property) AttachDoc(d *DocPayload) { p.Doc = d }

type Event struct {
	Name     string      `json:"name" yaml:"name"`
	FullName string      `json:"full_name" yaml:"full_name"`
	Type     string      `json:"type,omitempty" yaml:"type,omitempty"`
	Doc      *DocPayload `json:"doc,omitempty" yaml:"doc,omitempty"`
}

func (e *Event) Identifier() string      { return e.FullName }
func (e *Event) AttachDoc(d *DocPayload) { e.Doc = d }

func describeGenericParams(params []*GenericParam, d *DocPayload) {
	for _, gp := range params {
		gp.Description = nil
		if d != nil {
			gp.Description = d.TypeParam(gp.Name)
		}
	}
}
