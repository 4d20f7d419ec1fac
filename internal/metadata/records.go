// Package metadata defines the structural records produced by a module
// metadata reader and a JSON adapter that materialises them from disk.
package metadata

import "github.com/jcdickinson/clrdoc/internal/model"

// Visibility is the raw visibility flag of a type or member definition.
type Visibility string

const (
	Public             Visibility = "public"
	Private            Visibility = "private"
	Family             Visibility = "family"
	Assembly           Visibility = "assembly"
	FamilyOrAssembly   Visibility = "family_or_assembly"
	FamilyAndAssembly  Visibility = "family_and_assembly"
	CompilerControlled Visibility = "compiler_controlled"
)

// Module is the complete structural description of one compiled module.
type Module struct {
	Assembly string        `json:"assembly"`
	Types    []*TypeRecord `json:"types"`
}

// Reader hands the core an already-materialised module.
type Reader interface {
	ReadModule() (*Module, error)
}

// File reads a module from the metadata file at the given path.
type File string

func (f File) ReadModule() (*Module, error) {
	return ReadFile(string(f))
}

// TypeRef references a type by name. It describes definitions, bound generic
// instantiations, generic parameter placeholders and by-reference types.
type TypeRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	// DeclaringType is set for nested types.
	DeclaringType *TypeRef `json:"declaring_type,omitempty"`
	// GenericParameters lists every generic parameter visible at this type,
	// including the ones declared by enclosing types.
	GenericParameters []string `json:"generic_parameters,omitempty"`
	// GenericArguments is non-empty for a bound generic instantiation.
	GenericArguments []*TypeRef `json:"generic_arguments,omitempty"`
	// GenericParameter is set when the reference is a generic parameter
	// placeholder rather than a concrete type.
	GenericParameter *GenericParamRef `json:"generic_parameter,omitempty"`
	ByReference      bool             `json:"by_reference,omitempty"`
}

// GenericParamRef is a positional reference to a type or method generic parameter.
type GenericParamRef struct {
	Position int  `json:"position"`
	Method   bool `json:"method,omitempty"`
}

// IsNested reports whether the type is declared inside another type.
func (t *TypeRef) IsNested() bool { return t.DeclaringType != nil }

// TypeRecord is a type definition.
type TypeRecord struct {
	TypeRef

	Visibility  Visibility `json:"visibility"`
	IsInterface bool       `json:"is_interface,omitempty"`
	IsEnum      bool       `json:"is_enum,omitempty"`
	IsClass     bool       `json:"is_class,omitempty"`
	IsValueType bool       `json:"is_value_type,omitempty"`
	IsSealed    bool       `json:"is_sealed,omitempty"`
	IsAbstract  bool       `json:"is_abstract,omitempty"`

	BaseType    *TypeRef          `json:"base_type,omitempty"`
	Interfaces  []*TypeRef        `json:"interfaces,omitempty"`
	Events      []*EventRecord    `json:"events,omitempty"`
	Fields      []*FieldRecord    `json:"fields,omitempty"`
	Properties  []*PropertyRecord `json:"properties,omitempty"`
	Methods     []*MethodRecord   `json:"methods,omitempty"`
	NestedTypes []*TypeRecord     `json:"nested_types,omitempty"`
}

// Classify returns the kind of the type definition. ok is false when the
// flags match none of the four recognised kinds.
func (t *TypeRecord) Classify() (kind model.TypeKind, ok bool) {
	switch {
	case t.IsInterface:
		return model.Interface, true
	case t.IsEnum:
		return model.Enum, true
	case t.IsClass && t.IsValueType:
		return model.Struct, true
	case t.IsClass:
		return model.Class, true
	}
	return 0, false
}

type MethodRecord struct {
	Name              string             `json:"name"`
	Visibility        Visibility         `json:"visibility"`
	IsConstructor     bool               `json:"is_constructor,omitempty"`
	IsStatic          bool               `json:"is_static,omitempty"`
	ReturnType        *TypeRef           `json:"return_type,omitempty"`
	Parameters        []*ParameterRecord `json:"parameters,omitempty"`
	GenericParameters []string           `json:"generic_parameters,omitempty"`
	Source            *SourceLocation    `json:"source,omitempty"`
}

type ParameterRecord struct {
	Name  string   `json:"name"`
	Type  *TypeRef `json:"type"`
	IsOut bool     `json:"is_out,omitempty"`
}

type FieldRecord struct {
	Name        string     `json:"name"`
	Type        *TypeRef   `json:"type"`
	Visibility  Visibility `json:"visibility"`
	IsStatic    bool       `json:"is_static,omitempty"`
	IsInitOnly  bool       `json:"is_init_only,omitempty"`
	HasConstant bool       `json:"has_constant,omitempty"`
}

// PropertyRecord carries the accessor methods of a property; either may be nil.
type PropertyRecord struct {
	Name   string        `json:"name"`
	Type   *TypeRef      `json:"type"`
	Getter *MethodRecord `json:"getter,omitempty"`
	Setter *MethodRecord `json:"setter,omitempty"`
}

type EventRecord struct {
	Name string   `json:"name"`
	Type *TypeRef `json:"type,omitempty"`
}

// SourceLocation is the debug-symbol position of a method body.
type SourceLocation struct {
	File        string `json:"file"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}
