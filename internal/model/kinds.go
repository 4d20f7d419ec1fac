package model

import "fmt"

// Accessibility is the visibility of a type or member. The zero value,
// Invalid, marks accessors that do not exist or could not be classified.
// Values are ordered from least to most visible.
type Accessibility int

const (
	Invalid Accessibility = iota
	Private
	Protected
	Internal
	ProtectedInternal
	Public
)

var accessibilityNames = map[Accessibility]string{
	Invalid:           "invalid",
	Private:           "private",
	Protected:         "protected",
	Internal:          "internal",
	ProtectedInternal: "protected_internal",
	Public:            "public",
}

func (a Accessibility) String() string {
	if s, ok := accessibilityNames[a]; ok {
		return s
	}
	return fmt.Sprintf("accessibility(%d)", int(a))
}

func (a Accessibility) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accessibility) UnmarshalText(text []byte) error {
	for k, v := range accessibilityNames {
		if v == string(text) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("%w: unknown accessibility %q", ErrFormat, text)
}

// MoreVisible returns whichever of a and b is visible to more callers.
func MoreVisible(a, b Accessibility) Accessibility {
	if a >= b {
		return a
	}
	return b
}

// TypeKind classifies a type definition.
type TypeKind int

const (
	Class TypeKind = iota
	Struct
	Interface
	Enum
)

var typeKindNames = map[TypeKind]string{
	Class:     "class",
	Struct:    "struct",
	Interface: "interface",
	Enum:      "enum",
}

func (k TypeKind) String() string {
	if s, ok := typeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TypeKind) UnmarshalText(text []byte) error {
	for kind, name := range typeKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: unknown type kind %q", ErrFormat, text)
}

// MemberKind is the category of a documented entity, as encoded by the
// single-letter prefix of a documentation identifier.
type MemberKind int

const (
	TypeMember MemberKind = iota
	MethodMember
	FieldMember
	PropertyMember
	EventMember
)

var memberCodes = map[byte]MemberKind{
	'T': TypeMember,
	'M': MethodMember,
	'F': FieldMember,
	'P': PropertyMember,
	'E': EventMember,
}

// MemberKindFromCode maps an identifier prefix letter to its kind.
func MemberKindFromCode(c byte) (MemberKind, bool) {
	k, ok := memberCodes[c]
	return k, ok
}

// Code returns the identifier prefix letter for k.
func (k MemberKind) Code() byte {
	for c, kind := range memberCodes {
		if kind == k {
			return c
		}
	}
	return '?'
}

func (k MemberKind) String() string {
	switch k {
	case TypeMember:
		return "Type"
	case MethodMember:
		return "Method"
	case FieldMember:
		return "Field"
	case PropertyMember:
		return "Property"
	case EventMember:
		return "Event"
	}
	return fmt.Sprintf("MemberKind(%d)", int(k))
}
