// Package canon derives the canonical identifiers that documentation files
// use to refer to types and members.
//
// A type name is composed of four segments:
//   - the namespace, or the canonical name of the enclosing type
//   - the type name, stripped of any backtick arity suffix
//   - for generic definitions, a backtick followed by the number of
//     parameters the type declares itself
//   - for bound generic instantiations, the comma-joined canonical names of
//     the type arguments between angle brackets
package canon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/metadata"
	"github.com/jcdickinson/clrdoc/internal/model"
)

const (
	ConstructorMarker       = "#ctor"
	StaticConstructorMarker = "#cctor"
)

// TypeName returns the canonical name of a type reference.
func TypeName(t *metadata.TypeRef) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil type reference", model.ErrInvalidArgument)
	}

	if gp := t.GenericParameter; gp != nil {
		marker := "`"
		if gp.Method {
			marker = "``"
		}
		return marker + strconv.Itoa(gp.Position) + byRefSuffix(t), nil
	}

	ns := t.Namespace
	if t.IsNested() {
		outer, err := TypeName(t.DeclaringType)
		if err != nil {
			return "", err
		}
		ns = outer
	}

	var b strings.Builder
	if ns != "" {
		b.WriteString(ns)
		b.WriteByte('.')
	}
	b.WriteString(BareName(t.Name))

	if n := OwnGenericParameterCount(t); n > 0 {
		b.WriteByte('`')
		b.WriteString(strconv.Itoa(n))
	}

	if len(t.GenericArguments) > 0 {
		args := make([]string, len(t.GenericArguments))
		for i, arg := range t.GenericArguments {
			name, err := TypeName(arg)
			if err != nil {
				return "", fmt.Errorf("generic argument %d of %s: %w", i, t.Name, err)
			}
			args[i] = name
		}
		b.WriteByte('<')
		b.WriteString(strings.Join(args, ","))
		b.WriteByte('>')
	}

	b.WriteString(byRefSuffix(t))
	return b.String(), nil
}

// BareName strips a trailing backtick arity suffix from a type name.
func BareName(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}

// OwnGenericParameterCount returns the number of generic parameters declared
// by t itself. Records of nested types list the parameters of every enclosing
// type as well, so the counts contributed by all declaring types are
// subtracted.
func OwnGenericParameterCount(t *metadata.TypeRef) int {
	inherited := 0
	for d := t.DeclaringType; d != nil; d = d.DeclaringType {
		inherited += OwnGenericParameterCount(d)
	}
	n := len(t.GenericParameters) - inherited
	if n < 0 {
		return 0
	}
	return n
}

func byRefSuffix(t *metadata.TypeRef) string {
	if t.ByReference {
		return "@"
	}
	return ""
}

// MemberName returns the canonical name of a field, property or event.
func MemberName(owner *metadata.TypeRef, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty member name", model.ErrInvalidArgument)
	}
	typeName, err := TypeName(owner)
	if err != nil {
		return "", err
	}
	return typeName + "." + name, nil
}

// MethodName returns the canonical name of a method: the owner's canonical
// name, the method name (or constructor marker), the generic arity and the
// parenthesised parameter types. The parameter list is omitted entirely for
// parameterless methods.
func MethodName(owner *metadata.TypeRef, m *metadata.MethodRecord) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: nil method record", model.ErrInvalidArgument)
	}

	name := m.Name
	if m.IsConstructor {
		name = ConstructorMarker
		if m.IsStatic {
			name = StaticConstructorMarker
		}
	}
	if n := len(m.GenericParameters); n > 0 {
		name += "``" + strconv.Itoa(n)
	}

	full, err := MemberName(owner, name)
	if err != nil {
		return "", err
	}
	if len(m.Parameters) == 0 {
		return full, nil
	}

	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		if p == nil {
			return "", fmt.Errorf("%w: nil parameter %d of %s", model.ErrInvalidArgument, i, full)
		}
		pt, err := TypeName(p.Type)
		if err != nil {
			return "", fmt.Errorf("parameter %s of %s: %w", p.Name, full, err)
		}
		params[i] = pt
	}
	return full + "(" + strings.Join(params, ",") + ")", nil
}
