package repository

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/canon"
	"github.com/jcdickinson/clrdoc/internal/metadata"
	"github.com/jcdickinson/clrdoc/internal/model"
)

// builder turns structural records into a namespace tree. A builder is
// discarded after use; the tree it produces is committed only once every
// module has been built.
type builder struct {
	log   *slog.Logger
	roots map[string]*model.Namespace
}

func newBuilder(log *slog.Logger) *builder {
	return &builder{log: log, roots: make(map[string]*model.Namespace)}
}

func (b *builder) addModule(m *metadata.Module) error {
	if m == nil {
		return fmt.Errorf("%w: nil module", model.ErrInvalidArgument)
	}
	for _, rec := range m.Types {
		if rec == nil {
			return fmt.Errorf("%w: nil type record in %s", model.ErrInvalidArgument, m.Assembly)
		}
		if rec.Namespace == "" {
			b.log.Debug("skipping type without namespace", "type", rec.Name, "assembly", m.Assembly)
			continue
		}
		t, err := b.buildType(rec, m.Assembly, rec.Namespace)
		if err != nil {
			return fmt.Errorf("building type %s.%s: %w", rec.Namespace, rec.Name, err)
		}
		b.namespace(rec.Namespace).Types[rec.Name] = t
	}
	return nil
}

// namespace walks the dotted path, creating missing nodes.
func (b *builder) namespace(fullName string) *model.Namespace {
	parts := strings.Split(fullName, ".")
	ns, ok := b.roots[parts[0]]
	if !ok {
		ns = model.NewNamespace(parts[0], nil)
		b.roots[parts[0]] = ns
	}
	for _, part := range parts[1:] {
		child, ok := ns.Children[part]
		if !ok {
			child = model.NewNamespace(part, ns)
			ns.Children[part] = child
		}
		ns = child
	}
	return ns
}

func (b *builder) buildType(rec *metadata.TypeRecord, assembly, namespace string) (*model.Type, error) {
	kind, ok := rec.Classify()
	if !ok {
		panic(fmt.Sprintf("repository: type %s is not a class, struct, interface or enum", rec.Name))
	}

	fullName, err := canon.TypeName(&rec.TypeRef)
	if err != nil {
		return nil, err
	}

	t := &model.Type{
		Name:          canon.BareName(rec.Name),
		FullName:      fullName,
		Namespace:     namespace,
		AssemblyName:  assembly,
		Accessibility: typeAccessibility(rec.Visibility),
		Kind:          kind,
		IsStatic:      rec.IsAbstract && rec.IsSealed,
		IsSealed:      rec.IsSealed,
	}
	b.log.Debug("building type", "type", fullName, "kind", kind)

	if rec.BaseType != nil {
		if t.BaseType, err = canon.TypeName(rec.BaseType); err != nil {
			return nil, fmt.Errorf("base type: %w", err)
		}
	}
	for _, iface := range rec.Interfaces {
		name, err := canon.TypeName(iface)
		if err != nil {
			return nil, fmt.Errorf("interface: %w", err)
		}
		t.Interfaces = append(t.Interfaces, name)
	}

	own := canon.OwnGenericParameterCount(&rec.TypeRef)
	t.GenericParameters = genericParams(rec.GenericParameters[len(rec.GenericParameters)-own:])

	for _, nested := range rec.NestedTypes {
		if nested == nil {
			return nil, fmt.Errorf("%w: nil nested type in %s", model.ErrInvalidArgument, fullName)
		}
		nt, err := b.buildType(nested, assembly, fullName)
		if err != nil {
			return nil, fmt.Errorf("nested type %s: %w", nested.Name, err)
		}
		t.NestedTypes = append(t.NestedTypes, nt)
	}

	owner := &rec.TypeRef
	for _, e := range rec.Events {
		ev, err := b.buildEvent(owner, e)
		if err != nil {
			return nil, err
		}
		t.Events = append(t.Events, ev)
	}
	for _, f := range rec.Fields {
		fd, err := b.buildField(owner, f)
		if err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, fd)
	}
	for _, p := range rec.Properties {
		pr, err := b.buildProperty(owner, p)
		if err != nil {
			return nil, err
		}
		t.Properties = append(t.Properties, pr)
	}
	for _, m := range rec.Methods {
		md, err := b.buildMethod(owner, m)
		if err != nil {
			return nil, err
		}
		t.Methods = append(t.Methods, md)
	}
	return t, nil
}

func genericParams(names []string) []*model.GenericParam {
	if len(names) == 0 {
		return nil
	}
	out := make([]*model.GenericParam, len(names))
	for i, n := range names {
		out[i] = &model.GenericParam{Name: n}
	}
	return out
}

func (b *builder) buildMethod(owner *metadata.TypeRef, rec *metadata.MethodRecord) (*model.Method, error) {
	fullName, err := canon.MethodName(owner, rec)
	if err != nil {
		return nil, fmt.Errorf("method: %w", err)
	}

	m := &model.Method{
		Name:              rec.Name,
		FullName:          fullName,
		Accessibility:     b.memberAccessibility(fullName, rec.Visibility),
		GenericParameters: genericParams(rec.GenericParameters),
		IsConstructor:     rec.IsConstructor,
		IsStatic:          rec.IsStatic,
	}
	if rec.ReturnType != nil {
		if m.ReturnType, err = canon.TypeName(rec.ReturnType); err != nil {
			return nil, fmt.Errorf("return type of %s: %w", fullName, err)
		}
	}
	for _, p := range rec.Parameters {
		// MethodName has already rejected nil parameters and types.
		pt, _ := canon.TypeName(p.Type)
		m.Parameters = append(m.Parameters, &model.Parameter{
			Name:    p.Name,
			Type:    pt,
			IsOut:   p.IsOut,
			IsByRef: p.Type.ByReference,
		})
	}
	if src := rec.Source; src != nil {
		m.Source = &model.SourceRef{
			File:        src.File,
			StartLine:   src.StartLine,
			StartColumn: src.StartColumn,
			EndLine:     src.EndLine,
			EndColumn:   src.EndColumn,
		}
	}
	return m, nil
}

func (b *builder) buildField(owner *metadata.TypeRef, rec *metadata.FieldRecord) (*model.Field, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil field record", model.ErrInvalidArgument)
	}
	fullName, err := canon.MemberName(owner, rec.Name)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	typeName, err := canon.TypeName(rec.Type)
	if err != nil {
		return nil, fmt.Errorf("type of field %s: %w", fullName, err)
	}
	return &model.Field{
		Name:          rec.Name,
		FullName:      fullName,
		Type:          typeName,
		Accessibility: b.memberAccessibility(fullName, rec.Visibility),
		IsConst:       rec.HasConstant,
		IsStatic:      rec.IsStatic,
		IsReadOnly:    rec.IsInitOnly,
	}, nil
}

func (b *builder) buildProperty(owner *metadata.TypeRef, rec *metadata.PropertyRecord) (*model.Property, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil property record", model.ErrInvalidArgument)
	}
	fullName, err := canon.MemberName(owner, rec.Name)
	if err != nil {
		return nil, fmt.Errorf("property: %w", err)
	}
	typeName, err := canon.TypeName(rec.Type)
	if err != nil {
		return nil, fmt.Errorf("type of property %s: %w", fullName, err)
	}

	p := &model.Property{
		Name:      rec.Name,
		FullName:  fullName,
		Type:      typeName,
		HasGetter: rec.Getter != nil,
		HasSetter: rec.Setter != nil,
	}
	if rec.Getter != nil {
		p.GetAccessibility = b.memberAccessibility(fullName+" getter", rec.Getter.Visibility)
	}
	if rec.Setter != nil {
		p.SetAccessibility = b.memberAccessibility(fullName+" setter", rec.Setter.Visibility)
	}
	p.Accessibility = model.MoreVisible(p.GetAccessibility, p.SetAccessibility)
	return p, nil
}

func (b *builder) buildEvent(owner *metadata.TypeRef, rec *metadata.EventRecord) (*model.Event, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil event record", model.ErrInvalidArgument)
	}
	fullName, err := canon.MemberName(owner, rec.Name)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	e := &model.Event{Name: rec.Name, FullName: fullName}
	if rec.Type != nil {
		if e.Type, err = canon.TypeName(rec.Type); err != nil {
			return nil, fmt.Errorf("type of event %s: %w", fullName, err)
		}
	}
	return e, nil
}

func typeAccessibility(v metadata.Visibility) model.Accessibility {
	switch v {
	case metadata.Public:
		return model.Public
	case metadata.Private:
		return model.Private
	default:
		return model.Internal
	}
}

// memberAccessibility maps member visibility flags. Combinations that have no
// accessibility equivalent yield model.Invalid.
func (b *builder) memberAccessibility(member string, v metadata.Visibility) model.Accessibility {
	switch v {
	case metadata.Public:
		return model.Public
	case metadata.Private:
		return model.Private
	case metadata.Family:
		return model.Protected
	case metadata.FamilyOrAssembly:
		return model.ProtectedInternal
	case metadata.Assembly:
		return model.Internal
	}
	b.log.Warn("unresolvable accessibility", "member", member, "visibility", string(v))
	return model.Invalid
}
