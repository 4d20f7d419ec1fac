package repository

import (
	"log/slog"

	"github.com/jcdickinson/clrdoc/internal/model"
)

// index maps canonical identifiers to the entities owned by the namespace
// tree. It is always rebuilt from scratch.
type index struct {
	types      map[string]*model.Type
	methods    map[string]*model.Method
	fields     map[string]*model.Field
	properties map[string]*model.Property
	events     map[string]*model.Event
}

func newIndex() *index {
	return &index{
		types:      make(map[string]*model.Type),
		methods:    make(map[string]*model.Method),
		fields:     make(map[string]*model.Field),
		properties: make(map[string]*model.Property),
		events:     make(map[string]*model.Event),
	}
}

func buildIndex(log *slog.Logger, roots map[string]*model.Namespace) *index {
	idx := newIndex()
	for _, ns := range roots {
		idx.addNamespace(log, ns)
	}
	return idx
}

func (idx *index) addNamespace(log *slog.Logger, ns *model.Namespace) {
	for _, t := range ns.Types {
		idx.addType(log, t)
	}
	for _, child := range ns.Children {
		idx.addNamespace(log, child)
	}
}

func (idx *index) addType(log *slog.Logger, t *model.Type) {
	put(log, idx.types, t)
	for _, m := range t.Methods {
		put(log, idx.methods, m)
	}
	for _, f := range t.Fields {
		put(log, idx.fields, f)
	}
	for _, p := range t.Properties {
		put(log, idx.properties, p)
	}
	for _, e := range t.Events {
		put(log, idx.events, e)
	}
	for _, nested := range t.NestedTypes {
		idx.addType(log, nested)
	}
}

// put stores e under its identifier. A later entity replaces an earlier one
// with the same identifier.
func put[E model.Documentable](log *slog.Logger, m map[string]E, e E) {
	id := e.Identifier()
	if _, dup := m[id]; dup {
		log.Warn("duplicate identifier", "id", id)
	}
	m[id] = e
}

func (idx *index) lookup(kind model.MemberKind, id string) (model.Documentable, bool) {
	switch kind {
	case model.TypeMember:
		if t, ok := idx.types[id]; ok {
			return t, true
		}
	case model.MethodMember:
		if m, ok := idx.methods[id]; ok {
			return m, true
		}
	case model.FieldMember:
		if f, ok := idx.fields[id]; ok {
			return f, true
		}
	case model.PropertyMember:
		if p, ok := idx.properties[id]; ok {
			return p, true
		}
	case model.EventMember:
		if e, ok := idx.events[id]; ok {
			return e, true
		}
	}
	return nil, false
}
