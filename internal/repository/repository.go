// Package repository builds the namespace tree of one or more modules,
// indexes every entity by canonical identifier and merges documentation
// into it.
//
// A Repository is not safe for concurrent use.
package repository

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/metadata"
	"github.com/jcdickinson/clrdoc/internal/model"
)

// Repository owns the namespace tree and the identifier indices over it.
type Repository struct {
	log        *slog.Logger
	roots      map[string]*model.Namespace
	idx        *index
	assemblies []string
}

type Option func(*Repository)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates an empty repository.
func New(opts ...Option) *Repository {
	r := &Repository{
		log:   slog.New(slog.DiscardHandler),
		roots: make(map[string]*model.Namespace),
		idx:   newIndex(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Load replaces the repository content with the tree built from modules.
// Nested type records must be linked to their declaring types, as
// metadata.Decode does. On error the previous content is left untouched.
func (r *Repository) Load(modules ...*metadata.Module) error {
	b := newBuilder(r.log)
	var assemblies []string
	for _, m := range modules {
		if err := b.addModule(m); err != nil {
			return fmt.Errorf("loading module: %w", err)
		}
		assemblies = append(assemblies, m.Assembly)
	}

	r.commit(b.roots, assemblies)
	return nil
}

// LoadFrom reads every module from readers and loads them. On error the
// previous content is left untouched.
func (r *Repository) LoadFrom(readers ...metadata.Reader) error {
	modules := make([]*metadata.Module, 0, len(readers))
	for _, rd := range readers {
		m, err := rd.ReadModule()
		if err != nil {
			return fmt.Errorf("reading module: %w", err)
		}
		modules = append(modules, m)
	}
	return r.Load(modules...)
}

// Restore replaces the repository content with an already built tree, such
// as one read back from a snapshot, and re-indexes it.
func (r *Repository) Restore(assembly string, namespaces ...*model.Namespace) error {
	roots := make(map[string]*model.Namespace, len(namespaces))
	for _, ns := range namespaces {
		if ns == nil || ns.Name == "" {
			return fmt.Errorf("%w: namespace without a name", model.ErrInvalidArgument)
		}
		roots[ns.Name] = ns
	}
	var assemblies []string
	if assembly != "" {
		assemblies = []string{assembly}
	}
	r.commit(roots, assemblies)
	return nil
}

func (r *Repository) commit(roots map[string]*model.Namespace, assemblies []string) {
	idx := buildIndex(r.log, roots)
	r.roots, r.idx, r.assemblies = roots, idx, assemblies
	r.log.Info("repository loaded",
		"assemblies", assemblies,
		"types", len(idx.types),
		"methods", len(idx.methods),
		"fields", len(idx.fields),
		"properties", len(idx.properties),
		"events", len(idx.events),
	)
}

// Assemblies returns the names of the loaded modules in load order.
func (r *Repository) Assemblies() []string {
	return slices.Clone(r.assemblies)
}

// Namespaces returns the root namespaces sorted by name.
func (r *Repository) Namespaces() []*model.Namespace {
	out := make([]*model.Namespace, 0, len(r.roots))
	for _, ns := range r.roots {
		out = append(out, ns)
	}
	slices.SortFunc(out, func(a, b *model.Namespace) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Namespace returns the namespace with the given dotted full name.
func (r *Repository) Namespace(fullName string) (*model.Namespace, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: empty namespace name", model.ErrInvalidArgument)
	}
	parts := strings.Split(fullName, ".")
	ns, ok := r.roots[parts[0]]
	for _, part := range parts[1:] {
		if !ok {
			break
		}
		ns, ok = ns.Children[part]
	}
	if !ok {
		return nil, fmt.Errorf("%w: namespace %s", model.ErrNotFound, fullName)
	}
	return ns, nil
}

// Stats counts the indexed entities.
type Stats struct {
	Types, Methods, Fields, Properties, Events int
}

func (r *Repository) Stats() Stats {
	return Stats{
		Types:      len(r.idx.types),
		Methods:    len(r.idx.methods),
		Fields:     len(r.idx.fields),
		Properties: len(r.idx.properties),
		Events:     len(r.idx.events),
	}
}

// Lookup returns the entity of the given kind indexed under id.
func (r *Repository) Lookup(kind model.MemberKind, id string) (model.Documentable, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", model.ErrInvalidArgument)
	}
	e, ok := r.idx.lookup(kind, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", model.ErrNotFound, kind, id)
	}
	return e, nil
}

func (r *Repository) Type(id string) (*model.Type, error) {
	e, err := r.Lookup(model.TypeMember, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Type), nil
}

func (r *Repository) Method(id string) (*model.Method, error) {
	e, err := r.Lookup(model.MethodMember, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Method), nil
}

func (r *Repository) Field(id string) (*model.Field, error) {
	e, err := r.Lookup(model.FieldMember, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Field), nil
}

func (r *Repository) Property(id string) (*model.Property, error) {
	e, err := r.Lookup(model.PropertyMember, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Property), nil
}

func (r *Repository) Event(id string) (*model.Event, error) {
	e, err := r.Lookup(model.EventMember, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Event), nil
}
