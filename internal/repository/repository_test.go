package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/jcdickinson/clrdoc/internal/metadata"
	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/jcdickinson/clrdoc/internal/xmldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsJSON = `{
  "assembly": "Widgets",
  "types": [
    {
      "name": "Widget", "namespace": "NS", "visibility": "public", "is_class": true,
      "base_type": {"name": "Object", "namespace": "System"},
      "interfaces": [{"name": "IDisposable", "namespace": "System"}],
      "fields": [
        {"name": "count", "type": {"name": "Int32", "namespace": "System"}, "visibility": "private", "is_init_only": true},
        {"name": "Max", "type": {"name": "Int32", "namespace": "System"}, "visibility": "public", "is_static": true, "has_constant": true},
        {"name": "weird", "type": {"name": "Int32", "namespace": "System"}, "visibility": "family_and_assembly"}
      ],
      "properties": [
        {"name": "Name", "type": {"name": "String", "namespace": "System"},
         "getter": {"name": "get_Name", "visibility": "public"},
         "setter": {"name": "set_Name", "visibility": "private"}},
        {"name": "Id", "type": {"name": "Int32", "namespace": "System"},
         "getter": {"name": "get_Id", "visibility": "assembly"}}
      ],
      "events": [{"name": "Changed", "type": {"name": "EventHandler", "namespace": "System"}}],
      "methods": [
        {"name": ".ctor", "visibility": "public", "is_constructor": true},
        {"name": "Resize", "visibility": "public",
         "return_type": {"name": "Void", "namespace": "System"},
         "parameters": [
           {"name": "width", "type": {"name": "Int32", "namespace": "System"}},
           {"name": "height", "type": {"name": "Int32", "namespace": "System", "by_reference": true}}
         ],
         "source": {"file": "Widget.cs", "start_line": 12, "start_column": 9, "end_line": 15, "end_column": 10}},
        {"name": "Fill", "visibility": "family",
         "parameters": [
           {"name": "items", "type": {"name": "List` + "`" + `1", "namespace": "System.Collections.Generic",
             "generic_arguments": [{"name": "String", "namespace": "System"}]}}
         ]}
      ]
    },
    {
      "name": "Outer` + "`" + `2", "namespace": "NS.Generic", "visibility": "public",
      "is_class": true, "is_abstract": true, "is_sealed": true,
      "generic_parameters": ["T1", "T2"],
      "nested_types": [
        {
          "name": "Inner` + "`" + `1", "visibility": "family", "is_class": true,
          "generic_parameters": ["T1", "T2", "L"],
          "methods": [
            {"name": "Get", "visibility": "public", "return_type": {"name": "L", "generic_parameter": {"position": 2}}}
          ]
        }
      ]
    },
    {"name": "Color", "namespace": "NS", "visibility": "assembly", "is_enum": true},
    {"name": "Point", "namespace": "NS", "visibility": "public", "is_class": true, "is_value_type": true},
    {"name": "<Module>", "visibility": "private", "is_class": true}
  ]
}`

const widgetsXML = `<?xml version="1.0"?>
<doc>
  <assembly><name>Widgets</name></assembly>
  <members>
    <member name="T:NS.Widget">
      <summary>
        A widget.
      </summary>
    </member>
    <member name="M:NS.Widget.#ctor">
      <summary>Creates a widget.</summary>
    </member>
    <member name="M:NS.Widget.Resize(System.Int32,System.Int32@)">
      <summary>Resizes the widget.</summary>
      <param name="width">The new width.</param>
      <param name="depth">Not a parameter.</param>
    </member>
    <member name="M:NS.Widget.Fill(System.Collections.Generic.List{System.String})">
      <param name="items">Items to add.</param>
    </member>
    <member name="F:NS.Widget.Max">
      <summary>Largest size.</summary>
    </member>
    <member name="P:NS.Widget.Name">
      <value>The display name.</value>
    </member>
    <member name="E:NS.Widget.Changed">
      <summary>Raised on change.</summary>
    </member>
    <member name="T:NS.Generic.Outer` + "`" + `2">
      <typeparam name="T1">First.</typeparam>
      <typeparam name="T2">Second.</typeparam>
    </member>
    <member name="T:NS.Generic.Outer` + "`" + `2.Inner` + "`" + `1">
      <typeparam name="L">Leaf.</typeparam>
    </member>
    <member name="M:NS.Generic.Outer` + "`" + `2.Inner` + "`" + `1.Get">
      <returns>The leaf.</returns>
    </member>
  </members>
</doc>`

func loadWidgets(t *testing.T) *Repository {
	t.Helper()
	m, err := metadata.Decode(strings.NewReader(widgetsJSON))
	require.NoError(t, err)
	r := New()
	require.NoError(t, r.Load(m))
	return r
}

func parseDoc(t *testing.T, src string) *xmldoc.Documentation {
	t.Helper()
	var p xmldoc.Parser
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestLoad_NamespaceTree(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)

	roots := r.Namespaces()
	require.Len(t, roots, 1, "types without a namespace are dropped")
	assert.Equal(t, "NS", roots[0].Name)
	assert.Contains(t, roots[0].Types, "Widget")
	assert.Contains(t, roots[0].Types, "Color")

	gen, err := r.Namespace("NS.Generic")
	require.NoError(t, err)
	assert.Equal(t, "NS.Generic", gen.FullName)
	assert.Contains(t, gen.Types, "Outer`2")

	_, err = r.Namespace("NS.Missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.Namespace("")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	assert.Equal(t, []string{"Widgets"}, r.Assemblies())
}

func TestLoad_NestedGenericNames(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)

	outer, err := r.Type("NS.Generic.Outer`2")
	require.NoError(t, err)
	assert.Equal(t, "Outer", outer.Name)
	assert.True(t, outer.IsStatic)
	assert.True(t, outer.IsSealed)
	require.Len(t, outer.GenericParameters, 2)
	require.Len(t, outer.NestedTypes, 1)

	inner := outer.NestedTypes[0]
	assert.Equal(t, "NS.Generic.Outer`2.Inner`1", inner.FullName)
	assert.Equal(t, "NS.Generic.Outer`2", inner.Namespace)
	assert.Equal(t, model.Internal, inner.Accessibility)
	require.Len(t, inner.GenericParameters, 1)
	assert.Equal(t, "L", inner.GenericParameters[0].Name)

	get, err := r.Method("NS.Generic.Outer`2.Inner`1.Get")
	require.NoError(t, err)
	assert.Equal(t, "`2", get.ReturnType)

	indexed, err := r.Type("NS.Generic.Outer`2.Inner`1")
	require.NoError(t, err)
	assert.Same(t, inner, indexed, "index and tree share entities")
}

func TestLoad_Members(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)

	w, err := r.Type("NS.Widget")
	require.NoError(t, err)
	assert.Equal(t, model.Class, w.Kind)
	assert.Equal(t, model.Public, w.Accessibility)
	assert.Equal(t, "Widgets", w.AssemblyName)
	assert.Equal(t, "System.Object", w.BaseType)
	assert.Equal(t, []string{"System.IDisposable"}, w.Interfaces)

	ctor, err := r.Method("NS.Widget.#ctor")
	require.NoError(t, err)
	assert.True(t, ctor.IsConstructor)
	assert.Empty(t, ctor.Parameters)

	resize, err := r.Method("NS.Widget.Resize(System.Int32,System.Int32@)")
	require.NoError(t, err)
	assert.Equal(t, "System.Void", resize.ReturnType)
	require.Len(t, resize.Parameters, 2)
	assert.False(t, resize.Parameters[0].IsByRef)
	assert.True(t, resize.Parameters[1].IsByRef)
	assert.Equal(t, &model.SourceRef{File: "Widget.cs", StartLine: 12, StartColumn: 9, EndLine: 15, EndColumn: 10}, resize.Source)

	fill, err := r.Method("NS.Widget.Fill(System.Collections.Generic.List<System.String>)")
	require.NoError(t, err)
	assert.Equal(t, model.Protected, fill.Accessibility)

	maxField, err := r.Field("NS.Widget.Max")
	require.NoError(t, err)
	assert.True(t, maxField.IsConst)
	assert.True(t, maxField.IsStatic)

	count, err := r.Field("NS.Widget.count")
	require.NoError(t, err)
	assert.True(t, count.IsReadOnly)
	assert.Equal(t, model.Private, count.Accessibility)

	weird, err := r.Field("NS.Widget.weird")
	require.NoError(t, err)
	assert.Equal(t, model.Invalid, weird.Accessibility)

	name, err := r.Property("NS.Widget.Name")
	require.NoError(t, err)
	assert.Equal(t, model.Public, name.Accessibility)
	assert.Equal(t, model.Public, name.GetAccessibility)
	assert.Equal(t, model.Private, name.SetAccessibility)
	assert.True(t, name.HasGetter)
	assert.True(t, name.HasSetter)

	id, err := r.Property("NS.Widget.Id")
	require.NoError(t, err)
	assert.Equal(t, model.Internal, id.Accessibility)
	assert.False(t, id.HasSetter)
	assert.Equal(t, model.Invalid, id.SetAccessibility)

	ev, err := r.Event("NS.Widget.Changed")
	require.NoError(t, err)
	assert.Equal(t, "System.EventHandler", ev.Type)

	color, err := r.Type("NS.Color")
	require.NoError(t, err)
	assert.Equal(t, model.Enum, color.Kind)
	assert.Equal(t, model.Internal, color.Accessibility)

	point, err := r.Type("NS.Point")
	require.NoError(t, err)
	assert.Equal(t, model.Struct, point.Kind)

	assert.Equal(t, Stats{Types: 5, Methods: 4, Fields: 3, Properties: 2, Events: 1}, r.Stats())
}

func TestLookup(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)

	e, err := r.Lookup(model.PropertyMember, "NS.Widget.Name")
	require.NoError(t, err)
	assert.Equal(t, "NS.Widget.Name", e.Identifier())

	_, err = r.Lookup(model.FieldMember, "NS.Widget.Name")
	assert.ErrorIs(t, err, model.ErrNotFound, "lookups are per kind")

	_, err = r.Lookup(model.TypeMember, "")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestCorrelate(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)
	require.NoError(t, r.Correlate(parseDoc(t, widgetsXML)))

	w, _ := r.Type("NS.Widget")
	require.NotNil(t, w.Doc)
	assert.Contains(t, w.Doc.Summary.Text(), "A widget.")

	resize, _ := r.Method("NS.Widget.Resize(System.Int32,System.Int32@)")
	require.NotNil(t, resize.Doc)
	assert.Equal(t, "The new width.", resize.Parameters[0].Description.Text())
	assert.Nil(t, resize.Parameters[1].Description, "unmatched parameters stay undocumented")

	fill, _ := r.Method("NS.Widget.Fill(System.Collections.Generic.List<System.String>)")
	assert.Equal(t, "Items to add.", fill.Parameters[0].Description.Text())

	name, _ := r.Property("NS.Widget.Name")
	assert.Equal(t, "The display name.", name.Doc.Value.Text())

	outer, _ := r.Type("NS.Generic.Outer`2")
	assert.Equal(t, "First.", outer.GenericParameters[0].Description.Text())
	assert.Equal(t, "Second.", outer.GenericParameters[1].Description.Text())
	assert.Equal(t, "Leaf.", outer.NestedTypes[0].GenericParameters[0].Description.Text())

	get, _ := r.Method("NS.Generic.Outer`2.Inner`1.Get")
	assert.Equal(t, "The leaf.", get.Doc.Returns.Text())
}

func TestCorrelate_NotFoundLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)
	before := r.Stats()

	doc := parseDoc(t, `<doc><members>
  <member name="T:NS.Widget"><summary>A widget.</summary></member>
  <member name="M:NS.Widget.Missing(System.String)"><summary>Gone.</summary></member>
</members></doc>`)

	err := r.Correlate(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "NS.Widget.Missing(System.String)")

	w, _ := r.Type("NS.Widget")
	assert.Nil(t, w.Doc, "nothing is attached when any record is unmatched")
	assert.Equal(t, before, r.Stats())
}

func TestCorrelate_Idempotent(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)
	doc := parseDoc(t, widgetsXML)

	require.NoError(t, r.Correlate(doc))
	resize, _ := r.Method("NS.Widget.Resize(System.Int32,System.Int32@)")
	first := *resize.Doc
	firstParam := resize.Parameters[0].Description

	require.NoError(t, r.Correlate(doc))
	assert.Equal(t, first, *resize.Doc)
	assert.Equal(t, firstParam, resize.Parameters[0].Description)
	assert.Len(t, resize.Doc.Parameters, 2)

	assert.ErrorIs(t, r.Correlate(nil), model.ErrInvalidArgument)
}

type failingReader struct{}

func (failingReader) ReadModule() (*metadata.Module, error) {
	return nil, errors.New("corrupt module")
}

func TestLoad_FailurePreservesState(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)
	before := r.Stats()

	err := r.LoadFrom(failingReader{})
	require.Error(t, err)

	err = r.LoadFrom(metadata.File(""))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	bad := &metadata.Module{Assembly: "Bad", Types: []*metadata.TypeRecord{{
		TypeRef:    metadata.TypeRef{Name: "Broken", Namespace: "Other"},
		Visibility: metadata.Public,
		IsClass:    true,
		Fields:     []*metadata.FieldRecord{{Name: "f", Visibility: metadata.Public}},
	}}}
	err = r.Load(bad)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	assert.Equal(t, before, r.Stats())
	_, err = r.Type("NS.Widget")
	assert.NoError(t, err)
	_, err = r.Namespace("Other")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLoad_ReplacesPriorContent(t *testing.T) {
	t.Parallel()
	r := loadWidgets(t)

	other := &metadata.Module{Assembly: "Other", Types: []*metadata.TypeRecord{{
		TypeRef:    metadata.TypeRef{Name: "Thing", Namespace: "Other"},
		Visibility: metadata.Public,
		IsClass:    true,
	}}}
	require.NoError(t, r.Load(other))

	_, err := r.Type("NS.Widget")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.Type("Other.Thing")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Other"}, r.Assemblies())
}

func TestLoad_DuplicateIdentifierLastWins(t *testing.T) {
	t.Parallel()

	mk := func(asm string) *metadata.Module {
		return &metadata.Module{Assembly: asm, Types: []*metadata.TypeRecord{{
			TypeRef:    metadata.TypeRef{Name: "Shared", Namespace: "Dup"},
			Visibility: metadata.Public,
			IsClass:    true,
		}}}
	}

	r := New()
	require.NoError(t, r.Load(mk("First"), mk("Second")))
	shared, err := r.Type("Dup.Shared")
	require.NoError(t, err)
	assert.Equal(t, "Second", shared.AssemblyName)
	assert.Equal(t, []string{"First", "Second"}, r.Assemblies())
}

func TestLoad_UnclassifiableTypePanics(t *testing.T) {
	t.Parallel()

	m := &metadata.Module{Types: []*metadata.TypeRecord{{
		TypeRef:    metadata.TypeRef{Name: "Odd", Namespace: "NS"},
		Visibility: metadata.Public,
	}}}
	assert.Panics(t, func() { _ = New().Load(m) })
}

func TestRestore(t *testing.T) {
	t.Parallel()
	src := loadWidgets(t)

	r := New()
	require.NoError(t, r.Restore("Widgets", src.Namespaces()...))
	assert.Equal(t, src.Stats(), r.Stats())
	_, err := r.Method("NS.Widget.#ctor")
	assert.NoError(t, err)

	assert.ErrorIs(t, r.Restore("", nil), model.ErrInvalidArgument)
}
