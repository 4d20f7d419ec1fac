package markdown

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
	"gopkg.in/yaml.v3"
)

// AddFrontMatter prepends a YAML front-matter block with the given keys in
// sorted order. Values are written as double-quoted scalars.
func AddFrontMatter(src string, fields map[string]string) string {
	if len(fields) == 0 {
		return src
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: fields[k], Style: yaml.DoubleQuotedStyle},
		)
	}
	front, err := yaml.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("encoding front matter: %v", err))
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(src)
	return b.String()
}

// Page renders the documentation page of a single entity.
func Page(d model.Documentable) string {
	var (
		body  strings.Builder
		front = map[string]string{"id": d.Identifier()}
	)

	switch e := d.(type) {
	case *model.Type:
		front["kind"] = e.Kind.String()
		front["accessibility"] = e.Accessibility.String()
		if e.AssemblyName != "" {
			front["assembly"] = e.AssemblyName
		}
		typePage(&body, e)
	case *model.Method:
		front["kind"] = "method"
		if e.IsConstructor {
			front["kind"] = "constructor"
		}
		front["accessibility"] = e.Accessibility.String()
		methodPage(&body, e)
	case *model.Field:
		front["kind"] = "field"
		front["accessibility"] = e.Accessibility.String()
		heading(&body, e.FullName)
		fmt.Fprintf(&body, "Type: `%s`\n\n", e.Type)
		docSections(&body, e.Doc)
	case *model.Property:
		front["kind"] = "property"
		front["accessibility"] = e.Accessibility.String()
		heading(&body, e.FullName)
		fmt.Fprintf(&body, "Type: `%s`\n\n", e.Type)
		docSections(&body, e.Doc)
	case *model.Event:
		front["kind"] = "event"
		heading(&body, e.FullName)
		if e.Type != "" {
			fmt.Fprintf(&body, "Type: `%s`\n\n", e.Type)
		}
		docSections(&body, e.Doc)
	default:
		heading(&body, d.Identifier())
	}

	return AddFrontMatter(strings.TrimRight(body.String(), "\n")+"\n", front)
}

func heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s\n\n", title)
}

func section(b *strings.Builder, title, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", title, text)
}

func typePage(b *strings.Builder, t *model.Type) {
	heading(b, t.FullName)
	if t.BaseType != "" {
		fmt.Fprintf(b, "Inherits: `%s`\n\n", t.BaseType)
	}
	if len(t.Interfaces) > 0 {
		fmt.Fprintf(b, "Implements: `%s`\n\n", strings.Join(t.Interfaces, "`, `"))
	}
	if t.Doc != nil {
		if s := ConvertInlineTags(t.Doc.Summary); s != "" {
			b.WriteString(s + "\n\n")
		}
	}
	genericParams(b, t.GenericParameters)
	memberDocSections(b, t.Doc)

	var members strings.Builder
	for _, n := range t.NestedTypes {
		listItem(&members, n.FullName, n.Doc)
	}
	section(b, "Nested types", strings.TrimRight(members.String(), "\n"))

	members.Reset()
	for _, m := range t.Methods {
		listItem(&members, m.FullName, m.Doc)
	}
	section(b, "Methods", strings.TrimRight(members.String(), "\n"))

	members.Reset()
	for _, p := range t.Properties {
		listItem(&members, p.FullName, p.Doc)
	}
	section(b, "Properties", strings.TrimRight(members.String(), "\n"))

	members.Reset()
	for _, f := range t.Fields {
		listItem(&members, f.FullName, f.Doc)
	}
	section(b, "Fields", strings.TrimRight(members.String(), "\n"))

	members.Reset()
	for _, e := range t.Events {
		listItem(&members, e.FullName, e.Doc)
	}
	section(b, "Events", strings.TrimRight(members.String(), "\n"))
}

func listItem(b *strings.Builder, name string, d *model.DocPayload) {
	fmt.Fprintf(b, "- `%s`", name)
	if d != nil {
		if brief := Brief(ConvertInlineTags(d.Summary)); brief != "" {
			b.WriteString(": " + brief)
		}
	}
	b.WriteByte('\n')
}

func methodPage(b *strings.Builder, m *model.Method) {
	heading(b, m.FullName)
	if m.Doc != nil {
		if s := ConvertInlineTags(m.Doc.Summary); s != "" {
			b.WriteString(s + "\n\n")
		}
	}

	if len(m.Parameters) > 0 {
		var params strings.Builder
		for _, p := range m.Parameters {
			modifier := ""
			switch {
			case p.IsOut:
				modifier = "out "
			case p.IsByRef:
				modifier = "ref "
			}
			fmt.Fprintf(&params, "- `%s` (%s`%s`)", p.Name, modifier, p.Type)
			if desc := ConvertInlineTags(p.Description); desc != "" {
				params.WriteString(": " + strings.ReplaceAll(desc, "\n", " "))
			}
			params.WriteByte('\n')
		}
		section(b, "Parameters", strings.TrimRight(params.String(), "\n"))
	}
	genericParams(b, m.GenericParameters)

	if m.ReturnType != "" && !m.IsConstructor {
		returns := fmt.Sprintf("`%s`", m.ReturnType)
		if m.Doc != nil {
			if r := ConvertInlineTags(m.Doc.Returns); r != "" {
				returns += ": " + r
			}
		}
		section(b, "Returns", returns)
	}
	memberDocSections(b, m.Doc)

	if src := m.Source; src != nil {
		section(b, "Source", fmt.Sprintf("%s:%d:%d", src.File, src.StartLine, src.StartColumn))
	}
}

func genericParams(b *strings.Builder, params []*model.GenericParam) {
	if len(params) == 0 {
		return
	}
	var s strings.Builder
	for _, gp := range params {
		fmt.Fprintf(&s, "- `%s`", gp.Name)
		if desc := ConvertInlineTags(gp.Description); desc != "" {
			s.WriteString(": " + strings.ReplaceAll(desc, "\n", " "))
		}
		s.WriteByte('\n')
	}
	section(b, "Type parameters", strings.TrimRight(s.String(), "\n"))
}

// docSections writes the summary followed by the remaining documentation
// sections.
func docSections(b *strings.Builder, d *model.DocPayload) {
	if d == nil {
		return
	}
	if s := ConvertInlineTags(d.Summary); s != "" {
		b.WriteString(s + "\n\n")
	}
	section(b, "Value", ConvertInlineTags(d.Value))
	memberDocSections(b, d)
}

func memberDocSections(b *strings.Builder, d *model.DocPayload) {
	if d == nil {
		return
	}
	if len(d.Exceptions) > 0 {
		var s strings.Builder
		for _, ex := range d.Exceptions {
			name := ex.Attr("cref")
			if _, after, ok := strings.Cut(name, ":"); ok {
				name = after
			}
			fmt.Fprintf(&s, "- `%s`", name)
			if desc := ConvertInlineTags(ex); desc != "" {
				s.WriteString(": " + strings.ReplaceAll(desc, "\n", " "))
			}
			s.WriteByte('\n')
		}
		section(b, "Exceptions", strings.TrimRight(s.String(), "\n"))
	}
	section(b, "Remarks", ConvertInlineTags(d.Remarks))
	section(b, "Example", ConvertInlineTags(d.Example))
}
