package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/markdown"
	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/spf13/cobra"
)

var inspectDoc string

var inspectCmd = &cobra.Command{
	Use:   "inspect <metadata>",
	Short: "Print the namespace tree of a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDoc, "doc", "", "XML documentation file (default: next to the metadata file)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	repo, err := loadRepository(newInput(args[0], inspectDoc))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, ns := range repo.Namespaces() {
		writeNamespace(out, ns, 0)
	}
	s := repo.Stats()
	fmt.Fprintf(out, "\n%d types, %d methods, %d fields, %d properties, %d events\n",
		s.Types, s.Methods, s.Fields, s.Properties, s.Events)
	return nil
}

func writeNamespace(w io.Writer, ns *model.Namespace, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(ns.Types) > 0 {
		fmt.Fprintf(w, "%s%s\n", indent, ns.FullName)
		for _, name := range slices.Sorted(maps.Keys(ns.Types)) {
			writeType(w, ns.Types[name], depth+1)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(ns.Children)) {
		writeNamespace(w, ns.Children[name], depth)
	}
}

func writeType(w io.Writer, t *model.Type, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s %s (methods: %d, fields: %d, properties: %d, events: %d)\n",
		indent, t.Accessibility, t.Kind, t.FullName,
		len(t.Methods), len(t.Fields), len(t.Properties), len(t.Events))
	if t.Doc != nil {
		if brief := markdown.Brief(markdown.ConvertInlineTags(t.Doc.Summary)); brief != "" {
			fmt.Fprintf(w, "%s  %s\n", indent, brief)
		}
	}
	for _, nested := range t.NestedTypes {
		writeType(w, nested, depth+1)
	}
}
