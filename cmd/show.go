package cmd

import (
	"fmt"

	"github.com/jcdickinson/clrdoc/internal/markdown"
	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/jcdickinson/clrdoc/internal/xmldoc"
	"github.com/spf13/cobra"
)

var (
	showDoc  string
	showCode bool
)

var showCmd = &cobra.Command{
	Use:   "show <metadata> <K:identifier>",
	Short: "Print the documentation page of one type or member",
	Long: `Print the markdown documentation page of the entity with the given
documentation identifier, for example T:NS.Widget or M:NS.Widget.#ctor.`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showDoc, "doc", "", "XML documentation file (default: next to the metadata file)")
	showCmd.Flags().BoolVar(&showCode, "code", false, "print only the code examples")
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, id, err := xmldoc.ParseIdentifier(args[1])
	if err != nil {
		return err
	}

	repo, err := loadRepository(newInput(args[0], showDoc))
	if err != nil {
		return err
	}
	entity, err := repo.Lookup(kind, id)
	if err != nil {
		return err
	}

	page := markdown.Page(entity)
	out := cmd.OutOrStdout()
	if !showCode {
		fmt.Fprint(out, page)
		return nil
	}

	blocks := markdown.CodeBlocks(page)
	if len(blocks) == 0 {
		return fmt.Errorf("%w: %s has no code examples", model.ErrNotFound, args[1])
	}
	for i, b := range blocks {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, b.Code)
	}
	return nil
}
