package markdown

import (
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// CodeBlock is a code block found in rendered markdown.
type CodeBlock struct {
	Info string
	Code string
}

func parse(src string) ast.Node {
	return gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))
}

// Brief returns the plain text of the first paragraph of src, with runs of
// whitespace collapsed to single spaces.
func Brief(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	for _, child := range parse(src).GetChildren() {
		if p, ok := child.(*ast.Paragraph); ok {
			return strings.Join(strings.Fields(nodeText(p)), " ")
		}
	}
	return ""
}

// CodeBlocks returns every code block in src in document order.
func CodeBlocks(src string) []CodeBlock {
	var blocks []CodeBlock
	ast.WalkFunc(parse(src), func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if cb, ok := node.(*ast.CodeBlock); ok {
			blocks = append(blocks, CodeBlock{
				Info: string(cb.Info),
				Code: strings.TrimRight(string(cb.Literal), "\n"),
			})
		}
		return ast.GoToNext
	})
	return blocks
}

func nodeText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n.(type) {
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteByte(' ')
			return ast.GoToNext
		}
		if leaf := n.AsLeaf(); leaf != nil && leaf.Literal != nil {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}
