// Package importer converts Markdown (AI-generated drafts, uploaded files)
// into the document tree the editor operates on.
package importer

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

// FromMarkdown parses a Markdown document into a document tree. A leading
// "+++" TOML front matter block, if present, is stripped and returned
// alongside. AST nodes with no document-model equivalent are skipped;
// their text content is preserved where possible.
func FromMarkdown(md []byte) (*model.Node, *util.FrontMatter, error) {
	md = markdown.NormalizeNewlines(md)

	fm, err := util.GetFrontMatter(md)
	if err != nil {
		return nil, nil, err
	}
	if fm != nil {
		md = md[fm.Consumed:]
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := p.Parse(md)

	docNode := model.NewDoc(blockNodes(root.GetChildren())...)
	return docNode, fm, nil
}

func blockNodes(nodes []ast.Node) []*model.Node {
	out := make([]*model.Node, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.Heading:
			level := v.Level
			if level < 1 {
				level = 1
			} else if level > 3 {
				// The editor only knows three heading levels.
				level = 3
			}
			out = append(out, model.NewHeading(level, inlineNodes(v.GetChildren(), nil)...))
		case *ast.Paragraph:
			out = append(out, model.NewParagraph(inlineNodes(v.GetChildren(), nil)...))
		case *ast.List:
			out = append(out, listNode(v))
		case *ast.BlockQuote:
			out = append(out, model.NewBlockquote(blockNodes(v.GetChildren())...))
		case *ast.CodeBlock:
			// No code kind in the document model; keep the text so
			// nothing an AI draft produced is silently dropped.
			text := strings.TrimRight(string(v.Literal), "\n")
			if text != "" {
				out = append(out, model.NewParagraph(model.NewText(text)))
			}
		}
	}
	return out
}

func listNode(list *ast.List) *model.Node {
	items := make([]*model.Node, 0, len(list.GetChildren()))
	for _, child := range list.GetChildren() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		items = append(items, model.NewListItem(listItemChildren(item.GetChildren())...))
	}
	if list.ListFlags&ast.ListTypeOrdered != 0 {
		return model.NewOrderedList(items...)
	}
	return model.NewBulletList(items...)
}

// listItemChildren unwraps the paragraph gomarkdown places around tight
// list item content so items hold inline nodes directly.
func listItemChildren(nodes []ast.Node) []*model.Node {
	if len(nodes) == 1 {
		if para, ok := nodes[0].(*ast.Paragraph); ok {
			return inlineNodes(para.GetChildren(), nil)
		}
	}
	return blockNodes(nodes)
}

func inlineNodes(nodes []ast.Node, marks []model.Mark) []*model.Node {
	out := make([]*model.Node, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.Text:
			if len(v.Literal) > 0 {
				out = append(out, model.NewText(string(v.Literal), marks...))
			}
		case *ast.Code:
			if len(v.Literal) > 0 {
				out = append(out, model.NewText(string(v.Literal), marks...))
			}
		case *ast.Strong:
			out = append(out, inlineNodes(v.GetChildren(), withMark(marks, model.MarkBold))...)
		case *ast.Emph:
			out = append(out, inlineNodes(v.GetChildren(), withMark(marks, model.MarkItalic))...)
		case *ast.Del:
			out = append(out, inlineNodes(v.GetChildren(), withMark(marks, model.MarkStrike))...)
		case *ast.Image:
			out = append(out, model.NewImage(string(v.Destination), plainText(v.GetChildren())))
		case *ast.Link:
			// Keep the link text, drop the target.
			out = append(out, inlineNodes(v.GetChildren(), marks)...)
		case *ast.Softbreak, *ast.Hardbreak:
			out = append(out, model.NewText(" ", marks...))
		default:
			out = append(out, inlineNodes(n.GetChildren(), marks)...)
		}
	}
	return out
}

// withMark copies the mark list before appending so sibling branches never
// share a backing array.
func withMark(marks []model.Mark, m model.Mark) []model.Mark {
	next := make([]model.Mark, 0, len(marks)+1)
	next = append(next, marks...)
	return append(next, m)
}

func plainText(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Literal)
			continue
		}
		b.WriteString(plainText(n.GetChildren()))
	}
	return b.String()
}
