package doc

import (
	"fmt"
	"strings"

	"github.com/inkhorn/inkhorn/internal/model"
)

// ToMarkdown renders a document tree as Markdown. Top-level blocks are
// joined with a blank line. Marks wrap text innermost-first in the order
// they were recorded: [bold, italic] yields ***text***-style nesting with
// bold applied first.
func ToMarkdown(n *model.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == model.KindDoc {
		blocks := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			blocks = append(blocks, markdownNode(c))
		}
		return strings.Join(blocks, "\n\n")
	}
	return markdownNode(n)
}

func markdownNode(n *model.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case model.KindHeading:
		level := n.Level
		if level < 1 {
			level = 1
		} else if level > 3 {
			level = 3
		}
		return strings.Repeat("#", level) + " " + markdownInline(n.Children)
	case model.KindParagraph:
		return markdownInline(n.Children)
	case model.KindBulletList:
		items := make([]string, 0, len(n.Children))
		for _, item := range n.Children {
			items = append(items, "- "+markdownNode(item))
		}
		return strings.Join(items, "\n")
	case model.KindOrderedList:
		items := make([]string, 0, len(n.Children))
		for i, item := range n.Children {
			items = append(items, fmt.Sprintf("%d. %s", i+1, markdownNode(item)))
		}
		return strings.Join(items, "\n")
	case model.KindListItem:
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(markdownNode(c))
		}
		return b.String()
	case model.KindBlockquote:
		inner := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			inner = append(inner, markdownNode(c))
		}
		lines := strings.Split(strings.Join(inner, "\n"), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")
	case model.KindImage:
		var src, alt string
		if n.Attrs != nil {
			src, alt = n.Attrs.Src, n.Attrs.Alt
		}
		return fmt.Sprintf("![%s](%s)", alt, src)
	case model.KindText:
		return applyMarks(n.Text, n.Marks)
	default:
		// Unknown kinds serialize to nothing rather than failing the
		// whole document.
		return ""
	}
}

func markdownInline(children []*model.Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(markdownNode(c))
	}
	return b.String()
}

func applyMarks(text string, marks []model.Mark) string {
	s := text
	for _, m := range marks {
		switch m {
		case model.MarkBold:
			s = "**" + s + "**"
		case model.MarkItalic:
			s = "*" + s + "*"
		case model.MarkStrike:
			s = "~~" + s + "~~"
		case model.MarkUnderline:
			s = "<u>" + s + "</u>"
		}
	}
	return s
}
