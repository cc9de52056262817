package doc

import (
	"fmt"
	"html"
	"strings"

	"github.com/inkhorn/inkhorn/internal/model"
)

// ToHTML renders a document tree as an HTML fragment using the same
// recursive-descent strategy as ToMarkdown. Text payloads and image
// attributes are escaped; unknown node kinds render as nothing.
func ToHTML(n *model.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == model.KindDoc {
		blocks := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			blocks = append(blocks, htmlNode(c))
		}
		return strings.Join(blocks, "\n")
	}
	return htmlNode(n)
}

func htmlNode(n *model.Node) string {
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
		return fmt.Sprintf("<h%d>%s</h%d>", level, htmlInline(n.Children), level)
	case model.KindParagraph:
		return "<p>" + htmlInline(n.Children) + "</p>"
	case model.KindBulletList:
		return "<ul>" + htmlListItems(n.Children) + "</ul>"
	case model.KindOrderedList:
		return "<ol>" + htmlListItems(n.Children) + "</ol>"
	case model.KindListItem:
		return "<li>" + htmlInline(n.Children) + "</li>"
	case model.KindBlockquote:
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(htmlNode(c))
		}
		return "<blockquote>" + b.String() + "</blockquote>"
	case model.KindImage:
		var src, alt string
		if n.Attrs != nil {
			src, alt = n.Attrs.Src, n.Attrs.Alt
		}
		return fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
	case model.KindText:
		s := html.EscapeString(n.Text)
		for _, m := range n.Marks {
			switch m {
			case model.MarkBold:
				s = "<strong>" + s + "</strong>"
			case model.MarkItalic:
				s = "<em>" + s + "</em>"
			case model.MarkStrike:
				s = "<s>" + s + "</s>"
			case model.MarkUnderline:
				s = "<u>" + s + "</u>"
			}
		}
		return s
	default:
		return ""
	}
}

func htmlListItems(items []*model.Node) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(htmlNode(item))
	}
	return b.String()
}

func htmlInline(children []*model.Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(htmlNode(c))
	}
	return b.String()
}
