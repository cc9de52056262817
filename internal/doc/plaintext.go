// Package doc converts a document tree into its external representations:
// plain text, Markdown and HTML, plus length-bounded chunking of flattened
// text for thread-style platforms.
//
// All conversions are pure: identical input yields identical output and no
// conversion mutates the tree. Unknown node kinds degrade to empty output so
// a document produced by a newer editor (or an AI import) never fails to
// serialize as a whole.
package doc

import (
	"strings"

	"github.com/inkhorn/inkhorn/internal/model"
)

// ToPlainText flattens a document depth-first. Paragraphs, headings and list
// blocks are followed by a blank line; list items render as "• item" lines.
// The result is trimmed of trailing whitespace.
func ToPlainText(n *model.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writePlain(&b, n)
	return strings.TrimRight(b.String(), " \t\n")
}

func writePlain(b *strings.Builder, n *model.Node) {
	switch n.Kind {
	case model.KindText:
		b.WriteString(n.Text)
	case model.KindParagraph, model.KindHeading:
		for _, c := range n.Children {
			writePlain(b, c)
		}
		b.WriteString("\n\n")
	case model.KindBulletList, model.KindOrderedList:
		for _, item := range n.Children {
			b.WriteString("• ")
			b.WriteString(strings.TrimSpace(inlineText(item)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	case model.KindDoc, model.KindBlockquote, model.KindListItem:
		// Containers contribute no separator of their own.
		for _, c := range n.Children {
			writePlain(b, c)
		}
	}
}

// inlineText concatenates every text payload beneath a node without
// inserting separators.
func inlineText(n *model.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == model.KindText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(inlineText(c))
	}
	return b.String()
}
