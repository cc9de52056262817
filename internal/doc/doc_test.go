package doc

import (
	"testing"

	"github.com/inkhorn/inkhorn/internal/model"
)

func TestToPlainText(t *testing.T) {
	testCases := []struct {
		name     string
		node     *model.Node
		expected string
	}{
		{
			name:     "Nil Document",
			node:     nil,
			expected: "",
		},
		{
			name:     "Empty Document",
			node:     model.NewDoc(),
			expected: "",
		},
		{
			name: "Heading And Paragraph",
			node: model.NewDoc(
				model.NewHeading(1, model.NewText("Hello")),
				model.NewParagraph(model.NewText("World")),
			),
			expected: "Hello\n\nWorld",
		},
		{
			name: "Marks Are Dropped",
			node: model.NewDoc(
				model.NewParagraph(model.NewText("bold", model.MarkBold), model.NewText(" and plain")),
			),
			expected: "bold and plain",
		},
		{
			name: "Bullet List Items",
			node: model.NewDoc(
				model.NewParagraph(model.NewText("Intro")),
				model.NewBulletList(
					model.NewListItem(model.NewParagraph(model.NewText("first"))),
					model.NewListItem(model.NewParagraph(model.NewText("second"))),
				),
			),
			expected: "Intro\n\n• first\n• second",
		},
		{
			name: "Blockquote Is Transparent",
			node: model.NewDoc(
				model.NewBlockquote(model.NewParagraph(model.NewText("quoted"))),
				model.NewParagraph(model.NewText("after")),
			),
			expected: "quoted\n\nafter",
		},
		{
			name: "Image Contributes Nothing",
			node: model.NewDoc(
				model.NewParagraph(model.NewText("before")),
				&model.Node{Kind: model.KindImage, Attrs: &model.ImageAttrs{Src: "a.png", Alt: "alt"}},
				model.NewParagraph(model.NewText("after")),
			),
			expected: "before\n\nafter",
		},
		{
			name: "Unknown Kind Degrades To Empty",
			node: model.NewDoc(
				model.NewParagraph(model.NewText("known")),
				&model.Node{Kind: "mystery", Children: []*model.Node{model.NewText("hidden")}},
			),
			expected: "known",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToPlainText(tc.node)
			if got != tc.expected {
				t.Errorf("ToPlainText() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		node     *model.Node
		expected string
	}{
		{
			name:     "Nil Document",
			node:     nil,
			expected: "",
		},
		{
			name: "Heading Levels Clamp",
			node: model.NewDoc(
				model.NewHeading(0, model.NewText("low")),
				model.NewHeading(2, model.NewText("mid")),
				model.NewHeading(9, model.NewText("high")),
			),
			expected: "# low\n\n## mid\n\n### high",
		},
		{
			name: "Bullet And Ordered Lists",
			node: model.NewDoc(
				model.NewBulletList(
					model.NewListItem(model.NewText("a")),
					model.NewListItem(model.NewText("b")),
				),
				model.NewOrderedList(
					model.NewListItem(model.NewText("one")),
					model.NewListItem(model.NewText("two")),
				),
			),
			expected: "- a\n- b\n\n1. one\n2. two",
		},
		{
			name: "Blockquote Prefixes Every Line",
			node: model.NewDoc(
				model.NewBlockquote(
					model.NewParagraph(model.NewText("first")),
					model.NewParagraph(model.NewText("second")),
				),
			),
			expected: "> first\n> second",
		},
		{
			name:     "Image",
			node:     model.NewDoc(model.NewImage("cat.png", "a cat")),
			expected: "![a cat](cat.png)",
		},
		{
			name: "Unknown Kind Degrades To Empty",
			node: model.NewDoc(
				&model.Node{Kind: "mystery"},
				model.NewParagraph(model.NewText("kept")),
			),
			expected: "\n\nkept",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToMarkdown(tc.node)
			if got != tc.expected {
				t.Errorf("ToMarkdown() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestToMarkdownMarkNesting(t *testing.T) {
	// Marks wrap innermost-first in recorded order, so the first recorded
	// mark ends up closest to the text.
	testCases := []struct {
		name     string
		marks    []model.Mark
		expected string
	}{
		{"Bold", []model.Mark{model.MarkBold}, "**text**"},
		{"Italic", []model.Mark{model.MarkItalic}, "*text*"},
		{"Strike", []model.Mark{model.MarkStrike}, "~~text~~"},
		{"Underline", []model.Mark{model.MarkUnderline}, "<u>text</u>"},
		{"Bold Then Underline", []model.Mark{model.MarkBold, model.MarkUnderline}, "<u>**text**</u>"},
		{"Underline Then Bold", []model.Mark{model.MarkUnderline, model.MarkBold}, "**<u>text</u>**"},
		{"Bold Then Italic", []model.Mark{model.MarkBold, model.MarkItalic}, "***text***"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node := model.NewParagraph(model.NewText("text", tc.marks...))
			got := ToMarkdown(node)
			if got != tc.expected {
				t.Errorf("ToMarkdown() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestToHTML(t *testing.T) {
	testCases := []struct {
		name     string
		node     *model.Node
		expected string
	}{
		{
			name: "Heading And Paragraph",
			node: model.NewDoc(
				model.NewHeading(2, model.NewText("Title")),
				model.NewParagraph(model.NewText("Body")),
			),
			expected: "<h2>Title</h2>\n<p>Body</p>",
		},
		{
			name: "Lists",
			node: model.NewDoc(
				model.NewBulletList(
					model.NewListItem(model.NewText("a")),
					model.NewListItem(model.NewText("b")),
				),
			),
			expected: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "Text Is Escaped",
			node: model.NewDoc(
				model.NewParagraph(model.NewText("<script>alert(1)</script>")),
			),
			expected: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>",
		},
		{
			name:     "Image Attributes Are Escaped",
			node:     model.NewDoc(model.NewImage(`a".png`, `an "alt"`)),
			expected: `<img src="a&#34;.png" alt="an &#34;alt&#34;">`,
		},
		{
			name: "Marks Nest In Recorded Order",
			node: model.NewParagraph(
				model.NewText("text", model.MarkBold, model.MarkItalic),
			),
			expected: "<p><em><strong>text</strong></em></p>",
		},
		{
			name: "Blockquote Keeps Block Children",
			node: model.NewDoc(
				model.NewBlockquote(model.NewParagraph(model.NewText("quoted"))),
			),
			expected: "<blockquote><p>quoted</p></blockquote>",
		},
		{
			name:     "Unknown Kind Degrades To Empty",
			node:     &model.Node{Kind: "mystery"},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToHTML(tc.node)
			if got != tc.expected {
				t.Errorf("ToHTML() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestSerializersDoNotMutate(t *testing.T) {
	node := model.NewDoc(
		model.NewHeading(1, model.NewText("Hello")),
		model.NewParagraph(model.NewText("World", model.MarkBold)),
	)

	before, err := node.MarshalCanonical()
	if err != nil {
		t.Fatalf("MarshalCanonical() error: %v", err)
	}

	ToPlainText(node)
	ToMarkdown(node)
	ToHTML(node)

	after, err := node.MarshalCanonical()
	if err != nil {
		t.Fatalf("MarshalCanonical() error: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("serialization mutated the tree:\nbefore: %s\nafter:  %s", before, after)
	}
}
