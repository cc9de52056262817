// Package model defines core data structures and types for the authoring application.
package model

import "encoding/json"

// NodeKind discriminates the node variants of a rich-text document tree.
type NodeKind string

const (
	KindDoc         NodeKind = "doc"
	KindParagraph   NodeKind = "paragraph"
	KindHeading     NodeKind = "heading"
	KindText        NodeKind = "text"
	KindBulletList  NodeKind = "bulletList"
	KindOrderedList NodeKind = "orderedList"
	KindListItem    NodeKind = "listItem"
	KindBlockquote  NodeKind = "blockquote"
	KindImage       NodeKind = "image"
)

// Mark is an inline formatting flag on a text node. The order in which marks
// are recorded determines the nesting of emitted wrapper syntax.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkStrike    Mark = "strike"
	MarkUnderline Mark = "underline"
)

// ImageAttrs carries the attributes of an image node.
type ImageAttrs struct {
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Node is one node of a document tree. A doc node's children are block-level
// nodes only; text nodes never appear directly under doc. An empty paragraph
// (no children) is valid.
type Node struct {
	Kind NodeKind `json:"kind"`

	// Level is set on headings only (1-3).
	Level int `json:"level,omitempty"`

	// Text and Marks are set on text nodes only.
	Text  string `json:"text,omitempty"`
	Marks []Mark `json:"marks,omitempty"`

	Attrs *ImageAttrs `json:"attrs,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

func NewDoc(children ...*Node) *Node {
	return &Node{Kind: KindDoc, Children: children}
}

func NewParagraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func NewHeading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Level: level, Children: children}
}

func NewText(text string, marks ...Mark) *Node {
	return &Node{Kind: KindText, Text: text, Marks: marks}
}

func NewBulletList(items ...*Node) *Node {
	return &Node{Kind: KindBulletList, Children: items}
}

func NewOrderedList(items ...*Node) *Node {
	return &Node{Kind: KindOrderedList, Children: items}
}

func NewListItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}

func NewBlockquote(children ...*Node) *Node {
	return &Node{Kind: KindBlockquote, Children: children}
}

func NewImage(src, alt string) *Node {
	return &Node{Kind: KindImage, Attrs: &ImageAttrs{Src: src, Alt: alt}}
}

// MarshalCanonical encodes the node as JSON. Struct fields serialize in
// declaration order, so the encoding is stable for identical trees and is
// safe to fingerprint.
func (n *Node) MarshalCanonical() ([]byte, error) {
	return json.Marshal(n)
}

// ParseDocument decodes a document tree from its JSON encoding.
func ParseDocument(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
