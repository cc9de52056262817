// Package export assembles downloadable file payloads (JSON, Markdown, HTML)
// from an article snapshot. The actual file-save mechanism is a platform
// collaborator; this package only produces names, MIME types and bytes.
package export

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/inkhorn/inkhorn/internal/config"
	"github.com/inkhorn/inkhorn/internal/doc"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

// FilePayload is a ready-to-download file.
type FilePayload struct {
	Name string
	MIME string
	Data []byte
}

type jsonExport struct {
	Title      string      `json:"title"`
	Content    *model.Node `json:"content"`
	Tags       []string    `json:"tags"`
	ExportedAt time.Time   `json:"exportedAt"`
}

// AsJSON produces the pretty-printed JSON export.
func AsJSON(snap model.Snapshot, exportedAt time.Time) (FilePayload, error) {
	data, err := json.MarshalIndent(jsonExport{
		Title:      snap.Title,
		Content:    snap.Content,
		Tags:       snap.Tags,
		ExportedAt: exportedAt,
	}, "", "  ")
	if err != nil {
		return FilePayload{}, fmt.Errorf("encoding export: %w", err)
	}
	return FilePayload{
		Name: util.SafeFilename(snap.Title, "json"),
		MIME: config.CTypeJSON,
		Data: data,
	}, nil
}

// AsMarkdown produces a Markdown document with an H1 title line and, when
// tags are present, a tag line followed by a horizontal rule.
func AsMarkdown(snap model.Snapshot) FilePayload {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(snap.Title)
	b.WriteString("\n\n")
	if len(snap.Tags) > 0 {
		b.WriteString("**Tags:** ")
		b.WriteString(strings.Join(hashtags(snap.Tags), " "))
		b.WriteString("\n\n---\n\n")
	}
	b.WriteString(doc.ToMarkdown(snap.Content))

	return FilePayload{
		Name: util.SafeFilename(snap.Title, "md"),
		MIME: config.CTypeMarkdown,
		Data: []byte(b.String()),
	}
}

// AsHTML wraps the rendered document in a minimal standalone page with an
// inline style block.
func AsHTML(snap model.Snapshot) FilePayload {
	title := html.EscapeString(snap.Title)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", title)
	b.WriteString("<style>\n")
	b.WriteString(exportStyle)
	b.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	if len(snap.Tags) > 0 {
		fmt.Fprintf(&b, "<p class=\"tags\">%s</p>\n", html.EscapeString(strings.Join(hashtags(snap.Tags), " ")))
	}
	b.WriteString(doc.ToHTML(snap.Content))
	b.WriteString("\n</body>\n</html>\n")

	return FilePayload{
		Name: util.SafeFilename(snap.Title, "html"),
		MIME: config.CTypeHTML,
		Data: []byte(b.String()),
	}
}

func hashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, util.Hashtag(tag))
	}
	return out
}

const exportStyle = `body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem;
  font-family: Georgia, serif; line-height: 1.6; color: #1a1a1a; }
h1, h2, h3 { line-height: 1.25; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
img { max-width: 100%; }
.tags { color: #666; font-style: italic; }
`
