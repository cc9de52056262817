package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/inkhorn/inkhorn/internal/config"
	"github.com/inkhorn/inkhorn/internal/model"
)

func helloSnapshot() model.Snapshot {
	return model.Snapshot{
		ID:      "article-1",
		Title:   "Hello",
		Content: model.NewDoc(model.NewParagraph(model.NewText("World"))),
		Tags:    []string{"draft"},
	}
}

func TestAsMarkdown(t *testing.T) {
	payload := AsMarkdown(helloSnapshot())

	expected := "# Hello\n\n**Tags:** #draft\n\n---\n\nWorld"
	if string(payload.Data) != expected {
		t.Errorf("markdown payload = %q, want %q", payload.Data, expected)
	}
	if payload.Name != "Hello.md" {
		t.Errorf("Name = %q, want %q", payload.Name, "Hello.md")
	}
	if payload.MIME != config.CTypeMarkdown {
		t.Errorf("MIME = %q, want %q", payload.MIME, config.CTypeMarkdown)
	}
}

func TestAsMarkdownWithoutTags(t *testing.T) {
	snap := helloSnapshot()
	snap.Tags = nil

	payload := AsMarkdown(snap)
	expected := "# Hello\n\nWorld"
	if string(payload.Data) != expected {
		t.Errorf("markdown payload = %q, want %q", payload.Data, expected)
	}
}

func TestAsJSON(t *testing.T) {
	exportedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	payload, err := AsJSON(helloSnapshot(), exportedAt)
	if err != nil {
		t.Fatalf("AsJSON() error: %v", err)
	}

	if payload.Name != "Hello.json" {
		t.Errorf("Name = %q, want %q", payload.Name, "Hello.json")
	}
	if payload.MIME != config.CTypeJSON {
		t.Errorf("MIME = %q, want %q", payload.MIME, config.CTypeJSON)
	}

	var decoded struct {
		Title      string      `json:"title"`
		Content    *model.Node `json:"content"`
		Tags       []string    `json:"tags"`
		ExportedAt time.Time   `json:"exportedAt"`
	}
	if err := json.Unmarshal(payload.Data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Title != "Hello" {
		t.Errorf("title = %q, want %q", decoded.Title, "Hello")
	}
	if !decoded.ExportedAt.Equal(exportedAt) {
		t.Errorf("exportedAt = %v, want %v", decoded.ExportedAt, exportedAt)
	}
	if decoded.Content == nil || decoded.Content.Kind != model.KindDoc {
		t.Errorf("content did not round-trip: %+v", decoded.Content)
	}
}

func TestAsHTML(t *testing.T) {
	snap := helloSnapshot()
	snap.Title = `Hello <World> & "Friends"`

	payload := AsHTML(snap)

	if payload.MIME != config.CTypeHTML {
		t.Errorf("MIME = %q, want %q", payload.MIME, config.CTypeHTML)
	}

	html := string(payload.Data)
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("payload should be a standalone document")
	}
	if !strings.Contains(html, "<style>") {
		t.Error("payload should carry the inline style block")
	}
	if strings.Contains(html, "<World>") {
		t.Error("title must be escaped in the output")
	}
	if !strings.Contains(html, "Hello &lt;World&gt;") {
		t.Errorf("escaped title missing from output: %s", html)
	}
	if !strings.Contains(html, "<p>World</p>") {
		t.Error("rendered body missing from output")
	}
	if !strings.Contains(html, "#draft") {
		t.Error("tag line missing from output")
	}
}

func TestFilenameFallback(t *testing.T) {
	snap := helloSnapshot()
	snap.Title = "   "

	if payload := AsMarkdown(snap); payload.Name != "untitled.md" {
		t.Errorf("Name = %q, want untitled.md", payload.Name)
	}
	if payload := AsHTML(snap); payload.Name != "untitled.html" {
		t.Errorf("Name = %q, want untitled.html", payload.Name)
	}
}
