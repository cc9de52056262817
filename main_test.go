package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkhorn/inkhorn/internal/config"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/repository"
	"github.com/inkhorn/inkhorn/internal/session"
)

func setupTestApp(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	config.AppConfig = cfg

	mainLogger = zerolog.Nop()
	articles = repository.NewMemoryArticleRepository()
	sessions = session.NewRegistry()
	t.Cleanup(sessions.CloseAll)
}

func createTestArticle(t *testing.T, title string) *model.Article {
	t.Helper()
	article := articles.NewArticle()
	article.Title = title
	article.Content = model.NewDoc(model.NewParagraph(model.NewText("World")))
	article.ContentText = "World"
	article.Tags = []string{"draft"}
	if err := articles.Create(article); err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}
	return article
}

func TestServeCreateArticle(t *testing.T) {
	setupTestApp(t)

	body := strings.NewReader(`{"title": "New Draft", "tags": ["go"]}`)
	req := httptest.NewRequest("POST", "/api/articles", body)
	rec := httptest.NewRecorder()

	serveCreateArticle(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", res.StatusCode)
	}

	var created model.Article
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Title != "New Draft" {
		t.Errorf("Title = %q, want %q", created.Title, "New Draft")
	}
	if created.ID == "" {
		t.Error("created article should have an id")
	}
}

func TestServeCreateArticleInvalidJSON(t *testing.T) {
	setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/articles", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	serveCreateArticle(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Result().StatusCode)
	}
}

func TestServeGetArticleNotFound(t *testing.T) {
	setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/articles/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	serveGetArticle(rec, req)

	if rec.Result().StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 Not Found, got %d", rec.Result().StatusCode)
	}
}

func TestServeExportArticle(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Hello")

	req := httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/export/md", nil)
	req.SetPathValue("id", string(article.ID))
	req.SetPathValue("format", "md")
	rec := httptest.NewRecorder()

	serveExportArticle(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", res.StatusCode)
	}
	if cd := res.Header.Get(config.HContentDisposition); !strings.Contains(cd, "Hello.md") {
		t.Errorf("Content-Disposition = %q, want attachment with Hello.md", cd)
	}

	body, _ := io.ReadAll(res.Body)
	expected := "# Hello\n\n**Tags:** #draft\n\n---\n\nWorld"
	if string(body) != expected {
		t.Errorf("export body = %q, want %q", body, expected)
	}
}

func TestServeExportArticleUnknownFormat(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Hello")

	req := httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/export/docx", nil)
	req.SetPathValue("id", string(article.ID))
	req.SetPathValue("format", "docx")
	rec := httptest.NewRecorder()

	serveExportArticle(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown format, got %d", rec.Result().StatusCode)
	}
}

func TestServeConvertArticle(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Hello")

	t.Run("Single Platform", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/convert?platform=x", nil)
		req.SetPathValue("id", string(article.ID))
		rec := httptest.NewRecorder()

		serveConvertArticle(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", res.StatusCode)
		}
		var content struct {
			Platform string   `json:"platform"`
			Posts    []string `json:"content"`
		}
		if err := json.NewDecoder(res.Body).Decode(&content); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if content.Platform != "x" {
			t.Errorf("platform = %q, want x", content.Platform)
		}
		if len(content.Posts) == 0 {
			t.Error("conversion should yield posts")
		}
	})

	t.Run("All Platforms", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/convert", nil)
		req.SetPathValue("id", string(article.ID))
		rec := httptest.NewRecorder()

		serveConvertArticle(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		var all map[string]json.RawMessage
		if err := json.NewDecoder(res.Body).Decode(&all); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("expected 4 platforms, got %d", len(all))
		}
	})

	t.Run("Unknown Platform", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/convert?platform=myspace", nil)
		req.SetPathValue("id", string(article.ID))
		rec := httptest.NewRecorder()

		serveConvertArticle(rec, req)

		if rec.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown platform, got %d", rec.Result().StatusCode)
		}
	})
}

func TestTrashEndpoints(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Disposable")

	trash := func(id string) int {
		req := httptest.NewRequest("DELETE", "/api/articles/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		serveTrashArticle(rec, req)
		return rec.Result().StatusCode
	}

	if code := trash(string(article.ID)); code != http.StatusNoContent {
		t.Fatalf("trash: expected 204, got %d", code)
	}

	// The trashed article is gone from the main listing.
	rec := httptest.NewRecorder()
	serveListArticles(rec, httptest.NewRequest("GET", "/api/articles", nil))
	var list []model.Article
	if err := json.NewDecoder(rec.Result().Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty listing after trash, got %d", len(list))
	}

	// Restore brings it back.
	req := httptest.NewRequest("POST", "/api/articles/"+string(article.ID)+"/restore", nil)
	req.SetPathValue("id", string(article.ID))
	rec = httptest.NewRecorder()
	serveRestoreArticle(rec, req)
	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("restore: expected 204, got %d", rec.Result().StatusCode)
	}

	// Restoring again conflicts.
	rec = httptest.NewRecorder()
	serveRestoreArticle(rec, req)
	if rec.Result().StatusCode != http.StatusConflict {
		t.Errorf("double restore: expected 409, got %d", rec.Result().StatusCode)
	}
}

func TestSessionEndpoints(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Edited Live")

	// Open a session.
	body := strings.NewReader(`{"article_id": "` + string(article.ID) + `"}`)
	rec := httptest.NewRecorder()
	serveOpenSession(rec, httptest.NewRequest("POST", "/api/sessions", body))

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("open session: expected 201, got %d", res.StatusCode)
	}
	var opened struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&opened); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}

	// Push an edit into the session.
	update := strings.NewReader(`{"title": "Edited Live", "content": {"kind":"doc","children":[{"kind":"paragraph","children":[{"kind":"text","text":"changed"}]}]}}`)
	req := httptest.NewRequest("POST", "/api/sessions/"+opened.SessionID+"/update", update)
	req.SetPathValue("id", opened.SessionID)
	rec = httptest.NewRecorder()
	serveSessionUpdate(rec, req)

	var status struct {
		HasUnsavedChanges bool `json:"hasUnsavedChanges"`
	}
	if err := json.NewDecoder(rec.Result().Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if !status.HasUnsavedChanges {
		t.Error("session should report unsaved changes after an edit")
	}

	// Manual save persists through the repository.
	req = httptest.NewRequest("POST", "/api/sessions/"+opened.SessionID+"/save", nil)
	req.SetPathValue("id", opened.SessionID)
	rec = httptest.NewRecorder()
	serveSessionSave(rec, req)

	var saveResp struct {
		Saved bool `json:"saved"`
	}
	if err := json.NewDecoder(rec.Result().Body).Decode(&saveResp); err != nil {
		t.Fatalf("Failed to decode save response: %v", err)
	}
	if !saveResp.Saved {
		t.Fatal("manual save should succeed")
	}

	stored, err := articles.Get(article.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if stored.ContentText != "changed" {
		t.Errorf("persisted content text = %q, want %q", stored.ContentText, "changed")
	}

	// Close the session.
	req = httptest.NewRequest("DELETE", "/api/sessions/"+opened.SessionID, nil)
	req.SetPathValue("id", opened.SessionID)
	rec = httptest.NewRecorder()
	serveCloseSession(rec, req)
	if rec.Result().StatusCode != http.StatusNoContent {
		t.Errorf("close session: expected 204, got %d", rec.Result().StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/sessions/"+opened.SessionID+"/status", nil)
	req.SetPathValue("id", opened.SessionID)
	rec = httptest.NewRecorder()
	serveSessionStatus(rec, req)
	if rec.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status after close: expected 404, got %d", rec.Result().StatusCode)
	}
}

func TestServeSpellcheck(t *testing.T) {
	setupTestApp(t)

	body := strings.NewReader(`{"text": "I will recieve it"}`)
	rec := httptest.NewRecorder()
	serveSpellcheck(rec, httptest.NewRequest("POST", "/api/spellcheck", body))

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", res.StatusCode)
	}
	var findings []struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&findings); err != nil {
		t.Fatalf("Failed to decode findings: %v", err)
	}
	if len(findings) != 1 || findings[0].Token != "recieve" {
		t.Errorf("findings = %+v, want one for recieve", findings)
	}
}

func TestServeRecordStats(t *testing.T) {
	setupTestApp(t)
	article := createTestArticle(t, "Counted")

	req := httptest.NewRequest("POST", "/api/articles/"+string(article.ID)+"/view", nil)
	req.SetPathValue("id", string(article.ID))
	rec := httptest.NewRecorder()
	serveRecordView(rec, req)
	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("record view: expected 204, got %d", rec.Result().StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/articles/"+string(article.ID)+"/read", strings.NewReader(`{"seconds": 90}`))
	req.SetPathValue("id", string(article.ID))
	rec = httptest.NewRecorder()
	serveRecordRead(rec, req)
	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("record read: expected 204, got %d", rec.Result().StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/articles/"+string(article.ID)+"/stats", nil)
	req.SetPathValue("id", string(article.ID))
	rec = httptest.NewRecorder()
	serveArticleStats(rec, req)

	var stats model.Stats
	if err := json.NewDecoder(rec.Result().Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.Views != 1 || stats.Reads != 1 || stats.TotalReadSeconds != 90 {
		t.Errorf("stats = %+v, want 1 view, 1 read, 90 seconds", stats)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := secureHeaders(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/", nil))

	res := rec.Result()
	if res.Header.Get("X-Frame-Options") != "deny" {
		t.Error("X-Frame-Options header missing")
	}
	if res.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("X-Content-Type-Options header missing")
	}
}
