package db

import (
	"testing"
)

func TestSQLiteInitAndQuery(t *testing.T) {
	database := NewSQLite(":memory:")
	if err := database.InitDB(); err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer database.Close()

	// The schema tables are queryable right away.
	for _, table := range []string{"articles", "series", "insights", "article_stats"} {
		rows, err := database.Query("SELECT COUNT(*) FROM " + table)
		if err != nil {
			t.Fatalf("Query(%s) error: %v", table, err)
		}
		rows.Close()
	}

	if _, err := database.Exec(
		`INSERT INTO articles (id, title) VALUES (?, ?)`, "a1", "Test",
	); err != nil {
		t.Fatalf("Exec() error: %v", err)
	}

	row := database.Get().QueryRow(`SELECT title FROM articles WHERE id = ?`, "a1")
	var title string
	if err := row.Scan(&title); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if title != "Test" {
		t.Errorf("title = %q, want Test", title)
	}
}

func TestSQLiteInitIsIdempotent(t *testing.T) {
	database := NewSQLite(":memory:")
	if err := database.InitDB(); err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(Schema); err != nil {
		t.Errorf("re-running the schema should be a no-op, got %v", err)
	}
}

func TestSQLiteCloseWithoutInit(t *testing.T) {
	database := NewSQLite(":memory:")
	if err := database.Close(); err != nil {
		t.Errorf("Close() before InitDB should be a no-op, got %v", err)
	}
}
