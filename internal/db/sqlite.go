package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	path string
	conn *sql.DB
}

func NewSQLite(path string) *SQLite {
	return &SQLite{
		path: path,
	}
}

func (s *SQLite) InitDB() error {
	var err error
	s.conn, err = sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}

	res, err := s.conn.Exec(Schema)
	dbLogger.Info().Any("db_result", res).Msg("Database initialized")
	return err
}

// Schema creates the tables the repositories depend on. Content is a
// zstd-compressed canonical JSON document; tags is a JSON string array.
const Schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS series (
    id TEXT PRIMARY KEY,
    name TEXT,
    slug TEXT UNIQUE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    title TEXT,
    content BLOB,
    content_text TEXT,
    content_hash TEXT,
    tags TEXT,
    status TEXT DEFAULT 'draft',
    series_id TEXT,
    series_pos INTEGER DEFAULT 0,
    published_at DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    modified_at DATETIME,
    deleted_at DATETIME,
    FOREIGN KEY(series_id) REFERENCES series(id)
);

CREATE TABLE IF NOT EXISTS insights (
    id TEXT PRIMARY KEY,
    text TEXT,
    source TEXT,
    status TEXT DEFAULT 'captured',
    drafted_article TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS article_stats (
    article_id TEXT PRIMARY KEY,
    views INTEGER DEFAULT 0,
    reads INTEGER DEFAULT 0,
    total_read_seconds INTEGER DEFAULT 0,
    last_viewed_at DATETIME,
    FOREIGN KEY(article_id) REFERENCES articles(id)
);`

func (s *SQLite) Get() *sql.DB {
	return s.conn
}

func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *SQLite) Query(query string, args ...interface{}) (*sql.Rows, error) {
	dbLogger.Debug().Str("query", query).Msg("Query")
	return s.conn.Query(query, args...)
}

func (s *SQLite) Exec(query string, args ...interface{}) (sql.Result, error) {
	dbLogger.Debug().Str("query", query).Msg("Exec")
	return s.conn.Exec(query, args...)
}
