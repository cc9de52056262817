package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/inkhorn/inkhorn/internal/cache"
	"github.com/inkhorn/inkhorn/internal/db"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
	"github.com/inkhorn/inkhorn/internal/util/compression"
)

const articleColumns = `id, title, content, content_text, content_hash, tags, status,
	series_id, series_pos, published_at, created_at, modified_at, deleted_at`

type DBArticleRepository struct { // implements ArticleRepository, StatsRepository
	articleCache *cache.Cache[string, *model.Article]

	db         db.DB
	compressor compression.Compressor
}

func NewDBArticleRepository(db db.DB) *DBArticleRepository {
	return &DBArticleRepository{
		articleCache: cache.NewCache[string, *model.Article](),

		db: db,

		compressor: compression.ZstdCompressor{},
	}
}

func (r *DBArticleRepository) NewArticle() *model.Article {
	now := time.Now().UTC()

	return &model.Article{
		ID:      model.ArticleID(uuid.New().String()),
		Content: model.NewDoc(model.NewParagraph()),
		Status:  model.StatusDraft,

		CreatedDate:  now,
		ModifiedDate: now,
	}
}

func (r *DBArticleRepository) Create(a *model.Article) error {
	content, hash, err := r.encodeContent(a.Content)
	if err != nil {
		return err
	}
	a.ContentHash = hash

	tags, err := encodeTags(a.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO articles (id, title, content, content_text, content_hash, tags, status,
			series_id, series_pos, published_at, created_at, modified_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, content, a.ContentText, a.ContentHash, tags, a.Status,
		nullString(string(a.SeriesID)), a.SeriesPos, a.PublishedAt, a.CreatedDate, a.ModifiedDate, a.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating article: %w", err)
	}

	if _, err := r.db.Exec(
		`INSERT OR IGNORE INTO article_stats (article_id) VALUES (?)`, a.ID,
	); err != nil {
		return fmt.Errorf("error seeding article stats: %w", err)
	}

	stored := *a
	r.articleCache.Set(string(a.ID), &stored)
	repoLogger.Debug().Str("article_id", string(a.ID)).Msg("Article created")
	return nil
}

// Get returns a copy; callers mutate the result freely and nothing lands in
// the cache until Save succeeds.
func (r *DBArticleRepository) Get(id model.ArticleID) (*model.Article, error) {
	if cached, ok := r.articleCache.Get(string(id)); ok {
		a := *cached
		return &a, nil
	}

	row := r.db.Get().QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id,
	)
	a, err := r.scanArticle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	r.articleCache.Set(string(id), a)
	out := *a
	return &out, nil
}

// Save updates the editable fields of an existing row and bumps the
// modification time. The content hash is recomputed from the compressed
// content, like the rest of the content pipeline expects.
func (r *DBArticleRepository) Save(a *model.Article) error {
	content, hash, err := r.encodeContent(a.Content)
	if err != nil {
		return err
	}
	a.ContentHash = hash

	tags, err := encodeTags(a.Tags)
	if err != nil {
		return err
	}

	a.ModifiedDate = time.Now().UTC()
	res, err := r.db.Exec(
		`UPDATE articles SET title = ?, content = ?, content_text = ?, content_hash = ?,
			tags = ?, series_id = ?, series_pos = ?, modified_at = ?
		 WHERE id = ?`,
		a.Title, content, a.ContentText, a.ContentHash,
		tags, nullString(string(a.SeriesID)), a.SeriesPos, a.ModifiedDate, a.ID,
	)
	if err != nil {
		return fmt.Errorf("error saving article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", a.ID, ErrNotFound)
	}

	stored := *a
	r.articleCache.Set(string(a.ID), &stored)
	repoLogger.Debug().Str("article_id", string(a.ID)).Msg("Article saved")
	return nil
}

func (r *DBArticleRepository) List() ([]model.Article, error) {
	return r.list(`SELECT ` + articleColumns + ` FROM articles WHERE deleted_at IS NULL`)
}

func (r *DBArticleRepository) ListBySeries(id model.SeriesID) ([]model.Article, error) {
	articles, err := r.list(
		`SELECT `+articleColumns+` FROM articles WHERE deleted_at IS NULL AND series_id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(articles, func(a, b model.Article) int {
		return a.SeriesPos - b.SeriesPos
	})
	return articles, nil
}

func (r *DBArticleRepository) ListTrash() ([]model.Article, error) {
	return r.list(`SELECT ` + articleColumns + ` FROM articles WHERE deleted_at IS NOT NULL`)
}

func (r *DBArticleRepository) Publish(id model.ArticleID, at time.Time) error {
	res, err := r.db.Exec(
		`UPDATE articles SET status = ?, published_at = ?, modified_at = ? WHERE id = ? AND deleted_at IS NULL`,
		model.StatusPublished, at, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("error publishing article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	r.articleCache.Delete(string(id))
	return nil
}

func (r *DBArticleRepository) Trash(id model.ArticleID) error {
	res, err := r.db.Exec(
		`UPDATE articles SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("error trashing article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	r.articleCache.Delete(string(id))
	repoLogger.Info().Str("article_id", string(id)).Msg("Article moved to trash")
	return nil
}

func (r *DBArticleRepository) Restore(id model.ArticleID) error {
	res, err := r.db.Exec(
		`UPDATE articles SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("error restoring article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotTrashed)
	}
	r.articleCache.Delete(string(id))
	return nil
}

// Purge permanently removes a trashed article and its stats row.
func (r *DBArticleRepository) Purge(id model.ArticleID) error {
	if _, err := r.db.Exec(`DELETE FROM article_stats WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("error purging article stats: %w", err)
	}
	res, err := r.db.Exec(`DELETE FROM articles WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("error purging article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotTrashed)
	}
	r.articleCache.Delete(string(id))
	repoLogger.Info().Str("article_id", string(id)).Msg("Article purged")
	return nil
}

func (r *DBArticleRepository) list(query string, args ...interface{}) ([]model.Article, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		a, err := r.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	// Most recently modified first.
	slices.SortStableFunc(articles, func(a, b model.Article) int {
		return -a.ModifiedDate.Compare(b.ModifiedDate)
	})

	return articles, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *DBArticleRepository) scanArticle(row rowScanner) (*model.Article, error) {
	var a model.Article
	var compressed []byte
	var tags sql.NullString
	var seriesID sql.NullString
	var publishedAt, deletedAt sql.NullTime

	err := row.Scan(
		&a.ID, &a.Title, &compressed, &a.ContentText, &a.ContentHash, &tags, &a.Status,
		&seriesID, &a.SeriesPos, &publishedAt, &a.CreatedDate, &a.ModifiedDate, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(compressed) > 0 {
		data, err := r.compressor.Decompress(compressed)
		if err != nil {
			return nil, fmt.Errorf("error decompressing content: %w", err)
		}
		a.Content, err = model.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding content: %w", err)
		}
	}

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &a.Tags); err != nil {
			return nil, fmt.Errorf("error decoding tags: %w", err)
		}
	}
	if seriesID.Valid {
		a.SeriesID = model.SeriesID(seriesID.String)
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		a.DeletedAt = &t
	}

	return &a, nil
}

// encodeContent compresses the canonical JSON encoding and hashes the
// compressed bytes.
func (r *DBArticleRepository) encodeContent(content *model.Node) ([]byte, string, error) {
	if content == nil {
		content = model.NewDoc()
	}
	data, err := content.MarshalCanonical()
	if err != nil {
		return nil, "", fmt.Errorf("error encoding content: %w", err)
	}
	compressed, err := r.compressor.Compress(data)
	if err != nil {
		return nil, "", fmt.Errorf("error compressing content: %w", err)
	}
	return compressed, util.ContentHash(compressed), nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("error encoding tags: %w", err)
	}
	return string(data), nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
