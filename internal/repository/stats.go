package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/inkhorn/inkhorn/internal/model"
)

func (r *DBArticleRepository) RecordView(id model.ArticleID, at time.Time) error {
	res, err := r.db.Exec(
		`UPDATE article_stats SET views = views + 1, last_viewed_at = ? WHERE article_id = ?`,
		at, id,
	)
	if err != nil {
		return fmt.Errorf("error recording view: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("stats for article %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *DBArticleRepository) RecordRead(id model.ArticleID, seconds int64) error {
	if seconds < 0 {
		seconds = 0
	}
	res, err := r.db.Exec(
		`UPDATE article_stats SET reads = reads + 1, total_read_seconds = total_read_seconds + ?
		 WHERE article_id = ?`,
		seconds, id,
	)
	if err != nil {
		return fmt.Errorf("error recording read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("stats for article %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *DBArticleRepository) GetStats(id model.ArticleID) (*model.Stats, error) {
	row := r.db.Get().QueryRow(
		`SELECT article_id, views, reads, total_read_seconds, last_viewed_at
		 FROM article_stats WHERE article_id = ?`, id,
	)

	var s model.Stats
	var lastViewed sql.NullTime
	err := row.Scan(&s.ArticleID, &s.Views, &s.Reads, &s.TotalReadSeconds, &lastViewed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stats for article %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error scanning stats: %w", err)
	}
	if lastViewed.Valid {
		t := lastViewed.Time
		s.LastViewedAt = &t
	}
	return &s, nil
}
