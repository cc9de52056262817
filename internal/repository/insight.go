package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkhorn/inkhorn/internal/db"
	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

type DBInsightRepository struct { // implements InsightRepository, SeriesRepository
	db db.DB
}

func NewDBInsightRepository(db db.DB) *DBInsightRepository {
	return &DBInsightRepository{db: db}
}

func (r *DBInsightRepository) Capture(text, source string) (*model.Insight, error) {
	insight := &model.Insight{
		ID:          model.InsightID(uuid.New().String()),
		Text:        text,
		Source:      source,
		Status:      model.InsightCaptured,
		CreatedDate: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		`INSERT INTO insights (id, text, source, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		insight.ID, insight.Text, insight.Source, insight.Status, insight.CreatedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("error capturing insight: %w", err)
	}

	repoLogger.Debug().Str("insight_id", string(insight.ID)).Msg("Insight captured")
	return insight, nil
}

func (r *DBInsightRepository) GetInsight(id model.InsightID) (*model.Insight, error) {
	row := r.db.Get().QueryRow(
		`SELECT id, text, source, status, drafted_article, created_at FROM insights WHERE id = ?`, id,
	)
	insight, err := scanInsight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("insight %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return insight, nil
}

// ListInsights returns insights in capture order, optionally filtered by
// status (empty status means all).
func (r *DBInsightRepository) ListInsights(status model.InsightStatus) ([]model.Insight, error) {
	query := `SELECT id, text, source, status, drafted_article, created_at FROM insights`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying insights: %w", err)
	}
	defer rows.Close()

	insights := make([]model.Insight, 0)
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, *insight)
	}
	return insights, rows.Err()
}

func (r *DBInsightRepository) Triage(id model.InsightID) error {
	return r.setStatus(id, model.InsightTriaged)
}

func (r *DBInsightRepository) MarkDrafted(id model.InsightID, article model.ArticleID) error {
	res, err := r.db.Exec(
		`UPDATE insights SET status = ?, drafted_article = ? WHERE id = ?`,
		model.InsightDrafted, article, id,
	)
	if err != nil {
		return fmt.Errorf("error marking insight drafted: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("insight %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *DBInsightRepository) setStatus(id model.InsightID, status model.InsightStatus) error {
	res, err := r.db.Exec(`UPDATE insights SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("error updating insight: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("insight %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanInsight(row rowScanner) (*model.Insight, error) {
	var insight model.Insight
	var drafted sql.NullString
	err := row.Scan(&insight.ID, &insight.Text, &insight.Source, &insight.Status, &drafted, &insight.CreatedDate)
	if err != nil {
		return nil, err
	}
	if drafted.Valid {
		insight.DraftedArticle = model.ArticleID(drafted.String)
	}
	return &insight, nil
}

func (r *DBInsightRepository) CreateSeries(name string) (*model.Series, error) {
	series := &model.Series{
		ID:          model.SeriesID(uuid.New().String()),
		Name:        name,
		Slug:        util.Slugify(name),
		CreatedDate: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		`INSERT INTO series (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		series.ID, series.Name, series.Slug, series.CreatedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating series: %w", err)
	}
	return series, nil
}

func (r *DBInsightRepository) GetSeries(id model.SeriesID) (*model.Series, error) {
	row := r.db.Get().QueryRow(`SELECT id, name, slug, created_at FROM series WHERE id = ?`, id)

	var s model.Series
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedDate); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("series %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error scanning series: %w", err)
	}
	return &s, nil
}

func (r *DBInsightRepository) ListSeries() ([]model.Series, error) {
	rows, err := r.db.Query(`SELECT id, name, slug, created_at FROM series ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error querying series: %w", err)
	}
	defer rows.Close()

	series := make([]model.Series, 0)
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedDate); err != nil {
			return nil, fmt.Errorf("error scanning series: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}
