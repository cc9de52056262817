// Package repository persists articles, series, insights and per-article
// statistics over the db layer.
package repository

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkhorn/inkhorn/internal/model"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

var (
	ErrNotFound   = errors.New("not found")
	ErrNotTrashed = errors.New("article is not in the trash")
)

type ArticleRepository interface {
	NewArticle() *model.Article
	Create(a *model.Article) error
	Get(id model.ArticleID) (*model.Article, error)
	Save(a *model.Article) error
	List() ([]model.Article, error)
	ListBySeries(id model.SeriesID) ([]model.Article, error)
	Publish(id model.ArticleID, at time.Time) error

	// Soft-delete lifecycle. Trashed articles drop out of List until
	// restored; Purge removes the row for good.
	Trash(id model.ArticleID) error
	Restore(id model.ArticleID) error
	Purge(id model.ArticleID) error
	ListTrash() ([]model.Article, error)
}

type StatsRepository interface {
	RecordView(id model.ArticleID, at time.Time) error
	RecordRead(id model.ArticleID, seconds int64) error
	GetStats(id model.ArticleID) (*model.Stats, error)
}

type InsightRepository interface {
	Capture(text, source string) (*model.Insight, error)
	GetInsight(id model.InsightID) (*model.Insight, error)
	ListInsights(status model.InsightStatus) ([]model.Insight, error)
	Triage(id model.InsightID) error
	MarkDrafted(id model.InsightID, article model.ArticleID) error
}

type SeriesRepository interface {
	CreateSeries(name string) (*model.Series, error)
	GetSeries(id model.SeriesID) (*model.Series, error)
	ListSeries() ([]model.Series, error)
}
