package model

import "time"

type InsightID string

// InsightStatus tracks an insight through the capture/triage workflow.
type InsightStatus string

const (
	InsightCaptured InsightStatus = "captured"
	InsightTriaged  InsightStatus = "triaged"
	InsightDrafted  InsightStatus = "drafted"
)

// Insight is a captured idea or observation that can later be triaged and
// turned into an article draft, optionally through the AI draft generator.
type Insight struct {
	ID     InsightID
	Text   string
	Source string
	Status InsightStatus

	// DraftedArticle is set once a draft article was created from this insight.
	DraftedArticle ArticleID

	CreatedDate time.Time
}

type Series struct {
	ID   SeriesID
	Name string
	Slug string

	CreatedDate time.Time
}

// Stats aggregates per-article performance counters.
type Stats struct {
	ArticleID ArticleID

	Views            int64
	Reads            int64
	TotalReadSeconds int64

	LastViewedAt *time.Time
}

// AvgReadSeconds reports the mean time readers spent on the article.
func (s *Stats) AvgReadSeconds() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.TotalReadSeconds) / float64(s.Reads)
}
