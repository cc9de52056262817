package model

import "time"

type ArticleID string

type SeriesID string

// ArticleStatus is the publication state of an article row.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

type Article struct {
	ID ArticleID

	Title   string
	Content *Node
	Tags    []string

	// ContentText is a derived cache of the flattened document text,
	// recomputed by the caller whenever Content changes.
	ContentText string

	// ContentHash fingerprints the stored (compressed) content.
	// Used for cache busting and change detection.
	ContentHash string

	Status      ArticleStatus
	SeriesID    SeriesID
	SeriesPos   int
	PublishedAt *time.Time

	CreatedDate  time.Time
	ModifiedDate time.Time

	// DeletedAt is set when the article is in the trash. Trashed articles
	// are excluded from listings until restored or purged.
	DeletedAt *time.Time
}

func (a *Article) Trashed() bool {
	return a.DeletedAt != nil
}

// Snapshot is the immutable view of an article handed to the serializer
// consumers (export, platform conversion, preview).
type Snapshot struct {
	ID          ArticleID
	Title       string
	Content     *Node
	ContentText string
	Tags        []string
}

func (a *Article) Snapshot() Snapshot {
	return Snapshot{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		ContentText: a.ContentText,
		Tags:        a.Tags,
	}
}
