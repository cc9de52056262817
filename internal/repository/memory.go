package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

// MemoryArticleRepository keeps articles in process memory. It backs tests
// and ephemeral scratch sessions that never touch the database.
type MemoryArticleRepository struct {
	articles sync.Map
	stats    sync.Map
}

func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{}
}

func (m *MemoryArticleRepository) NewArticle() *model.Article {
	now := time.Now().UTC()
	return &model.Article{
		ID:           model.ArticleID(uuid.New().String()),
		Status:       model.StatusDraft,
		CreatedDate:  now,
		ModifiedDate: now,
	}
}

func (m *MemoryArticleRepository) Create(a *model.Article) error {
	a.ContentHash = util.ContentHashString(a.ContentText)
	stored := *a
	m.articles.Store(a.ID, &stored)
	return nil
}

func (m *MemoryArticleRepository) Get(id model.ArticleID) (*model.Article, error) {
	if v, ok := m.articles.Load(id); ok {
		a := *(v.(*model.Article))
		return &a, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryArticleRepository) Save(a *model.Article) error {
	if _, ok := m.articles.Load(a.ID); !ok {
		return ErrNotFound
	}
	a.ModifiedDate = time.Now().UTC()
	a.ContentHash = util.ContentHashString(a.ContentText)
	stored := *a
	m.articles.Store(a.ID, &stored)
	return nil
}

func (m *MemoryArticleRepository) List() ([]model.Article, error) {
	return m.collect(func(a *model.Article) bool { return !a.Trashed() }), nil
}

func (m *MemoryArticleRepository) ListBySeries(id model.SeriesID) ([]model.Article, error) {
	list := m.collect(func(a *model.Article) bool {
		return !a.Trashed() && a.SeriesID == id
	})
	sort.Slice(list, func(i, j int) bool { return list[i].SeriesPos < list[j].SeriesPos })
	return list, nil
}

func (m *MemoryArticleRepository) ListTrash() ([]model.Article, error) {
	return m.collect(func(a *model.Article) bool { return a.Trashed() }), nil
}

func (m *MemoryArticleRepository) Publish(id model.ArticleID, at time.Time) error {
	return m.mutate(id, func(a *model.Article) error {
		a.Status = model.StatusPublished
		a.PublishedAt = &at
		return nil
	})
}

func (m *MemoryArticleRepository) Trash(id model.ArticleID) error {
	return m.mutate(id, func(a *model.Article) error {
		now := time.Now().UTC()
		a.DeletedAt = &now
		return nil
	})
}

func (m *MemoryArticleRepository) Restore(id model.ArticleID) error {
	return m.mutate(id, func(a *model.Article) error {
		if !a.Trashed() {
			return ErrNotTrashed
		}
		a.DeletedAt = nil
		return nil
	})
}

func (m *MemoryArticleRepository) Purge(id model.ArticleID) error {
	v, ok := m.articles.Load(id)
	if !ok {
		return ErrNotFound
	}
	if !v.(*model.Article).Trashed() {
		return ErrNotTrashed
	}
	m.articles.Delete(id)
	m.stats.Delete(id)
	return nil
}

func (m *MemoryArticleRepository) RecordView(id model.ArticleID, at time.Time) error {
	return m.mutateStats(id, func(s *model.Stats) {
		s.Views++
		s.LastViewedAt = &at
	})
}

func (m *MemoryArticleRepository) RecordRead(id model.ArticleID, seconds int64) error {
	if seconds < 0 {
		seconds = 0
	}
	return m.mutateStats(id, func(s *model.Stats) {
		s.Reads++
		s.TotalReadSeconds += seconds
	})
}

func (m *MemoryArticleRepository) GetStats(id model.ArticleID) (*model.Stats, error) {
	if _, ok := m.articles.Load(id); !ok {
		return nil, ErrNotFound
	}
	if v, ok := m.stats.Load(id); ok {
		s := *(v.(*model.Stats))
		return &s, nil
	}
	return &model.Stats{}, nil
}

func (m *MemoryArticleRepository) collect(keep func(*model.Article) bool) []model.Article {
	var list []model.Article
	m.articles.Range(func(_, v interface{}) bool {
		a := v.(*model.Article)
		if keep(a) {
			list = append(list, *a)
		}
		return true
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].ModifiedDate.After(list[j].ModifiedDate)
	})
	return list
}

func (m *MemoryArticleRepository) mutate(id model.ArticleID, f func(*model.Article) error) error {
	v, ok := m.articles.Load(id)
	if !ok {
		return ErrNotFound
	}
	a := *(v.(*model.Article))
	if err := f(&a); err != nil {
		return err
	}
	a.ModifiedDate = time.Now().UTC()
	m.articles.Store(id, &a)
	return nil
}

func (m *MemoryArticleRepository) mutateStats(id model.ArticleID, f func(*model.Stats)) error {
	if _, ok := m.articles.Load(id); !ok {
		return ErrNotFound
	}
	var s model.Stats
	if v, ok := m.stats.Load(id); ok {
		s = *(v.(*model.Stats))
	}
	f(&s)
	m.stats.Store(id, &s)
	return nil
}
