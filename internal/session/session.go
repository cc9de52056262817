// Package session manages editing sessions: each open editor owns one
// autosave coordinator, registered here so HTTP handlers can reach it.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkhorn/inkhorn/internal/autosave"
	"github.com/inkhorn/inkhorn/internal/model"
)

type ID string

type Session struct {
	ID        ID
	ArticleID model.ArticleID

	Coordinator *autosave.Coordinator

	CreatedAt time.Time
}

type Registry struct {
	sessions sync.Map
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Open creates a session around a new coordinator and starts its timer.
// The caller is expected to call InitializeSavedState on the coordinator
// once the article content is loaded.
func (r *Registry) Open(articleID model.ArticleID, save autosave.SaveFunc, interval time.Duration) *Session {
	s := &Session{
		ID:          ID(uuid.New().String()),
		ArticleID:   articleID,
		Coordinator: autosave.New(articleID, save, interval),
		CreatedAt:   time.Now().UTC(),
	}
	s.Coordinator.Start()
	r.sessions.Store(s.ID, s)
	return s
}

func (r *Registry) Get(id ID) (*Session, error) {
	if s, ok := r.sessions.Load(id); ok {
		return s.(*Session), nil
	}
	return nil, fmt.Errorf("session not found: %s", id)
}

// Close tears down a session. The coordinator stops ticking and any save
// still in flight has its result discarded.
func (r *Registry) Close(id ID) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}
	s.Coordinator.Close()
	r.sessions.Delete(id)
	return nil
}

// CloseAll tears down every open session, for shutdown.
func (r *Registry) CloseAll() {
	r.sessions.Range(func(key, value any) bool {
		value.(*Session).Coordinator.Close()
		r.sessions.Delete(key)
		return true
	})
}
