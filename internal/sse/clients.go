// Package sse provides Server-Sent Events client management for pushing
// save-status updates to open editor views.
package sse

import (
	"encoding/json"
	"sync"

	"github.com/inkhorn/inkhorn/internal/autosave"
	"github.com/inkhorn/inkhorn/internal/model"
)

type Client struct {
	Msg       chan string
	ArticleID model.ArticleID
}

type Clients struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewClients() *Clients {
	return &Clients{
		clients: make(map[*Client]bool),
	}
}

func (s *Clients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

func (s *Clients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, client)
	close(client.Msg)
}

// Broadcast sends msg to every client watching the given article. Slow
// clients are skipped rather than blocking the broadcaster.
func (s *Clients) Broadcast(articleID model.ArticleID, msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for client := range s.clients {
		if client.ArticleID == articleID {
			select {
			case client.Msg <- msg:
			default:
			}
		}
	}
}

// BroadcastStatus pushes an autosave status snapshot as JSON.
func (s *Clients) BroadcastStatus(articleID model.ArticleID, status autosave.Status) {
	data, err := json.Marshal(status)
	if err != nil {
		return
	}
	s.Broadcast(articleID, string(data))
}
