// Package session stores chat history and session metadata, keyed by
// session id.
package session

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Info is the session metadata shown in history listings.
type Info struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// Store persists conversations. History and metadata expire independently;
// appending a message refreshes the history TTL.
type Store interface {
	AppendMessage(ctx context.Context, sessionID string, msg ChatMessage) error
	History(ctx context.Context, sessionID string) ([]ChatMessage, error)
	DeleteHistory(ctx context.Context, sessionID string) error

	CreateSession(ctx context.Context, info Info) error
	GetSession(ctx context.Context, sessionID string) (*Info, error)
	ListSessions(ctx context.Context) ([]Info, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionTitle derives a listing title from the first query of a session.
func SessionTitle(query string) string {
	if len([]rune(query)) > 50 {
		return string([]rune(query)[:50]) + "..."
	}
	return query
}

// MemStore is an in-process Store used in tests and single-node setups
// without Redis. TTLs are not enforced.
type MemStore struct {
	mu       sync.RWMutex
	history  map[string][]ChatMessage
	sessions map[string]Info
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		history:  make(map[string][]ChatMessage),
		sessions: make(map[string]Info),
	}
}

func (m *MemStore) AppendMessage(ctx context.Context, sessionID string, msg ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[sessionID] = append(m.history[sessionID], msg)
	return nil
}

func (m *MemStore) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ChatMessage(nil), m.history[sessionID]...), nil
}

func (m *MemStore) DeleteHistory(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.history, sessionID)
	return nil
}

func (m *MemStore) CreateSession(ctx context.Context, info Info) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if info.CreatedAt == "" {
		info.CreatedAt = time.Now().Format(time.RFC3339)
	}
	m.sessions[info.ID] = info
	return nil
}

func (m *MemStore) GetSession(ctx context.Context, sessionID string) (*Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (m *MemStore) ListSessions(ctx context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]Info, 0, len(m.sessions))
	for _, info := range m.sessions {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt > infos[j].CreatedAt })
	return infos, nil
}

func (m *MemStore) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

var _ Store = (*MemStore)(nil)
