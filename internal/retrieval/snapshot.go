package retrieval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/legalchat/legalchat/internal/schema"
)

// SnapshotStore persists the scored results of a retrieval pass, one file
// per session so concurrent sessions never clobber each other.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates the snapshot directory if needed. An empty dir
// disables persistence.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if dir == "" {
		return &SnapshotStore{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// Save writes the session's snapshot as a JSON array of answer/score
// objects, replacing any previous one. Vietnamese text is written
// verbatim, without HTML escaping.
func (s *SnapshotStore) Save(sessionID string, result *Result) error {
	if s.dir == "" {
		return nil
	}
	scored := result.Scored
	if scored == nil {
		scored = []schema.ScoredResult{}
	}

	f, err := os.Create(s.path(sessionID))
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scored); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads back the snapshot for sessionID.
func (s *SnapshotStore) Load(sessionID string) ([]schema.ScoredResult, error) {
	if s.dir == "" {
		return nil, fmt.Errorf("snapshot persistence disabled")
	}
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var scored []schema.ScoredResult
	if err := json.Unmarshal(data, &scored); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return scored, nil
}

func (s *SnapshotStore) path(sessionID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("retrieval_%s.json", sessionID))
}
