// Package bindings persists the chat-user to judge-uid associations as a
// flat JSON document. Writes are whole-file and last-writer-wins; the store
// is explicit about that rather than pretending to be transactional.
package bindings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tabriszx/algoassist/pkg/metrics"
)

// Store maps chat-user identifiers to judge uids, backed by one JSON file.
type Store struct {
	path   string
	users  map[string]int64
	closed bool
}

// Open loads the binding document, creating an empty one when the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, users: make(map[string]int64)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.users); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	return s, nil
}

// Lookup returns the bound judge uid for a chat user. ErrUnbound when there
// is no association.
func (s *Store) Lookup(chatUser string) (int64, error) {
	if s.closed {
		return 0, fmt.Errorf("%w: store is closed", ErrStoreIO)
	}
	uid, ok := s.users[chatUser]
	if !ok {
		return 0, ErrUnbound
	}
	return uid, nil
}

// Bind associates a chat user with a judge uid and writes the document
// through to disk. A rebind overwrites the previous association.
func (s *Store) Bind(chatUser string, uid int64) error {
	if s.closed {
		return fmt.Errorf("%w: store is closed", ErrStoreIO)
	}
	s.users[chatUser] = uid
	if err := s.flush(); err != nil {
		return err
	}
	metrics.RecordBindWrite()
	return nil
}

// Len reports the number of associations held.
func (s *Store) Len() int {
	return len(s.users)
}

// Close releases the store. The document is already on disk; later calls to
// Lookup or Bind report ErrStoreIO.
func (s *Store) Close() error {
	s.closed = true
	s.users = nil
	return nil
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	raw, err := json.MarshalIndent(s.users, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return nil
}
