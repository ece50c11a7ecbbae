// Package storage persists the companion's three documents through a
// single datastore file: the personality, the memory store and the
// offline queue. Values round-trip through JSON, so a loaded document
// is always re-checked and repaired by the caller's Normalize.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/keshon/datastore"

	"github.com/keshon/kindred/internal/soul"
)

const (
	keyPersonality = "personality"
	keyMemory      = "memory"
	keyQueue       = "offline_queue"
)

// Storage wraps the datastore file. Writes are atomic on disk
// (temp file + rename, with checksums and rotating backups).
type Storage struct {
	ds *datastore.DataStore
}

// New opens or creates the datastore file.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and shuts the store down.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// SaveNow forces an immediate flush to disk.
func (s *Storage) SaveNow() error {
	return s.ds.SaveToFile()
}

// Stats exposes the underlying datastore counters for debugging.
func (s *Storage) Stats() map[string]any {
	return s.ds.Stats()
}

// decode re-marshals a loosely typed stored value into its real shape.
func decode(data any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal stored value: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal stored value: %w", err)
	}
	return nil
}

// SavePersonality stages the personality document. The datastore's
// autosave (or SaveNow) carries it to disk.
func (s *Storage) SavePersonality(p *soul.Personality) {
	s.ds.Add(keyPersonality, p)
}

// LoadPersonality returns the stored personality, nil when none was
// ever saved, or an error when the document cannot be decoded.
func (s *Storage) LoadPersonality() (*soul.Personality, error) {
	data, exists := s.ds.Get(keyPersonality)
	if !exists {
		return nil, nil
	}
	var p soul.Personality
	if err := decode(data, &p); err != nil {
		return nil, fmt.Errorf("personality: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// SaveMemory stages the memory document.
func (s *Storage) SaveMemory(m *soul.MemoryStore) {
	s.ds.Add(keyMemory, m)
}

// LoadMemory returns the stored memory, nil when none was ever saved.
func (s *Storage) LoadMemory() (*soul.MemoryStore, error) {
	data, exists := s.ds.Get(keyMemory)
	if !exists {
		return nil, nil
	}
	var m soul.MemoryStore
	if err := decode(data, &m); err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	m.Normalize()
	return &m, nil
}

// SaveQueue writes the offline queue through to disk immediately, so
// a crash while offline loses nothing.
func (s *Storage) SaveQueue(items []soul.QueuedInteraction) error {
	s.ds.Add(keyQueue, items)
	if err := s.ds.SaveToFile(); err != nil {
		return fmt.Errorf("flush queue: %w", err)
	}
	return nil
}

// LoadQueue returns the persisted offline queue, empty when none.
func (s *Storage) LoadQueue() ([]soul.QueuedInteraction, error) {
	data, exists := s.ds.Get(keyQueue)
	if !exists {
		return nil, nil
	}
	var items []soul.QueuedInteraction
	if err := decode(data, &items); err != nil {
		return nil, fmt.Errorf("offline queue: %w", err)
	}
	return items, nil
}
