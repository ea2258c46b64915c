package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	drepo "StockSense/internal/domain/repository"
)

// MemoryStore is an in-process RecordStore. Documents are kept as JSON so callers
// never share memory with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string][]byte)}
}

func bucketKey(collection, owner string) string { return collection + "\x00" + owner }

func (s *MemoryStore) Put(_ context.Context, collection, owner, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := bucketKey(collection, owner)
	if s.docs[k] == nil {
		s.docs[k] = make(map[string][]byte)
	}
	s.docs[k][id] = b
	return nil
}

func (s *MemoryStore) Get(_ context.Context, collection, owner, id string, dest any) error {
	s.mu.RLock()
	b, ok := s.docs[bucketKey(collection, owner)][id]
	s.mu.RUnlock()
	if !ok {
		return drepo.ErrNotFound
	}
	return json.Unmarshal(b, dest)
}

func (s *MemoryStore) Delete(_ context.Context, collection, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.docs[bucketKey(collection, owner)]
	if _, ok := bucket[id]; !ok {
		return drepo.ErrNotFound
	}
	delete(bucket, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection, owner string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.docs[bucketKey(collection, owner)]
	out := make([]json.RawMessage, 0, len(bucket))
	for _, b := range bucket {
		out = append(out, json.RawMessage(b))
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ drepo.RecordStore = (*MemoryStore)(nil)
