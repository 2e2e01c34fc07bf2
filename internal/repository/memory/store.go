// Package memory holds in-process implementations of the persistence
// gateways, used as the default backend and by tests. Documents are kept as
// serialized JSON so every read and write round-trips the whole blob, exactly
// like the durable stores.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"society-ledger/internal/domain/society"
)

type entry struct {
	payload  []byte
	revision int64
}

type Store struct {
	mu    sync.RWMutex
	docs  map[string]entry
	order []string
}

func NewStore() *Store {
	return &Store{docs: make(map[string]entry)}
}

func (s *Store) List(ctx context.Context) ([]society.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]society.Apartment, 0, len(s.order))
	for _, id := range s.order {
		doc, err := decode(s.docs[id])
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, nil
}

func (s *Store) Get(ctx context.Context, id string) (*society.Apartment, error) {
	s.mu.RLock()
	item, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, society.ErrApartmentNotFound
	}
	return decode(item)
}

func (s *Store) Save(ctx context.Context, doc *society.Apartment) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[doc.ID]
	if ok && existing.revision != doc.Revision {
		return society.ErrStaleDocument
	}
	if !ok {
		s.order = append(s.order, doc.ID)
	}

	doc.Revision++
	s.docs[doc.ID] = entry{payload: payload, revision: doc.Revision}
	return nil
}

func decode(item entry) (*society.Apartment, error) {
	var doc society.Apartment
	if err := json.Unmarshal(item.payload, &doc); err != nil {
		return nil, err
	}
	doc.Revision = item.revision
	return &doc, nil
}
