package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvmesh/geom"
)

// Store errors.
var (
	// ErrNotFound indicates an id with no stored geometry.
	ErrNotFound = errors.New("server: geometry not found")

	// ErrBadID indicates an id that is not a UUID.
	ErrBadID = errors.New("server: malformed geometry id")
)

// Store keeps validated polygons in memory, keyed by random UUID.
// Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	geoms map[uuid.UUID]geom.Polygon
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{geoms: make(map[uuid.UUID]geom.Polygon)}
}

// Put stores p and returns its new id. p should already be validated.
func (s *Store) Put(p geom.Polygon) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.geoms[id] = p
	s.mu.Unlock()

	return id
}

// Get returns the polygon stored under id.
func (s *Store) Get(id string) (geom.Polygon, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("%w: %q", ErrBadID, id)
	}
	s.mu.RLock()
	p, ok := s.geoms[u]
	s.mu.RUnlock()
	if !ok {
		return geom.Polygon{}, fmt.Errorf("%w: %s", ErrNotFound, u)
	}

	return p, nil
}

// Len returns the number of stored polygons.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.geoms)
}
