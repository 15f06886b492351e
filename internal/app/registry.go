package app

import (
	"sync"

	"katarik/internal/domain"
)

// Registry is the process-wide room table, keyed by room id. Rooms are
// created on first binding and never evicted, so a room survives its hosting
// match being torn down and rebuilt. At most one live match may hold a
// binding for a room at a time; every room mutation happens on that match's
// single goroutine.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*domain.Room
	bound map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*domain.Room),
		bound: make(map[string]bool),
	}
}

// Bind returns the room for the given id, creating it if needed, and marks
// it as owned by the calling match. The find-or-create RPC is not atomic, so
// two matches can race to host one room id; the second Bind reports false
// and the loser must refuse to start.
func (r *Registry) Bind(id string) (*domain.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bound[id] {
		return nil, false
	}
	room, ok := r.rooms[id]
	if !ok {
		room = domain.NewRoom(id)
		r.rooms[id] = room
	}
	r.bound[id] = true
	return room, true
}

// Release drops the live binding for the given id so a later match can host
// the retained room again. Releasing an unbound id is a no-op.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bound, id)
}

// Len returns the number of rooms currently retained.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
