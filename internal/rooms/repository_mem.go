package rooms

import (
	"context"
	"sync"
)

type memRepo struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	players map[string]string // playerID -> roomID
}

// NewMemoryRepo is for tests; TTLs are ignored.
func NewMemoryRepo() Repo {
	return &memRepo{
		rooms:   make(map[string]*Room),
		players: make(map[string]string),
	}
}

func (m *memRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *room
	cp.Players = append([]string(nil), room.Players...)
	m.rooms[room.ID] = &cp
	for _, p := range room.Players {
		m.players[p] = room.ID
	}
	return nil
}

func (m *memRepo) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.Players = append([]string(nil), r.Players...)
	return &cp, nil
}

func (m *memRepo) AddPlayer(ctx context.Context, roomID, playerID string, ttlSeconds int) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, nil
	}
	found := false
	for _, p := range r.Players {
		if p == playerID {
			found = true
			break
		}
	}
	if !found {
		r.Players = append(r.Players, playerID)
	}
	m.players[playerID] = roomID
	cp := *r
	cp.Players = append([]string(nil), r.Players...)
	return &cp, nil
}

func (m *memRepo) RemovePlayer(ctx context.Context, roomID, playerID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, nil
	}
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p != playerID {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	if len(r.Players) == 0 {
		delete(m.rooms, roomID)
		return nil, nil
	}
	cp := *r
	cp.Players = append([]string(nil), r.Players...)
	return &cp, nil
}

func (m *memRepo) PlayerRoom(ctx context.Context, playerID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[playerID], nil
}

func (m *memRepo) DeleteRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok {
		for _, p := range r.Players {
			delete(m.players, p)
		}
	}
	delete(m.rooms, roomID)
	return nil
}
