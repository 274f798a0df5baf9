package rooms

import "context"

// Repo abstracts room membership storage so tests can run on the
// in-memory version and production on redis.
type Repo interface {
	// SaveRoom writes a room under a TTL; abandoned rooms expire.
	SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error
	// GetRoom loads a room, nil if absent.
	GetRoom(ctx context.Context, roomID string) (*Room, error)
	// AddPlayer appends a player to a room and returns the updated room.
	AddPlayer(ctx context.Context, roomID, playerID string, ttlSeconds int) (*Room, error)
	// RemovePlayer drops a player; the room is deleted when it empties.
	RemovePlayer(ctx context.Context, roomID, playerID string) (*Room, error)
	// PlayerRoom returns the room id a player currently occupies, "" if none.
	PlayerRoom(ctx context.Context, playerID string) (string, error)
	// DeleteRoom removes a room and its player mappings.
	DeleteRoom(ctx context.Context, roomID string) error
}
