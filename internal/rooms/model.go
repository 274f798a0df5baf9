package rooms

import "time"

// Room is the lobby-side record of a table: who is at it, nothing about
// the cards. Live game state stays inside the engine.
type Room struct {
	ID        string    `json:"id"`
	HostID    string    `json:"hostId"`
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}

// JoinRequest is the body of POST /games/join; the player id comes from
// the JWT.
type JoinRequest struct {
	GameID string `json:"gameId" binding:"required"`
}

// RoomResponse is returned from create and join.
type RoomResponse struct {
	GameID  string   `json:"gameId"`
	Players []string `json:"players"`
}
