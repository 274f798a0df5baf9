package rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CardGolf/internal/websocket"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errors.New("room not found")

type HubBroadcaster interface {
	BroadcastToPlayers(playerIDs []string, msg websocket.OutgoingMessage)
}

// Service owns room lifecycle. Game-side wiring happens through the
// callbacks so this package never imports the manager.
type Service struct {
	repo    Repo
	roomTTL int // seconds
	hub     HubBroadcaster

	OnRoomCreated  func(*Room) error
	OnPlayerJoined func(roomID, playerID string) error
}

func NewService(repo Repo, roomTTL int, hub HubBroadcaster) *Service {
	return &Service{repo: repo, roomTTL: roomTTL, hub: hub}
}

// Create opens a new room with the host as its first player.
func (s *Service) Create(ctx context.Context, hostID string) (*Room, error) {
	if roomID, _ := s.repo.PlayerRoom(ctx, hostID); roomID != "" {
		return nil, fmt.Errorf("player %s already in room %s", hostID, roomID)
	}

	room := &Room{
		ID:        uuid.NewString(),
		HostID:    hostID,
		Players:   []string{hostID},
		CreatedAt: time.Now(),
	}
	if err := s.repo.SaveRoom(ctx, room, s.roomTTL); err != nil {
		return nil, err
	}

	if s.OnRoomCreated != nil {
		if err := s.OnRoomCreated(room); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// Join adds a player to an existing room and notifies everyone already
// seated.
func (s *Service) Join(ctx context.Context, roomID, playerID string) (*Room, error) {
	if current, _ := s.repo.PlayerRoom(ctx, playerID); current != "" && current != roomID {
		return nil, fmt.Errorf("player %s already in room %s", playerID, current)
	}

	room, err := s.repo.AddPlayer(ctx, roomID, playerID, s.roomTTL)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	s.hub.BroadcastToPlayers(room.Players, websocket.OutgoingMessage{
		Event: "room-updated",
		Data: map[string]any{
			"gameId":  room.ID,
			"players": room.Players,
		},
	})

	if s.OnPlayerJoined != nil {
		if err := s.OnPlayerJoined(room.ID, playerID); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// Leave removes a player from whatever room they occupy; the engine
// side is driven separately by the leave-game event.
func (s *Service) Leave(ctx context.Context, playerID string) error {
	roomID, err := s.repo.PlayerRoom(ctx, playerID)
	if err != nil {
		return err
	}
	if roomID == "" {
		return nil
	}

	room, err := s.repo.RemovePlayer(ctx, roomID, playerID)
	if err != nil {
		return err
	}
	if room != nil {
		s.hub.BroadcastToPlayers(room.Players, websocket.OutgoingMessage{
			Event: "room-updated",
			Data: map[string]any{
				"gameId":  room.ID,
				"players": room.Players,
			},
		})
	}
	return nil
}

// DropMembership mirrors an engine-side removal (kick, leave-game) into
// the registry. Wired to the manager's OnPlayerLeft callback.
func (s *Service) DropMembership(roomID, playerID string) {
	_, _ = s.repo.RemovePlayer(context.Background(), roomID, playerID)
}
