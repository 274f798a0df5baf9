package manager

import (
	"errors"
	"sync"

	"CardGolf/internal/rooms"
	"CardGolf/internal/websocket"
)

var ErrGameExists = errors.New("game already started for room")
var ErrGameNotFound = errors.New("game not found")

// GameManager owns every live table and routes player traffic to the
// right session's action loop.
type GameManager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session // gameID -> session
	playerToGame map[string]string   // playerID -> gameID
	hub          websocket.HubInterface

	// OnPlayerLeft lets the room registry drop its membership record
	// when the engine removes a player.
	OnPlayerLeft func(gameID, playerID string)

	// DefaultGameWord overrides the engine's built-in elimination word
	// for new tables when set.
	DefaultGameWord string
}

func NewGameManager(hub websocket.HubInterface) *GameManager {
	return &GameManager{
		sessions:     make(map[string]*Session),
		playerToGame: make(map[string]string),
		hub:          hub,
	}
}

// StartGame spins up a session for a freshly created room and seats the
// players already in it. The game itself stays in the lobby state until
// the players ready up and someone sends start-game.
func (m *GameManager) StartGame(r *rooms.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[r.ID]; ok {
		return ErrGameExists
	}

	s := newSession(r.ID, m.hub, m)
	if m.DefaultGameWord != "" {
		_ = s.eng.ChangeGameWord(m.DefaultGameWord)
	}
	m.sessions[r.ID] = s

	go s.run()

	for _, p := range r.Players {
		m.playerToGame[p] = r.ID
		s.enqueue(websocket.IncomingMessage{From: p, Event: EventJoinGame})
	}
	return nil
}

// AddPlayer routes a room join to the session so the engine seats the
// player on its own loop.
func (m *GameManager) AddPlayer(gameID, playerID string) error {
	m.mu.Lock()
	s, ok := m.sessions[gameID]
	if !ok {
		m.mu.Unlock()
		return ErrGameNotFound
	}
	m.playerToGame[playerID] = gameID
	m.mu.Unlock()

	s.enqueue(websocket.IncomingMessage{From: playerID, Event: EventJoinGame})
	return nil
}

// HandlePlayerMessage is the single inbound entry point (wired to
// Hub.OnIncoming).
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.RLock()
	gameID := m.playerToGame[msg.From]
	s := m.sessions[gameID]
	m.mu.RUnlock()

	if s == nil {
		m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
			Event: EvError,
			Data:  map[string]any{"type": "game_not_found"},
		})
		return
	}
	s.enqueue(msg)
}

// HandleClientLive marks a returning player connected on their session.
func (m *GameManager) HandleClientLive(playerID string) {
	m.route(playerID, eventConnectPlayer)
}

// HandleClientGone marks a dropped player disconnected on their session.
func (m *GameManager) HandleClientGone(playerID string) {
	m.route(playerID, eventDisconnectPlayer)
}

func (m *GameManager) route(playerID, event string) {
	m.mu.RLock()
	s := m.sessions[m.playerToGame[playerID]]
	m.mu.RUnlock()
	if s != nil {
		s.enqueue(websocket.IncomingMessage{From: playerID, Event: event})
	}
}

// playerLeft is called from a session loop after the engine dropped a
// player.
func (m *GameManager) playerLeft(gameID, playerID string) {
	m.mu.Lock()
	delete(m.playerToGame, playerID)
	m.mu.Unlock()

	if m.OnPlayerLeft != nil {
		m.OnPlayerLeft(gameID, playerID)
	}
}

// removeGame tears down a session once its last player is gone. Called
// from the session's own loop; closing quit ends run() and turns any
// in-flight enqueue into a drop.
func (m *GameManager) removeGame(gameID string) {
	m.mu.Lock()
	s, ok := m.sessions[gameID]
	if ok {
		delete(m.sessions, gameID)
		for p, g := range m.playerToGame {
			if g == gameID {
				delete(m.playerToGame, p)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		close(s.quit)
	}
}
