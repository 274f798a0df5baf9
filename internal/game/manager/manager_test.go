package manager

import (
	"sync"
	"testing"
	"time"

	"CardGolf/internal/game/engine"
	"CardGolf/internal/rooms"
	"CardGolf/internal/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHub struct {
	mu         sync.Mutex
	broadcasts []websocket.OutgoingMessage
	sends      map[string][]websocket.OutgoingMessage
}

func newMockHub() *mockHub {
	return &mockHub{sends: make(map[string][]websocket.OutgoingMessage)}
}

func (m *mockHub) BroadcastToPlayers(playerIDs []string, msg websocket.OutgoingMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, msg)
}

func (m *mockHub) SendToPlayer(playerID string, msg websocket.OutgoingMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends[playerID] = append(m.sends[playerID], msg)
}

func (m *mockHub) ClientByPlayerID(string) (*websocket.Client, bool) { return nil, false }

func (m *mockHub) Close() {}

func (m *mockHub) broadcastCount(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.broadcasts {
		if msg.Event == event {
			n++
		}
	}
	return n
}

func (m *mockHub) sentCount(playerID, event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.sends[playerID] {
		if msg.Event == event {
			n++
		}
	}
	return n
}

func (m *mockHub) lastSent(playerID string) (websocket.OutgoingMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.sends[playerID]
	if len(msgs) == 0 {
		return websocket.OutgoingMessage{}, false
	}
	return msgs[len(msgs)-1], true
}

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func testRoom(players ...string) *rooms.Room {
	return &rooms.Room{
		ID:        "room-1",
		HostID:    players[0],
		Players:   players,
		CreatedAt: time.Now(),
	}
}

func TestStartGameSeatsRoomPlayers(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)

	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	assert.Eventually(t, func() bool {
		return hub.broadcastCount(EvPlayerJoined) == 2 &&
			hub.sentCount("p1", EvGameState) > 0 &&
			hub.sentCount("p2", EvGameState) > 0
	}, waitFor, tick)
}

func TestDefaultGameWordAppliesToNewTables(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	mgr.DefaultGameWord = "HORSE"

	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))
	require.Eventually(t, func() bool {
		return hub.broadcastCount(EvPlayerJoined) == 2
	}, waitFor, tick)

	mgr.mu.RLock()
	word := mgr.sessions["room-1"].eng.GameWord()
	mgr.mu.RUnlock()
	assert.Equal(t, "HORSE", word)
}

func TestStartGameTwiceRejected(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)

	require.NoError(t, mgr.StartGame(testRoom("p1")))
	assert.ErrorIs(t, mgr.StartGame(testRoom("p1")), ErrGameExists)
}

func TestAddPlayerUnknownGame(t *testing.T) {
	mgr := NewGameManager(newMockHub())
	assert.ErrorIs(t, mgr.AddPlayer("no-such-game", "p1"), ErrGameNotFound)
}

func TestMessageFromUnknownPlayer(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)

	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "stranger", Event: EventStartGame})

	msg, ok := hub.lastSent("stranger")
	require.True(t, ok)
	assert.Equal(t, EvError, msg.Event)
	data := msg.Data.(map[string]any)
	assert.Equal(t, "game_not_found", data["type"])
}

func TestReadyUpAndStartFlow(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventToggleGameReady})
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p2", Event: EventToggleGameReady})
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventStartGame})

	assert.Eventually(t, func() bool {
		return hub.broadcastCount(EvGameStarted) == 1 &&
			hub.sentCount("p1", EvCardsDealt) == 1 &&
			hub.sentCount("p2", EvCardsDealt) == 1
	}, waitFor, tick)
}

func TestStartGameWithoutReadyPlayersErrors(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventStartGame})

	assert.Eventually(t, func() bool {
		return hub.sentCount("p1", EvError) == 1
	}, waitFor, tick)
	assert.Zero(t, hub.broadcastCount(EvGameStarted))
}

func TestRoundAutoStartsAndDrawIsPrivate(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	for _, p := range []string{"p1", "p2"} {
		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: p, Event: EventToggleGameReady})
	}
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventStartGame})
	for _, p := range []string{"p1", "p2"} {
		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: p, Event: EventToggleRoundReady})
	}

	require.Eventually(t, func() bool {
		return hub.broadcastCount(EvRoundStarted) == 1
	}, waitFor, tick, "round starts when the last player readies up")

	mgr.mu.RLock()
	turnID := mgr.sessions["room-1"].eng.PlayerTurnID()
	mgr.mu.RUnlock()
	other := "p1"
	if turnID == "p1" {
		other = "p2"
	}

	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: turnID, Event: EventTakeDrawPile})

	assert.Eventually(t, func() bool {
		return hub.broadcastCount(EvDrawPileTaken) == 1 &&
			hub.sentCount(turnID, EvCardTaken) == 1
	}, waitFor, tick)
	assert.Zero(t, hub.sentCount(other, EvCardTaken), "only the drawer sees the card")
}

func TestOutOfTurnActionSendsTypedError(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	for _, p := range []string{"p1", "p2"} {
		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: p, Event: EventToggleGameReady})
	}
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventStartGame})
	for _, p := range []string{"p1", "p2"} {
		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: p, Event: EventToggleRoundReady})
	}
	require.Eventually(t, func() bool {
		return hub.broadcastCount(EvRoundStarted) == 1
	}, waitFor, tick)

	mgr.mu.RLock()
	turnID := mgr.sessions["room-1"].eng.PlayerTurnID()
	mgr.mu.RUnlock()
	other := "p1"
	if turnID == "p1" {
		other = "p2"
	}

	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: other, Event: EventTakeDrawPile})

	assert.Eventually(t, func() bool {
		msg, ok := hub.lastSent(other)
		if !ok || msg.Event != EvError {
			return false
		}
		data := msg.Data.(map[string]any)
		return data["type"] == "not_player_turn"
	}, waitFor, tick)
}

func TestLeaveGameTearsDownEmptySession(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)

	var mu sync.Mutex
	var left []string
	mgr.OnPlayerLeft = func(gameID, playerID string) {
		mu.Lock()
		left = append(left, playerID)
		mu.Unlock()
	}

	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventLeaveGame})
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p2", Event: EventLeaveGame})

	assert.Eventually(t, func() bool {
		mgr.mu.RLock()
		_, alive := mgr.sessions["room-1"]
		mgr.mu.RUnlock()
		return !alive
	}, waitFor, tick, "session is torn down once the last player leaves")

	mu.Lock()
	assert.ElementsMatch(t, []string{"p1", "p2"}, left)
	mu.Unlock()
}

func TestKickPlayerDropsTarget(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2", "p3")))

	mgr.HandlePlayerMessage(websocket.IncomingMessage{
		From:  "p1",
		Event: EventKickPlayer,
		Data:  map[string]interface{}{"playerId": "p3"},
	})

	assert.Eventually(t, func() bool {
		return hub.broadcastCount(EvPlayerLeft) == 1
	}, waitFor, tick)

	mgr.mu.RLock()
	_, routed := mgr.playerToGame["p3"]
	mgr.mu.RUnlock()
	assert.False(t, routed, "kicked player no longer routes to the game")
}

func TestDisconnectAllPlayersRemovesGame(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	mgr.HandleClientGone("p1")
	mgr.HandleClientGone("p2")

	assert.Eventually(t, func() bool {
		mgr.mu.RLock()
		_, alive := mgr.sessions["room-1"]
		mgr.mu.RUnlock()
		return !alive
	}, waitFor, tick, "an abandoned table is reaped")
}

func TestEnqueueAfterTeardownIsDropped(t *testing.T) {
	hub := newMockHub()
	mgr := NewGameManager(hub)
	require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

	// a sender can fetch the session right before teardown wins the race
	mgr.mu.RLock()
	s := mgr.sessions["room-1"]
	mgr.mu.RUnlock()

	mgr.removeGame("room-1")

	assert.NotPanics(t, func() {
		s.enqueue(websocket.IncomingMessage{From: "p1", Event: EventFinishTurn})
	})

	// routing now reports the game gone instead of delivering
	mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventFinishTurn})
	msg, ok := hub.lastSent("p1")
	require.True(t, ok)
	assert.Equal(t, EvError, msg.Event)
}

func TestMessagesRacingTeardownDoNotPanic(t *testing.T) {
	for i := 0; i < 10; i++ {
		hub := newMockHub()
		mgr := NewGameManager(hub)
		require.NoError(t, mgr.StartGame(testRoom("p1", "p2")))

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() {
				for j := 0; j < 100; j++ {
					mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventToggleGameReady})
				}
			})
		}()

		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p2", Event: EventLeaveGame})
		mgr.HandlePlayerMessage(websocket.IncomingMessage{From: "p1", Event: EventLeaveGame})
		wg.Wait()

		assert.Eventually(t, func() bool {
			mgr.mu.RLock()
			_, alive := mgr.sessions["room-1"]
			mgr.mu.RUnlock()
			return !alive
		}, waitFor, tick)
	}
}

func TestErrorTypeMapping(t *testing.T) {
	assert.Equal(t, "not_player_turn", errorType(engine.ErrNotPlayerTurn))
	assert.Equal(t, "player_not_found", errorType(engine.ErrPlayerNotFound))
	assert.Equal(t, "pile_empty", errorType(engine.ErrPileEmpty))
	assert.Equal(t, "invalid_action", errorType(engine.ErrIllegalAction))
	assert.Equal(t, "invalid_action", errorType(engine.ErrBadCardIndex))
}
