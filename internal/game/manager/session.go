package manager

import (
	"errors"
	"time"

	"CardGolf/internal/game/engine"
	"CardGolf/internal/websocket"
)

// Session pairs one engine with its serialization loop: every operation
// for a game flows through the actions channel and is applied by a
// single goroutine, which is the ordering guarantee the engine needs.
type Session struct {
	ID      string
	eng     *engine.Engine
	hub     websocket.HubInterface
	mgr     *GameManager
	actions chan websocket.IncomingMessage
	quit    chan struct{}
}

func newSession(id string, hub websocket.HubInterface, mgr *GameManager) *Session {
	return &Session{
		ID:      id,
		eng:     engine.New(time.Now().UnixNano()),
		hub:     hub,
		mgr:     mgr,
		actions: make(chan websocket.IncomingMessage, 32),
		quit:    make(chan struct{}),
	}
}

// enqueue hands a message to the session loop. A message that races the
// table's teardown is dropped, never delivered to a dead session.
func (s *Session) enqueue(msg websocket.IncomingMessage) {
	select {
	case s.actions <- msg:
	case <-s.quit:
	}
}

func (s *Session) run() {
	for {
		select {
		case msg := <-s.actions:
			s.handle(msg)
		case <-s.quit:
			return
		}
	}
}

func (s *Session) handle(msg websocket.IncomingMessage) {
	from := msg.From

	switch msg.Event {
	case EventJoinGame:
		s.handleJoin(from)

	case eventConnectPlayer:
		if err := s.eng.ConnectPlayer(from); err != nil {
			return
		}
		s.emit(EvPlayerRejoined, map[string]any{"playerId": from})
		s.broadcastState()

	case eventDisconnectPlayer:
		if err := s.eng.DisconnectPlayer(from); err != nil {
			return
		}
		s.emit(EvPlayerDisconnected, map[string]any{"playerId": from})
		s.broadcastState()
		if !s.eng.IsAnyPlayerConnected() {
			s.mgr.removeGame(s.ID)
		}

	case EventLeaveGame:
		s.removePlayer(from)

	case EventKickPlayer:
		s.removePlayer(dataString(msg.Data, "playerId"))

	case EventStartGame:
		if err := s.eng.InitializeGame(); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvGameStarted, map[string]any{"gameId": s.ID})
		s.sendDealtCards()
		s.broadcastState()

	case EventDealNewRound:
		if err := s.eng.InitializeRound(); err != nil {
			s.sendError(from, err)
			return
		}
		s.sendDealtCards()
		s.broadcastState()

	case EventResetGame:
		s.eng.ResetGame()
		s.emit(EvGameReset, nil)
		s.broadcastState()

	case EventChangeName:
		name := dataString(msg.Data, "name")
		if err := s.eng.ChangeName(from, name); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvNameChanged, map[string]any{"playerId": from, "name": name})

	case EventChangeGameWord:
		word := dataString(msg.Data, "gameWord")
		if err := s.eng.ChangeGameWord(word); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvGameWordChanged, map[string]any{"gameWord": word})

	case EventToggleGameReady:
		ready, err := s.eng.ToggleGameReady(from)
		if err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvGameReadyChanged, map[string]any{"playerId": from, "isGameReady": ready})

	case EventToggleRoundReady:
		ready, err := s.eng.ToggleRoundReady(from)
		if err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvRoundReadyChanged, map[string]any{"playerId": from, "isRoundReady": ready})
		s.maybeStartRound()

	case EventTakeDiscardPile:
		if _, err := s.eng.TakeFromDiscardPile(from); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvDiscardPileTaken, map[string]any{"playerId": from})
		s.broadcastState()

	case EventTakeDrawPile:
		card, err := s.eng.TakeFromDrawPile(from)
		if err != nil {
			s.sendError(from, err)
			return
		}
		// only the drawer learns what the card is
		s.hub.SendToPlayer(from, websocket.OutgoingMessage{
			Event: EvCardTaken,
			Data:  map[string]any{"card": card},
		})
		s.emit(EvDrawPileTaken, map[string]any{"playerId": from})
		s.broadcastState()

	case EventSwapCard:
		idx := dataInt(msg.Data, "swapCardIdx")
		discarded, err := s.eng.SwapCard(from, idx)
		if err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvCardSwapped, map[string]any{
			"playerId":      from,
			"discardedCard": discarded,
			"swapCardIdx":   idx,
		})
		s.broadcastState()

	case EventDiscardCard:
		discarded, err := s.eng.DiscardCard(from)
		if err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvCardDiscarded, map[string]any{
			"playerId":      from,
			"discardedCard": discarded,
		})
		s.broadcastState()

	case EventFinishTurn:
		if err := s.eng.FinishTurn(from); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvTurnFinished, map[string]any{"playerTurnId": s.eng.PlayerTurnID()})
		s.maybeFinishRound()
		s.broadcastState()

	case EventCallGolf:
		if err := s.eng.CallGolf(from); err != nil {
			s.sendError(from, err)
			return
		}
		s.emit(EvGolfCalled, map[string]any{"golfCallerId": from})
		s.broadcastState()
	}
}

func (s *Session) handleJoin(playerID string) {
	err := s.eng.AddPlayer(playerID)
	switch {
	case err == nil:
		s.emit(EvPlayerJoined, map[string]any{"playerId": playerID})
	case errors.Is(err, engine.ErrPlayerExists):
		// rejoin after a drop
		if err := s.eng.ConnectPlayer(playerID); err != nil {
			return
		}
		s.emit(EvPlayerRejoined, map[string]any{"playerId": playerID})
	default:
		s.sendError(playerID, err)
		return
	}
	s.broadcastState()
}

func (s *Session) removePlayer(playerID string) {
	if err := s.eng.RemovePlayer(playerID); err != nil {
		return
	}
	s.mgr.playerLeft(s.ID, playerID)

	s.emit(EvPlayerLeft, map[string]any{
		"playerId":     playerID,
		"playerTurnId": s.eng.PlayerTurnID(),
		"turnState":    s.eng.TurnState(),
	})
	s.broadcastState()

	if len(s.eng.GamePlayerIDs()) == 0 {
		s.mgr.removeGame(s.ID)
	}
}

// maybeStartRound begins play the moment the last round player readies
// up; there is no separate start-round client event.
func (s *Session) maybeStartRound() {
	if !s.eng.IsRoundStartable() {
		return
	}
	if err := s.eng.StartRound(); err != nil {
		return
	}
	top, _ := s.eng.DiscardPileTopCard()
	s.emit(EvRoundStarted, map[string]any{
		"playerTurnId":      s.eng.PlayerTurnID(),
		"discardPileTop":    top,
		"drawPileCardCount": s.eng.DrawPileCardCount(),
	})
	s.broadcastState()
}

// maybeFinishRound scores the round once the turn pointer is back at
// the golf caller.
func (s *Session) maybeFinishRound() {
	if !s.eng.IsRoundFinished() {
		return
	}
	result, err := s.eng.CalculateRoundResult()
	if err != nil {
		return
	}
	s.emit(EvRoundFinished, result)
}

// sendDealtCards privately shows each round player their peek slots.
func (s *Session) sendDealtCards() {
	roundPlayerIDs := s.eng.RoundPlayerIDs()
	for _, id := range roundPlayerIDs {
		cards, err := s.eng.DealtCardsFor(id)
		if err != nil {
			continue
		}
		s.hub.SendToPlayer(id, websocket.OutgoingMessage{
			Event: EvCardsDealt,
			Data: map[string]any{
				"gameId":         s.ID,
				"cards":          cards,
				"roundPlayerIds": roundPlayerIDs,
			},
		})
	}
}

// broadcastState pushes each player their own projection of the table.
func (s *Session) broadcastState() {
	for _, id := range s.eng.GamePlayerIDs() {
		st, err := s.eng.StateFor(id)
		if err != nil {
			continue
		}
		s.hub.SendToPlayer(id, websocket.OutgoingMessage{Event: EvGameState, Data: st})
	}
}

func (s *Session) emit(event string, data any) {
	s.hub.BroadcastToPlayers(s.eng.GamePlayerIDs(), websocket.OutgoingMessage{
		Event: event,
		Data:  data,
	})
}

func (s *Session) sendError(playerID string, err error) {
	s.hub.SendToPlayer(playerID, websocket.OutgoingMessage{
		Event: EvError,
		Data:  map[string]any{"type": errorType(err)},
	})
}

func errorType(err error) string {
	switch {
	case errors.Is(err, engine.ErrNotPlayerTurn):
		return "not_player_turn"
	case errors.Is(err, engine.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, engine.ErrPileEmpty):
		return "pile_empty"
	default:
		return "invalid_action"
	}
}

func dataString(data interface{}, key string) string {
	m, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func dataInt(data interface{}, key string) int {
	m, ok := data.(map[string]interface{})
	if !ok {
		return -1
	}
	// JSON numbers decode as float64
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	if i, ok := m[key].(int); ok {
		return i
	}
	return -1
}
