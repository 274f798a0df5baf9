package engine

// AddPlayer seats a new player at the end of the join order.
func (e *Engine) AddPlayer(playerID string) error {
	if _, ok := e.players[playerID]; ok {
		return ErrPlayerExists
	}
	e.players[playerID] = &Player{
		ID:          playerID,
		Name:        playerID,
		IsConnected: true,
	}
	e.gamePlayerIDs = append(e.gamePlayerIDs, playerID)
	return nil
}

// RemovePlayer drops a player from the roster and, if a game is in
// progress, realigns the dealer and turn indices so rotation continues
// with the same players. Removing the second-to-last round player ends
// the game with the survivor as winner.
func (e *Engine) RemovePlayer(playerID string) error {
	if _, ok := e.players[playerID]; !ok {
		return ErrPlayerNotFound
	}

	// The seat list shrinks; keep gameDealerIdx pointing at the same
	// player when someone at or before the dealer's seat leaves.
	if idx := indexOf(e.gamePlayerIDs, playerID); idx <= e.gameDealerIdx {
		e.gameDealerIdx--
	}

	delete(e.players, playerID)
	e.gamePlayerIDs = removeID(e.gamePlayerIDs, playerID)

	if e.gameState != GameStarted {
		return nil
	}

	if playerID == e.PlayerTurnID() {
		// The list shrinking makes the turn index point at the next
		// player, except when the leaver held the last seat.
		if e.roundPlayerIDs[len(e.roundPlayerIDs)-1] == playerID {
			e.roundPlayerTurnIdx = 0
		}
		e.takenCard = nil
		e.turnState = TurnNotStarted
	} else if idx := indexOf(e.roundPlayerIDs, playerID); idx >= 0 && idx <= e.roundPlayerTurnIdx {
		e.roundPlayerTurnIdx--
	}

	e.roundPlayerIDs = removeID(e.roundPlayerIDs, playerID)

	if len(e.roundPlayerIDs) == 1 {
		e.gameState = GameFinished
		e.gameWinnerID = e.roundPlayerIDs[0]
	}
	return nil
}

// ConnectPlayer marks a player online. Rejoiners of a running game are
// auto-readied so they cannot block the next round.
func (e *Engine) ConnectPlayer(playerID string) error {
	p, ok := e.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.IsConnected = true
	p.IsGameReady = e.IsGameStarted()
	return nil
}

func (e *Engine) DisconnectPlayer(playerID string) error {
	p, ok := e.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.IsConnected = false
	p.IsGameReady = false
	p.IsRoundReady = false
	return nil
}

func (e *Engine) IsAnyPlayerConnected() bool {
	for _, p := range e.players {
		if p.IsConnected {
			return true
		}
	}
	return false
}

func (e *Engine) ChangeName(playerID, name string) error {
	p, ok := e.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Name = name
	return nil
}

// ToggleGameReady flips the player's game readiness and returns the new
// value.
func (e *Engine) ToggleGameReady(playerID string) (bool, error) {
	p, ok := e.players[playerID]
	if !ok {
		return false, ErrPlayerNotFound
	}
	p.IsGameReady = !p.IsGameReady
	return p.IsGameReady, nil
}

// ToggleRoundReady flips the player's round readiness and returns the
// new value.
func (e *Engine) ToggleRoundReady(playerID string) (bool, error) {
	p, ok := e.players[playerID]
	if !ok {
		return false, ErrPlayerNotFound
	}
	p.IsRoundReady = !p.IsRoundReady
	return p.IsRoundReady, nil
}

func (e *Engine) isEachPlayerGameReady() bool {
	for _, id := range e.gamePlayerIDs {
		if !e.players[id].IsGameReady {
			return false
		}
	}
	return true
}

func (e *Engine) isEachPlayerRoundReady() bool {
	for _, id := range e.roundPlayerIDs {
		if !e.players[id].IsRoundReady {
			return false
		}
	}
	return true
}

// IsGameStartable requires at least two seated players, all game-ready.
func (e *Engine) IsGameStartable() bool {
	return len(e.gamePlayerIDs) > 1 && e.isEachPlayerGameReady()
}

// IsRoundStartable requires dealt cards and every round player ready.
func (e *Engine) IsRoundStartable() bool {
	return e.roundState == RoundCardsDealt && e.isEachPlayerRoundReady()
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
