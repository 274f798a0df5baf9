package engine

import "CardGolf/internal/game/deck"

// RoundResult is an immutable snapshot of the table the moment a round
// was scored. It shares no memory with live engine state, so dealing
// the next round cannot retroactively alter a broadcast result.
type RoundResult struct {
	Players       map[string]Player `json:"players"`
	RoundLoserIDs []string          `json:"roundLoserIds,omitempty"`
	GameWinnerID  string            `json:"gameWinnerId,omitempty"`
}

// IsPlayerEliminated reports whether a player has collected the full
// game word.
func (e *Engine) IsPlayerEliminated(playerID string) bool {
	return e.players[playerID].LetterCount >= len(e.gameWord)
}

// CalculateRoundResult scores every round player's hand, gives each
// loser (everyone tied at the highest score) a letter, eliminates
// players who completed the word, and detects the end of the game.
//
// If every remaining player would be eliminated at once the round does
// not resolve: the letters are handed back, the same field replays the
// round, and the result carries no loser ids.
func (e *Engine) CalculateRoundResult() (*RoundResult, error) {
	if e.roundState != RoundStarted || !e.IsRoundFinished() {
		return nil, ErrIllegalAction
	}
	e.roundState = RoundFinished

	highestScore := 0
	losers := []string{}
	for _, id := range e.roundPlayerIDs {
		p := e.players[id]
		score := deck.Score(p.Cards)
		s := score
		p.RoundScore = &s

		if score > highestScore {
			highestScore = score
			losers = []string{id}
		} else if score == highestScore {
			losers = append(losers, id)
		}
	}
	e.roundLoserIDs = losers

	for _, id := range losers {
		e.players[id].LetterCount++
	}

	e.eliminatePlayers()

	switch len(e.roundPlayerIDs) {
	case 1:
		e.gameState = GameFinished
		e.gameWinnerID = e.roundPlayerIDs[0]
	case 0:
		// Full tie at the threshold: undo the elimination so the same
		// constrained field replays the round, exactly as if it had
		// never been scored for them.
		e.roundPlayerIDs = append([]string(nil), losers...)
		for _, id := range losers {
			e.players[id].LetterCount--
		}
		e.roundLoserIDs = nil
	}

	return &RoundResult{
		Players:       e.snapshotPlayers(),
		RoundLoserIDs: append([]string(nil), e.roundLoserIDs...),
		GameWinnerID:  e.gameWinnerID,
	}, nil
}

func (e *Engine) eliminatePlayers() {
	remaining := e.roundPlayerIDs[:0]
	for _, id := range e.roundPlayerIDs {
		if !e.IsPlayerEliminated(id) {
			remaining = append(remaining, id)
		}
	}
	e.roundPlayerIDs = remaining
}

func (e *Engine) snapshotPlayers() map[string]Player {
	out := make(map[string]Player, len(e.players))
	for id, p := range e.players {
		cp := *p
		cp.Cards = append([]deck.Card(nil), p.Cards...)
		if p.RoundScore != nil {
			s := *p.RoundScore
			cp.RoundScore = &s
		}
		out[id] = cp
	}
	return out
}
