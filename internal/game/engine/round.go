package engine

import "CardGolf/internal/game/deck"

// InitializeGame starts the game: seating is randomized once, every
// seated player enters the round rotation, and the first round is
// dealt.
func (e *Engine) InitializeGame() error {
	if e.gameState != GameNotStarted || !e.IsGameStartable() {
		return ErrIllegalAction
	}
	e.gameState = GameStarted

	e.rng.Shuffle(len(e.gamePlayerIDs), func(i, j int) {
		e.gamePlayerIDs[i], e.gamePlayerIDs[j] = e.gamePlayerIDs[j], e.gamePlayerIDs[i]
	})
	e.roundPlayerIDs = append([]string(nil), e.gamePlayerIDs...)

	e.initializeRound()
	return nil
}

// InitializeRound deals the next round once the previous one has been
// scored.
func (e *Engine) InitializeRound() error {
	if e.gameState != GameStarted || e.roundState != RoundFinished {
		return ErrIllegalAction
	}
	e.initializeRound()
	return nil
}

func (e *Engine) initializeRound() {
	e.advanceDealer()

	// The dealer leads off: map the dealer's seat to its position in
	// the (possibly smaller) round rotation, with no extra offset.
	dealerID := e.gamePlayerIDs[e.gameDealerIdx]
	for i, id := range e.roundPlayerIDs {
		if id == dealerID {
			e.roundPlayerTurnIdx = i
		}
	}

	for _, id := range e.gamePlayerIDs {
		p := e.players[id]
		p.Cards = nil
		p.RoundScore = nil
		p.IsRoundReady = false
	}

	// One deck per up-to-four round players.
	numberOfDecks := (len(e.roundPlayerIDs)-1)/4 + 1
	e.drawPile = deck.Shuffled(e.rng, numberOfDecks)

	top := e.drawPile[len(e.drawPile)-1]
	e.drawPile = e.drawPile[:len(e.drawPile)-1]
	e.discardPile = []deck.Card{top}

	for _, id := range e.roundPlayerIDs {
		n := len(e.drawPile)
		hand := append([]deck.Card(nil), e.drawPile[n-handSize:]...)
		e.drawPile = e.drawPile[:n-handSize]
		e.players[id].Cards = hand
	}

	e.golfCallerID = ""
	e.gameWinnerID = ""
	e.roundLoserIDs = nil

	e.roundState = RoundCardsDealt
	e.turnState = TurnNotStarted
}

// advanceDealer walks the seat list to the next non-eliminated player.
// At least one seated player is never eliminated while the game is
// active, so the loop terminates.
func (e *Engine) advanceDealer() {
	for {
		e.gameDealerIdx = (e.gameDealerIdx + 1) % len(e.gamePlayerIDs)
		if !e.IsPlayerEliminated(e.gamePlayerIDs[e.gameDealerIdx]) {
			return
		}
	}
}

// StartRound begins play once every round player has readied up after
// peeking at their dealt cards.
func (e *Engine) StartRound() error {
	if !e.IsRoundStartable() {
		return ErrIllegalAction
	}
	e.roundState = RoundStarted
	return nil
}

// ResetGame returns the table to the lobby: letters, hands and scores
// are wiped but the roster keeps its seats.
func (e *Engine) ResetGame() {
	for _, id := range e.gamePlayerIDs {
		p := e.players[id]
		p.LetterCount = 0
		p.Cards = nil
		p.RoundScore = nil
		p.IsGameReady = false
		p.IsRoundReady = false
	}

	e.roundPlayerIDs = nil

	e.gameState = GameNotStarted
	e.roundState = RoundNotStarted
	e.turnState = TurnNotStarted

	e.gameDealerIdx = -1
	e.roundPlayerTurnIdx = 0

	e.drawPile = nil
	e.discardPile = nil
	e.takenCard = nil

	e.golfCallerID = ""
	e.gameWinnerID = ""
	e.roundLoserIDs = nil
}
