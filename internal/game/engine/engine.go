package engine

import (
	"math/rand"

	"CardGolf/internal/game/deck"
)

// GameState is the lifecycle stage of the whole game.
type GameState string

const (
	GameNotStarted GameState = "not_started"
	GameStarted    GameState = "started"
	GameFinished   GameState = "finished"
)

// RoundState is the lifecycle stage of the current round.
type RoundState string

const (
	RoundNotStarted RoundState = "not_started"
	RoundCardsDealt RoundState = "cards_dealt"
	RoundStarted    RoundState = "started"
	RoundFinished   RoundState = "finished"
)

// TurnState is the stage of the current player's turn.
type TurnState string

const (
	TurnNotStarted    TurnState = "not_started"
	TurnCardTaken     TurnState = "card_taken"
	TurnCardDiscarded TurnState = "card_discarded"
)

// DefaultGameWord sets the elimination threshold: a player collects one
// letter per lost round and is out at len(word) letters.
const DefaultGameWord = "GOLF"

const handSize = 4

// Player holds everything the engine tracks per participant. The engine
// owns the only copy; snapshots hand out value copies.
type Player struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	LetterCount  int         `json:"letterCount"`
	RoundScore   *int        `json:"roundScore,omitempty"`
	IsGameReady  bool        `json:"isGameReady"`
	IsRoundReady bool        `json:"isRoundReady"`
	IsConnected  bool        `json:"isConnected"`
	Cards        []deck.Card `json:"cards,omitempty"` // nil until dealt
}

// Engine is the authoritative state for one golf table. It performs no
// I/O and is not safe for concurrent use; the caller must serialize all
// operations for a session (the manager runs one action loop per game).
type Engine struct {
	rng *rand.Rand

	players       map[string]*Player
	gamePlayerIDs []string // seating order; turn and dealer rotation consult this, never map order

	gameState  GameState
	roundState RoundState
	turnState  TurnState

	gameDealerIdx      int // index into gamePlayerIDs, -1 until the first round
	roundPlayerIDs     []string
	roundPlayerTurnIdx int // index into roundPlayerIDs

	gameWord string

	drawPile    []deck.Card // top is the end
	discardPile []deck.Card
	takenCard   *deck.Card // set iff turnState == TurnCardTaken

	golfCallerID  string
	gameWinnerID  string
	roundLoserIDs []string
}

// New returns an empty table. The seed drives seating order and every
// shuffle for this session.
func New(seed int64) *Engine {
	return &Engine{
		rng:           rand.New(rand.NewSource(seed)),
		players:       make(map[string]*Player),
		gamePlayerIDs: []string{},
		gameState:     GameNotStarted,
		roundState:    RoundNotStarted,
		turnState:     TurnNotStarted,
		gameDealerIdx: -1,
		gameWord:      DefaultGameWord,
	}
}

func (e *Engine) GameState() GameState   { return e.gameState }
func (e *Engine) RoundState() RoundState { return e.roundState }
func (e *Engine) TurnState() TurnState   { return e.turnState }
func (e *Engine) GameWord() string       { return e.gameWord }

func (e *Engine) GamePlayerIDs() []string {
	return append([]string(nil), e.gamePlayerIDs...)
}

func (e *Engine) RoundPlayerIDs() []string {
	return append([]string(nil), e.roundPlayerIDs...)
}

// PlayerTurnID returns the id of the current turn holder, or "" when no
// round is underway.
func (e *Engine) PlayerTurnID() string {
	if e.roundPlayerTurnIdx < 0 || e.roundPlayerTurnIdx >= len(e.roundPlayerIDs) {
		return ""
	}
	return e.roundPlayerIDs[e.roundPlayerTurnIdx]
}

func (e *Engine) HasPlayer(playerID string) bool {
	_, ok := e.players[playerID]
	return ok
}

func (e *Engine) IsGameStarted() bool {
	return e.gameState == GameStarted || e.gameState == GameFinished
}

func (e *Engine) IsGameFinished() bool {
	return e.gameState == GameFinished
}

// IsRoundFinished reports whether the turn pointer has cycled back to
// the golf caller, i.e. every other active player has had their final
// turn.
func (e *Engine) IsRoundFinished() bool {
	return e.golfCallerID != "" && e.PlayerTurnID() == e.golfCallerID
}

func (e *Engine) GolfCallerID() string   { return e.golfCallerID }
func (e *Engine) GameWinnerID() string   { return e.gameWinnerID }
func (e *Engine) DrawPileCardCount() int { return len(e.drawPile) }

func (e *Engine) DiscardPileTopCard() (deck.Card, bool) {
	if len(e.discardPile) == 0 {
		return deck.Card{}, false
	}
	return e.discardPile[len(e.discardPile)-1], true
}

// ChangeGameWord replaces the elimination word, even mid-game: letter
// counts are compared against the new length at the next scoring.
func (e *Engine) ChangeGameWord(word string) error {
	if len(word) == 0 {
		return ErrIllegalAction
	}
	e.gameWord = word
	return nil
}

func (e *Engine) requireTurn(playerID string) error {
	if _, ok := e.players[playerID]; !ok {
		return ErrPlayerNotFound
	}
	if e.PlayerTurnID() != playerID {
		return ErrNotPlayerTurn
	}
	return nil
}

// TakeFromDiscardPile pops the top discard into the taken slot.
func (e *Engine) TakeFromDiscardPile(playerID string) (deck.Card, error) {
	if err := e.requireTurn(playerID); err != nil {
		return deck.Card{}, err
	}
	if e.roundState != RoundStarted || e.turnState != TurnNotStarted {
		return deck.Card{}, ErrIllegalAction
	}
	if len(e.discardPile) == 0 {
		return deck.Card{}, ErrPileEmpty
	}
	card := e.discardPile[len(e.discardPile)-1]
	e.discardPile = e.discardPile[:len(e.discardPile)-1]
	e.takenCard = &card
	e.turnState = TurnCardTaken
	return card, nil
}

// TakeFromDrawPile pops the top of the draw pile into the taken slot.
// An exhausted draw pile is replenished by reshuffling the discard pile
// minus its top card; if that still leaves nothing to draw the action
// rejects untouched.
func (e *Engine) TakeFromDrawPile(playerID string) (deck.Card, error) {
	if err := e.requireTurn(playerID); err != nil {
		return deck.Card{}, err
	}
	if e.roundState != RoundStarted || e.turnState != TurnNotStarted {
		return deck.Card{}, ErrIllegalAction
	}
	if len(e.drawPile) == 0 {
		e.replenishDrawPile()
	}
	if len(e.drawPile) == 0 {
		return deck.Card{}, ErrPileEmpty
	}
	card := e.drawPile[len(e.drawPile)-1]
	e.drawPile = e.drawPile[:len(e.drawPile)-1]
	e.takenCard = &card
	e.turnState = TurnCardTaken
	return card, nil
}

func (e *Engine) replenishDrawPile() {
	if len(e.discardPile) < 2 {
		return
	}
	top := e.discardPile[len(e.discardPile)-1]
	e.drawPile = append(e.drawPile, e.discardPile[:len(e.discardPile)-1]...)
	e.rng.Shuffle(len(e.drawPile), func(i, j int) {
		e.drawPile[i], e.drawPile[j] = e.drawPile[j], e.drawPile[i]
	})
	e.discardPile = []deck.Card{top}
}

// SwapCard exchanges the taken card with the player's card at cardIdx;
// the displaced card goes face-up onto the discard pile. Returns the
// displaced card.
func (e *Engine) SwapCard(playerID string, cardIdx int) (deck.Card, error) {
	if err := e.requireTurn(playerID); err != nil {
		return deck.Card{}, err
	}
	if e.turnState != TurnCardTaken || e.takenCard == nil {
		return deck.Card{}, ErrIllegalAction
	}
	p := e.players[playerID]
	if cardIdx < 0 || cardIdx >= len(p.Cards) {
		return deck.Card{}, ErrBadCardIndex
	}
	displaced := p.Cards[cardIdx]
	e.discardPile = append(e.discardPile, displaced)
	p.Cards[cardIdx] = *e.takenCard
	e.takenCard = nil
	e.turnState = TurnCardDiscarded
	return displaced, nil
}

// DiscardCard pushes the taken card straight onto the discard pile.
func (e *Engine) DiscardCard(playerID string) (deck.Card, error) {
	if err := e.requireTurn(playerID); err != nil {
		return deck.Card{}, err
	}
	if e.turnState != TurnCardTaken || e.takenCard == nil {
		return deck.Card{}, ErrIllegalAction
	}
	card := *e.takenCard
	e.discardPile = append(e.discardPile, card)
	e.takenCard = nil
	e.turnState = TurnCardDiscarded
	return card, nil
}

// FinishTurn hands play to the next round player. Legal only after the
// turn holder has discarded.
func (e *Engine) FinishTurn(playerID string) error {
	if err := e.requireTurn(playerID); err != nil {
		return err
	}
	if e.turnState != TurnCardDiscarded {
		return ErrIllegalAction
	}
	e.incrementRoundPlayerTurnIdx()
	e.turnState = TurnNotStarted
	return nil
}

// CallGolf records the caller and starts the round's final lap: the
// round ends when the turn pointer comes back around to the caller.
// Calling golf takes the place of the caller's turn.
func (e *Engine) CallGolf(playerID string) error {
	if err := e.requireTurn(playerID); err != nil {
		return err
	}
	if e.roundState != RoundStarted || e.turnState != TurnNotStarted || e.golfCallerID != "" {
		return ErrIllegalAction
	}
	e.golfCallerID = playerID
	e.incrementRoundPlayerTurnIdx()
	e.turnState = TurnNotStarted
	return nil
}

func (e *Engine) incrementRoundPlayerTurnIdx() {
	e.roundPlayerTurnIdx = (e.roundPlayerTurnIdx + 1) % len(e.roundPlayerIDs)
}
