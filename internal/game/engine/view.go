package engine

import (
	"encoding/json"

	"CardGolf/internal/game/deck"
)

// PlayerCard is one card slot as seen by a particular viewer: either
// the real card or an opaque facedown placeholder. It serializes as the
// card object or the string "facedown".
type PlayerCard struct {
	Card     *deck.Card
	FaceDown bool
}

func FaceDown() PlayerCard {
	return PlayerCard{FaceDown: true}
}

func FaceUp(c deck.Card) PlayerCard {
	return PlayerCard{Card: &c}
}

func (pc PlayerCard) MarshalJSON() ([]byte, error) {
	if pc.FaceDown {
		return json.Marshal("facedown")
	}
	return json.Marshal(pc.Card)
}

// PlayerView is a player record projected for one viewer, with the hand
// obscured according to the visibility rules.
type PlayerView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	LetterCount  int          `json:"letterCount"`
	RoundScore   *int         `json:"roundScore,omitempty"`
	IsGameReady  bool         `json:"isGameReady"`
	IsRoundReady bool         `json:"isRoundReady"`
	IsConnected  bool         `json:"isConnected"`
	Cards        []PlayerCard `json:"cards,omitempty"`
}

// State is the combined status payload broadcast to one player after
// every operation.
type State struct {
	Player            PlayerView   `json:"player"`
	Players           []PlayerView `json:"players"`
	GameState         GameState    `json:"gameState"`
	RoundState        RoundState   `json:"roundState"`
	TurnState         TurnState    `json:"turnState"`
	GameWord          string       `json:"gameWord"`
	PlayerTurnID      string       `json:"playerTurnId,omitempty"`
	DiscardPile       []deck.Card  `json:"discardPile"`
	DrawPileCardCount int          `json:"drawPileCardCount"`
	TakenCard         *deck.Card   `json:"takenCard,omitempty"`
	GolfCallerID      string       `json:"golfCallerId,omitempty"`
	GameWinnerID      string       `json:"gameWinnerId,omitempty"`
	RoundLoserIDs     []string     `json:"roundLoserIds,omitempty"`
}

func (e *Engine) projectPlayer(p *Player, cards []PlayerCard) PlayerView {
	return PlayerView{
		ID:           p.ID,
		Name:         p.Name,
		LetterCount:  p.LetterCount,
		RoundScore:   p.RoundScore,
		IsGameReady:  p.IsGameReady,
		IsRoundReady: p.IsRoundReady,
		IsConnected:  p.IsConnected,
		Cards:        cards,
	}
}

func faceDownHand(n int) []PlayerCard {
	hand := make([]PlayerCard, n)
	for i := range hand {
		hand[i] = FaceDown()
	}
	return hand
}

// ViewOfSelf projects the requesting player's own record. During play
// their whole hand is facedown; right after the deal the last two dealt
// cards (the peek slots) are revealed; otherwise the hand is open.
func (e *Engine) ViewOfSelf(playerID string) (PlayerView, error) {
	p, ok := e.players[playerID]
	if !ok {
		return PlayerView{}, ErrPlayerNotFound
	}

	var cards []PlayerCard
	if p.Cards != nil {
		switch e.roundState {
		case RoundStarted:
			cards = faceDownHand(len(p.Cards))
		case RoundCardsDealt:
			cards = e.peekHand(p)
		default:
			for _, c := range p.Cards {
				cards = append(cards, FaceUp(c))
			}
		}
	}
	return e.projectPlayer(p, cards), nil
}

func (e *Engine) peekHand(p *Player) []PlayerCard {
	cards := faceDownHand(len(p.Cards))
	for i := len(p.Cards) - 2; i < len(p.Cards); i++ {
		if i >= 0 {
			cards[i] = FaceUp(p.Cards[i])
		}
	}
	return cards
}

// ViewOfOthers projects every other seated player for the requester, in
// seating order starting just after the requester's seat. Their hands
// are fully facedown until the round is scored.
func (e *Engine) ViewOfOthers(playerID string) ([]PlayerView, error) {
	if _, ok := e.players[playerID]; !ok {
		return nil, ErrPlayerNotFound
	}

	selfIdx := indexOf(e.gamePlayerIDs, playerID)
	ordered := append([]string(nil), e.gamePlayerIDs[selfIdx+1:]...)
	ordered = append(ordered, e.gamePlayerIDs[:selfIdx]...)

	views := make([]PlayerView, 0, len(ordered))
	for _, id := range ordered {
		p := e.players[id]
		var cards []PlayerCard
		if p.Cards != nil {
			if e.roundState == RoundCardsDealt || e.roundState == RoundStarted {
				cards = faceDownHand(len(p.Cards))
			} else {
				for _, c := range p.Cards {
					cards = append(cards, FaceUp(c))
				}
			}
		}
		views = append(views, e.projectPlayer(p, cards))
	}
	return views, nil
}

// DealtCardsFor returns the freshly dealt hand as the round player is
// allowed to see it: first two slots hidden, peek slots open.
func (e *Engine) DealtCardsFor(playerID string) ([]PlayerCard, error) {
	if indexOf(e.roundPlayerIDs, playerID) < 0 {
		return nil, ErrPlayerNotFound
	}
	return e.peekHand(e.players[playerID]), nil
}

// StateFor assembles the full per-player status payload. The taken card
// is disclosed only to the player whose turn it is; the discard pile is
// public and the draw pile leaks only its size.
func (e *Engine) StateFor(playerID string) (*State, error) {
	self, err := e.ViewOfSelf(playerID)
	if err != nil {
		return nil, err
	}
	others, err := e.ViewOfOthers(playerID)
	if err != nil {
		return nil, err
	}

	var taken *deck.Card
	if e.takenCard != nil && playerID == e.PlayerTurnID() {
		c := *e.takenCard
		taken = &c
	}

	return &State{
		Player:            self,
		Players:           others,
		GameState:         e.gameState,
		RoundState:        e.roundState,
		TurnState:         e.turnState,
		GameWord:          e.gameWord,
		PlayerTurnID:      e.PlayerTurnID(),
		DiscardPile:       append([]deck.Card(nil), e.discardPile...),
		DrawPileCardCount: len(e.drawPile),
		TakenCard:         taken,
		GolfCallerID:      e.golfCallerID,
		GameWinnerID:      e.gameWinnerID,
		RoundLoserIDs:     append([]string(nil), e.roundLoserIDs...),
	}, nil
}
