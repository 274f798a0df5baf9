package engine

import "errors"

var (
	// ErrIllegalAction rejects an operation the current game/round/turn
	// state does not permit. State is never mutated on rejection.
	ErrIllegalAction = errors.New("action not allowed in current state")
	// ErrNotPlayerTurn rejects a turn-scoped action from anyone but the
	// turn holder.
	ErrNotPlayerTurn  = errors.New("not player's turn")
	ErrPlayerExists   = errors.New("player already in game")
	ErrPlayerNotFound = errors.New("player not in game")
	ErrPileEmpty      = errors.New("pile is empty")
	ErrBadCardIndex   = errors.New("card index out of range")
)
