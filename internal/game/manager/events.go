package manager

// Client -> server event vocabulary. Each event maps onto exactly one
// engine operation.
const (
	EventJoinGame         = "join-game"
	EventLeaveGame        = "leave-game"
	EventStartGame        = "start-game"
	EventResetGame        = "reset-game"
	EventDealNewRound     = "deal-new-round"
	EventKickPlayer       = "kick-player"
	EventChangeName       = "change-name"
	EventChangeGameWord   = "change-game-word"
	EventToggleGameReady  = "toggle-game-ready"
	EventToggleRoundReady = "toggle-round-ready"
	EventTakeDiscardPile  = "take-discard-pile"
	EventTakeDrawPile     = "take-draw-pile"
	EventSwapCard         = "swap-card"
	EventDiscardCard      = "discard-card"
	EventFinishTurn       = "finish-turn"
	EventCallGolf         = "call-golf"

	// synthesized from the hub's connection lifecycle
	eventConnectPlayer    = "connect-player"
	eventDisconnectPlayer = "disconnect-player"
)

// Server -> client events.
const (
	EvGameState          = "game-state"
	EvPlayerJoined       = "player-joined-game"
	EvPlayerRejoined     = "player-rejoined-game"
	EvPlayerDisconnected = "player-disconnected"
	EvPlayerLeft         = "player-left-game"
	EvGameStarted        = "game-started"
	EvCardsDealt         = "cards-dealt"
	EvRoundStarted       = "round-started"
	EvGameReset          = "game-reset"
	EvDiscardPileTaken   = "discard-pile-taken"
	EvDrawPileTaken      = "draw-pile-taken"
	EvCardTaken          = "card-taken"
	EvCardDiscarded      = "card-discarded"
	EvCardSwapped        = "card-swapped"
	EvTurnFinished       = "turn-finished"
	EvGolfCalled         = "golf-called"
	EvRoundFinished      = "round-finished"
	EvGameWordChanged    = "game-word-changed"
	EvNameChanged        = "player-name-changed"
	EvGameReadyChanged   = "player-game-ready-changed"
	EvRoundReadyChanged  = "player-round-ready-changed"
	EvError              = "error"
)
