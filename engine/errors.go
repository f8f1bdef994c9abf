package engine

import "errors"

// Caller-input errors raised by scoring, discard evaluation and pegging.
var (
	ErrInvalidHandSize = errors.New("invalid hand size")
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrIllegalPlay     = errors.New("illegal play")
)

// State-machine errors.
var (
	ErrWrongPhase  = errors.New("action not allowed in current phase")
	ErrNotYourTurn = errors.New("not this player's turn")
	ErrMustPlay    = errors.New("player holds a legal play and cannot go")
	ErrGameOver    = errors.New("game is already over")
)
