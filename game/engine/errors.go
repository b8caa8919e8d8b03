package engine

import "errors"

var (
	ErrEmptyDeck              = errors.New("deck is empty")
	ErrEmptyBoard             = errors.New("board is empty")
	ErrIllegalPlacement       = errors.New("tile does not match the board end")
	ErrIllegalMove            = errors.New("tile cannot be played on the board")
	ErrTileNotInHand          = errors.New("tile not in hand")
	ErrAmbiguousOrInvalidSide = errors.New("side is ambiguous or invalid for this tile")
	ErrActionOutOfTurn        = errors.New("action submitted out of turn")
	ErrActionAfterTermination = errors.New("game is already over")
	ErrPassNotAllowed         = errors.New("pass is only allowed with an empty deck and no playable tile")
	ErrGameInProgress         = errors.New("game is still in progress")
)
