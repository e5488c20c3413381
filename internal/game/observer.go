package game

import (
	"github.com/kapu/chess-arena/internal/core"
)

// Observer receives session events. Observers are notified synchronously,
// in registration order, and must not mutate the session from a callback.
type Observer interface {
	OnMoveMade(m core.Move)
	OnMoveUndone(m core.Move)
	OnBoardChanged(b *core.Board)
	OnTurnChanged(side core.Color)
	OnGameStateChanged(state core.GameState, side core.Color)
	OnPieceCaptured(p core.Piece)
	OnLegalMovesCalculated(from core.Square, targets []core.Square)
}

// Events adapts plain funcs to Observer so callers can subscribe to only
// the events they care about. Nil funcs are skipped.
type Events struct {
	MoveMade             func(m core.Move)
	MoveUndone           func(m core.Move)
	BoardChanged         func(b *core.Board)
	TurnChanged          func(side core.Color)
	GameStateChanged     func(state core.GameState, side core.Color)
	PieceCaptured        func(p core.Piece)
	LegalMovesCalculated func(from core.Square, targets []core.Square)
}

func (e Events) OnMoveMade(m core.Move) {
	if e.MoveMade != nil {
		e.MoveMade(m)
	}
}

func (e Events) OnMoveUndone(m core.Move) {
	if e.MoveUndone != nil {
		e.MoveUndone(m)
	}
}

func (e Events) OnBoardChanged(b *core.Board) {
	if e.BoardChanged != nil {
		e.BoardChanged(b)
	}
}

func (e Events) OnTurnChanged(side core.Color) {
	if e.TurnChanged != nil {
		e.TurnChanged(side)
	}
}

func (e Events) OnGameStateChanged(state core.GameState, side core.Color) {
	if e.GameStateChanged != nil {
		e.GameStateChanged(state, side)
	}
}

func (e Events) OnPieceCaptured(p core.Piece) {
	if e.PieceCaptured != nil {
		e.PieceCaptured(p)
	}
}

func (e Events) OnLegalMovesCalculated(from core.Square, targets []core.Square) {
	if e.LegalMovesCalculated != nil {
		e.LegalMovesCalculated(from, targets)
	}
}
