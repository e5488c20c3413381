package game

import (
	"github.com/pkg/errors"

	"github.com/kapu/chess-arena/internal/core"
)

// Builder assembles a Session. Defaults: standard setup, White to move,
// undo enabled.
type Builder struct {
	board      *core.Board
	starting   core.Color
	undo       bool
	observers  []Observer
	fen        string
	moveNumber int
	halfClock  int
}

func NewBuilder() *Builder {
	return &Builder{starting: core.White, undo: true, moveNumber: 1}
}

// WithBoard supplies a custom starting board.
func (b *Builder) WithBoard(board *core.Board) *Builder {
	b.board = board
	return b
}

// WithStandardSetup uses the standard starting position.
func (b *Builder) WithStandardSetup() *Builder {
	b.board = core.StandardSetup()
	return b
}

// WithStartingPlayer sets which side moves first.
func (b *Builder) WithStartingPlayer(c core.Color) *Builder {
	b.starting = c
	return b
}

// WithUndoEnabled enables or disables undo/redo for the session.
func (b *Builder) WithUndoEnabled(enabled bool) *Builder {
	b.undo = enabled
	return b
}

// WithObserver registers an observer before the first event fires.
func (b *Builder) WithObserver(o Observer) *Builder {
	b.observers = append(b.observers, o)
	return b
}

// FromFEN loads the starting position, side to move, and counters from a
// FEN string. Parse failures surface from Build; prior arguments for the
// board and starting player are overridden.
func (b *Builder) FromFEN(fen string) *Builder {
	b.fen = fen
	return b
}

// Build constructs the session and seeds the repetition history with the
// starting position.
func (b *Builder) Build() (*Session, error) {
	board := b.board
	starting := b.starting
	moveNumber := b.moveNumber
	halfClock := b.halfClock

	if b.fen != "" {
		parsed, side, clock, number, err := core.ParseFEN(b.fen)
		if err != nil {
			return nil, errors.Wrap(err, "build session")
		}
		board = parsed
		starting = side
		halfClock = clock
		moveNumber = number
	}
	if board == nil {
		board = core.StandardSetup()
	}
	if _, err := board.KingSquare(core.White); err != nil {
		return nil, errors.Wrap(err, "build session")
	}
	if _, err := board.KingSquare(core.Black); err != nil {
		return nil, errors.Wrap(err, "build session")
	}

	s := &Session{
		board:         board,
		undoEnabled:   b.undo,
		currentPlayer: starting,
		state:         core.InProgress,
		moveNumber:    moveNumber,
		halfMoveClock: halfClock,
		observers:     append([]Observer(nil), b.observers...),
	}
	s.repetition = append(s.repetition, s.fingerprint())
	s.updateState()
	return s, nil
}
