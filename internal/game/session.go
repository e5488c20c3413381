package game

import (
	"strings"

	"github.com/kapu/chess-arena/internal/core"
)

// Session orchestrates one game: turn order, undo/redo history, the
// half-move clock, repetition tracking, captured-piece ledgers, and the
// overall game-state classification. It is single-threaded; embed behind
// one exclusive lock per session in a concurrent host.
type Session struct {
	board       *core.Board
	validator   core.Validator
	observers   []Observer
	undoEnabled bool

	currentPlayer core.Color
	state         core.GameState
	moveNumber    int
	halfMoveClock int
	winner        *core.Color

	undoStack     []historyEntry
	redoStack     []historyEntry
	repetition    []string
	capturedWhite []core.Piece
	capturedBlack []core.Piece
}

type historyEntry struct {
	record    core.Record
	prevClock int
}

// AddObserver registers an observer; it will be notified synchronously in
// registration order.
func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// MakeMove submits a move for the acting side. It returns false, mutating
// nothing, when the game is over, the actor is out of turn, or the move is
// illegal. Promotions default to Queen.
func (s *Session) MakeMove(from, to core.Square, actor core.Color) bool {
	return s.makeMove(from, to, nil, actor)
}

// MakeMoveWithPromotion is MakeMove with an explicit promotion choice,
// which overrides the Queen default when the move is a promotion.
func (s *Session) MakeMoveWithPromotion(from, to core.Square, promotion core.PieceKind, actor core.Color) bool {
	return s.makeMove(from, to, &promotion, actor)
}

func (s *Session) makeMove(from, to core.Square, promotion *core.PieceKind, actor core.Color) bool {
	if s.state.Terminal() {
		return false
	}
	if actor != s.currentPlayer {
		return false
	}
	if promotion != nil && !validPromotionKind(*promotion) {
		return false
	}

	move, ok := s.resolveMove(from, to)
	if !ok {
		return false
	}
	if move.IsPromotion() && promotion != nil {
		move = move.WithPromotion(*promotion)
	}

	prevClock := s.halfMoveClock
	rec := core.Apply(s.board, move)
	s.undoStack = append(s.undoStack, historyEntry{record: rec, prevClock: prevClock})
	s.redoStack = nil

	s.trackCapture(rec)
	s.advanceClock(move, rec)

	s.notifyMoveMade(move)
	s.notifyBoardChanged()

	s.currentPlayer = s.currentPlayer.Opposite()
	if s.currentPlayer == core.White {
		s.moveNumber++
	}
	s.notifyTurnChanged()

	s.repetition = append(s.repetition, s.fingerprint())
	s.updateState()
	return true
}

// validPromotionKind restricts promotion to the four replacement pieces;
// a pawn may never promote to a pawn or a second king.
func validPromotionKind(k core.PieceKind) bool {
	switch k {
	case core.Queen, core.Rook, core.Bishop, core.Knight:
		return true
	}
	return false
}

// resolveMove obtains the canonical Move for a from/to request. Castling
// is generated only on the king's legal-move list, so a two-square king
// request is matched against that list instead.
func (s *Session) resolveMove(from, to core.Square) (core.Move, bool) {
	if m, ok := s.validator.Validate(s.board, from, to, s.currentPlayer); ok {
		return m, true
	}
	if p, ok := s.board.PieceAt(from); ok && p.Kind == core.King {
		for _, m := range s.validator.LegalMoves(s.board, from, s.currentPlayer) {
			if m.IsCastle() && m.To == to {
				return m, true
			}
		}
	}
	return core.Move{}, false
}

// Undo reverts the last applied move. Returns false when undo is disabled,
// there is nothing to undo, or the game ended by declaration (a resignation
// or an agreed draw is not a board move and cannot be taken back).
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}

	if n := len(s.repetition); n > 0 {
		s.repetition = s.repetition[:n-1]
	}

	entry := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	core.Revert(s.board, entry.record)
	s.untrackCapture(entry.record)
	s.halfMoveClock = entry.prevClock
	s.redoStack = append(s.redoStack, entry)

	s.currentPlayer = s.currentPlayer.Opposite()
	if s.currentPlayer == core.Black {
		s.moveNumber--
	}
	s.winner = nil

	s.notifyMoveUndone(entry.record.Move)
	s.notifyBoardChanged()
	s.notifyTurnChanged()
	s.updateState()
	return true
}

// Redo re-applies the most recently undone move. The redo stack is
// populated only by Undo and cleared by any new move.
func (s *Session) Redo() bool {
	if !s.CanRedo() {
		return false
	}

	entry := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]

	move := entry.record.Move
	prevClock := s.halfMoveClock
	rec := core.Apply(s.board, move)
	s.undoStack = append(s.undoStack, historyEntry{record: rec, prevClock: prevClock})

	s.trackCapture(rec)
	s.advanceClock(move, rec)

	s.notifyMoveMade(move)
	s.notifyBoardChanged()

	s.currentPlayer = s.currentPlayer.Opposite()
	if s.currentPlayer == core.White {
		s.moveNumber++
	}
	s.notifyTurnChanged()

	s.repetition = append(s.repetition, s.fingerprint())
	s.updateState()
	return true
}

// LegalMoves returns the legal moves for the piece on from, for the side
// to move.
func (s *Session) LegalMoves(from core.Square) []core.Move {
	return s.validator.LegalMoves(s.board, from, s.currentPlayer)
}

// LegalTargets returns legal destination squares for UI highlighting and
// emits a legal-moves-calculated event.
func (s *Session) LegalTargets(from core.Square) []core.Square {
	moves := s.LegalMoves(from)
	targets := make([]core.Square, 0, len(moves))
	for _, m := range moves {
		targets = append(targets, m.To)
	}
	for _, o := range s.observers {
		o.OnLegalMovesCalculated(from, targets)
	}
	return targets
}

// Resign ends the game in favor of the opponent.
func (s *Session) Resign(actor core.Color) bool {
	if s.state.Terminal() {
		return false
	}
	w := actor.Opposite()
	s.winner = &w
	s.state = core.Resigned
	s.notifyGameStateChanged()
	return true
}

// AgreeDraw ends the game as a draw by agreement.
func (s *Session) AgreeDraw() bool {
	if s.state.Terminal() {
		return false
	}
	s.state = core.DrawByAgreement
	s.notifyGameStateChanged()
	return true
}

func (s *Session) trackCapture(rec core.Record) {
	if rec.Captured == nil {
		return
	}
	if rec.Captured.Color == core.White {
		s.capturedWhite = append(s.capturedWhite, *rec.Captured)
	} else {
		s.capturedBlack = append(s.capturedBlack, *rec.Captured)
	}
	for _, o := range s.observers {
		o.OnPieceCaptured(*rec.Captured)
	}
}

func (s *Session) untrackCapture(rec core.Record) {
	if rec.Captured == nil {
		return
	}
	if rec.Captured.Color == core.White {
		if n := len(s.capturedWhite); n > 0 {
			s.capturedWhite = s.capturedWhite[:n-1]
		}
	} else {
		if n := len(s.capturedBlack); n > 0 {
			s.capturedBlack = s.capturedBlack[:n-1]
		}
	}
}

// advanceClock resets the half-move clock on pawn moves and captures,
// otherwise increments it.
func (s *Session) advanceClock(move core.Move, rec core.Record) {
	if move.Piece.Kind == core.Pawn || rec.Captured != nil {
		s.halfMoveClock = 0
	} else {
		s.halfMoveClock++
	}
}

// updateState reclassifies the game: the validator's base result, widened
// by the fifty-move clock, threefold repetition, and insufficient material,
// in that order.
func (s *Session) updateState() {
	st := s.validator.Status(s.board, s.currentPlayer)
	if st == core.Checkmate {
		w := s.currentPlayer.Opposite()
		s.winner = &w
	}
	if st != core.Checkmate && st != core.Stalemate {
		switch {
		case s.halfMoveClock >= 100:
			st = core.DrawByFiftyMoves
		case s.hasThreefoldRepetition():
			st = core.DrawByRepetition
		case s.hasInsufficientMaterial():
			st = core.DrawByInsufficientMaterial
		}
	}
	s.state = st
	s.notifyGameStateChanged()
}

// fingerprint canonically encodes piece placement, side to move, castling
// rights, and the en-passant target. Move counters are excluded: two
// positions are the same for repetition purposes iff these four match.
func (s *Session) fingerprint() string {
	var sb strings.Builder
	sb.WriteString(s.currentPlayer.String())
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p, ok := s.board.PieceAt(core.Sq(file, rank)); ok {
				sb.WriteByte(p.FENChar())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	sb.WriteByte('|')
	sb.WriteString(core.CastlingRights(s.board))
	sb.WriteByte('|')
	if ep, ok := s.board.EnPassantTarget(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func (s *Session) hasThreefoldRepetition() bool {
	if len(s.repetition) == 0 {
		return false
	}
	last := s.repetition[len(s.repetition)-1]
	count := 0
	for _, fp := range s.repetition {
		if fp == last {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// hasInsufficientMaterial applies the draw table: any pawn, rook, or queen
// means sufficient; otherwise kings only, a single minor, two knights, or
// two bishops confined to same-colored squares are dead positions.
func (s *Session) hasInsufficientMaterial() bool {
	bishops, knights := 0, 0
	sufficient := false
	var bishopSquareParity []int
	s.board.Each(func(sq core.Square, p core.Piece) bool {
		switch p.Kind {
		case core.Pawn, core.Rook, core.Queen:
			sufficient = true
			return false
		case core.Bishop:
			bishops++
			bishopSquareParity = append(bishopSquareParity, (sq.File+sq.Rank)%2)
		case core.Knight:
			knights++
		}
		return true
	})
	if sufficient {
		return false
	}

	minors := bishops + knights
	switch {
	case minors <= 1:
		return true
	case minors == 2 && knights == 2:
		return true
	case minors == 2 && bishops == 2:
		return bishopSquareParity[0] == bishopSquareParity[1]
	}
	return false
}

// Accessors

// Board returns the live board. Callers must treat it as read-only; all
// mutation goes through MakeMove/Undo/Redo.
func (s *Session) Board() *core.Board { return s.board }

func (s *Session) CurrentPlayer() core.Color { return s.currentPlayer }
func (s *Session) State() core.GameState     { return s.state }
func (s *Session) MoveNumber() int           { return s.moveNumber }
func (s *Session) HalfMoveClock() int        { return s.halfMoveClock }

// Winner reports the winning side for decisive endings (checkmate or
// resignation).
func (s *Session) Winner() (core.Color, bool) {
	if s.winner == nil {
		return core.White, false
	}
	return *s.winner, true
}

// CanUndo and CanRedo exclude declared endings: those states are not
// produced by a board move, so history navigation would misrepresent them.
func (s *Session) CanUndo() bool {
	return s.undoEnabled && len(s.undoStack) > 0 && !s.endedByDeclaration()
}

func (s *Session) CanRedo() bool {
	return s.undoEnabled && len(s.redoStack) > 0 && !s.endedByDeclaration()
}

func (s *Session) endedByDeclaration() bool {
	return s.state == core.Resigned || s.state == core.DrawByAgreement
}

// CapturedPieces returns the ledger of captured pieces of the given color,
// in capture order.
func (s *Session) CapturedPieces(c core.Color) []core.Piece {
	src := s.capturedBlack
	if c == core.White {
		src = s.capturedWhite
	}
	out := make([]core.Piece, len(src))
	copy(out, src)
	return out
}

// MoveHistory returns the applied moves in order.
func (s *Session) MoveHistory() []core.Move {
	out := make([]core.Move, 0, len(s.undoStack))
	for _, e := range s.undoStack {
		out = append(out, e.record.Move)
	}
	return out
}

// FEN encodes the current position.
func (s *Session) FEN() string {
	return core.BoardToFEN(s.board, s.currentPlayer, s.halfMoveClock, s.moveNumber)
}

// Notification helpers. Synchronous, registration order.

func (s *Session) notifyMoveMade(m core.Move) {
	for _, o := range s.observers {
		o.OnMoveMade(m)
	}
}

func (s *Session) notifyMoveUndone(m core.Move) {
	for _, o := range s.observers {
		o.OnMoveUndone(m)
	}
}

func (s *Session) notifyBoardChanged() {
	for _, o := range s.observers {
		o.OnBoardChanged(s.board)
	}
}

func (s *Session) notifyTurnChanged() {
	for _, o := range s.observers {
		o.OnTurnChanged(s.currentPlayer)
	}
}

func (s *Session) notifyGameStateChanged() {
	for _, o := range s.observers {
		o.OnGameStateChanged(s.state, s.currentPlayer)
	}
}
