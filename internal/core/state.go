package core

// GameState classifies a position from the perspective of the side to move.
// The Validator produces the first four values; the session layer widens the
// classification with clock- and history-based draws plus explicit endings.
type GameState int8

const (
	InProgress GameState = iota
	Check
	Checkmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMoves
	DrawByInsufficientMaterial
	DrawByAgreement
	Resigned
)

var stateNames = [...]string{
	"in_progress",
	"check",
	"checkmate",
	"stalemate",
	"draw_by_repetition",
	"draw_by_fifty_moves",
	"draw_by_insufficient_material",
	"draw_by_agreement",
	"resigned",
}

func (s GameState) String() string { return stateNames[s] }

// Terminal reports whether the game is over and further moves are rejected.
func (s GameState) Terminal() bool {
	switch s {
	case Checkmate, Stalemate, DrawByRepetition, DrawByFiftyMoves,
		DrawByInsufficientMaterial, DrawByAgreement, Resigned:
		return true
	}
	return false
}

// Draw reports whether the state is any of the draw outcomes.
func (s GameState) Draw() bool {
	switch s {
	case Stalemate, DrawByRepetition, DrawByFiftyMoves,
		DrawByInsufficientMaterial, DrawByAgreement:
		return true
	}
	return false
}
