package arena

import (
	"github.com/kapu/chess-arena/internal/core"
	"github.com/kapu/chess-arena/pkg/arenadto"
)

// Present converts a stored match into the outward DTO, deriving material
// and captured-piece summaries by replaying the move list.
func Present(match *Match) (*arenadto.MatchState, error) {
	if match == nil {
		return nil, nil
	}
	sess, err := buildSession(match.StartFEN, match.Moves)
	if err != nil {
		return nil, err
	}

	material := arenadto.MaterialScore{}
	sess.Board().Each(func(_ core.Square, p core.Piece) bool {
		if p.Color == core.White {
			material.White += p.Kind.Value()
		} else {
			material.Black += p.Kind.Value()
		}
		return true
	})

	captured := arenadto.CapturedPieces{}
	for _, p := range sess.CapturedPieces(core.White) {
		captured.White = append(captured.White, p.Kind.String())
	}
	for _, p := range sess.CapturedPieces(core.Black) {
		captured.Black = append(captured.Black, p.Kind.String())
	}

	winner := ""
	switch match.Winner {
	case match.WhiteID:
		winner = match.WhiteName
	case match.BlackID:
		winner = match.BlackName
	}

	return &arenadto.MatchState{
		MatchID:   match.ID,
		FEN:       match.FEN,
		Moves:     append([]string(nil), match.Moves...),
		MovesSAN:  append([]string(nil), match.MovesSAN...),
		Turn:      match.Turn,
		Status:    string(match.Status),
		GameState: match.GameState,
		WhiteName: match.WhiteName,
		BlackName: match.BlackName,
		Winner:    winner,
		Outcome:   match.Outcome,
		Material:  material,
		Captured:  captured,
		StartedAt: match.CreatedAt,
		UpdatedAt: match.UpdatedAt,
	}, nil
}

// PresentMove pairs the outcome text of one submitted move with the
// refreshed match snapshot. A nil match means the player has no active
// game, reported as a coded domain error.
func PresentMove(match *Match, text string) (*arenadto.MoveSummary, error) {
	if match == nil {
		return nil, arenadto.DomainError{Code: "no_active_match", Message: "no active match for that player"}
	}
	state, err := Present(match)
	if err != nil {
		return nil, err
	}
	summary := &arenadto.MoveSummary{
		State:    state,
		Finished: match.Status != StatusActive,
		Message:  text,
	}
	if n := len(match.Moves); n > 0 {
		summary.UCI = match.Moves[n-1]
		summary.SAN = match.MovesSAN[n-1]
	}
	return summary, nil
}
