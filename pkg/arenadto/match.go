package arenadto

import "time"

// MaterialScore is the remaining material value per side.
type MaterialScore struct {
	White int
	Black int
}

func (m MaterialScore) Diff() int { return m.White - m.Black }

// CapturedPieces lists captured piece names per captured color, in
// capture order.
type CapturedPieces struct {
	White []string
	Black []string
}

// MatchState is the outward snapshot of a stored match.
type MatchState struct {
	MatchID   string
	FEN       string
	Moves     []string
	MovesSAN  []string
	Turn      string
	Status    string
	GameState string
	WhiteName string
	BlackName string
	Winner    string
	Outcome   string
	Material  MaterialScore
	Captured  CapturedPieces
	StartedAt time.Time
	UpdatedAt time.Time
}

// MoveSummary reports the result of one submitted move.
type MoveSummary struct {
	State    *MatchState
	SAN      string
	UCI      string
	Finished bool
	Message  string
}
