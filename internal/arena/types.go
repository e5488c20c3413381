package arena

import (
	"time"
)

// Status is the lifecycle state of a stored match.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
	StatusDraw     Status = "DRAW"
)

// Match is the persisted state of a two-player game. The move list is the
// source of truth; FEN is maintained for presentation and resumes.
type Match struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen,omitempty"`
	FEN       string    `json:"fen"`
	Moves     []string  `json:"moves"`
	MovesSAN  []string  `json:"moves_san"`
	Turn      string    `json:"turn"`
	Status    Status    `json:"status"`
	GameState string    `json:"game_state"`
	WhiteID   string    `json:"white_id"`
	WhiteName string    `json:"white_name"`
	BlackID   string    `json:"black_id"`
	BlackName string    `json:"black_name"`
	Winner    string    `json:"winner,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
