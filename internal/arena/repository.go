package arena

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Repository persists final match results to Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a finished match.
func (r *Repository) SaveResult(ctx context.Context, match *Match) error {
	if r == nil || r.db == nil || match == nil {
		return nil
	}

	pgnResult := resultToken(match)
	pgn := buildPGN(match, pgnResult)
	movesRaw, _ := json.Marshal(match.Moves)
	movesSANRaw, _ := json.Marshal(match.MovesSAN)
	duration := match.UpdatedAt.Sub(match.CreatedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	q := `INSERT INTO arena_matches (
	    match_id, white_id, white_name, black_id, black_name,
	    result, outcome, game_state, moves, moves_san, pgn,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
	  ) ON CONFLICT (match_id) DO UPDATE SET
	    result=EXCLUDED.result,
	    outcome=EXCLUDED.outcome,
	    game_state=EXCLUDED.game_state,
	    moves=EXCLUDED.moves,
	    moves_san=EXCLUDED.moves_san,
	    pgn=EXCLUDED.pgn,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		match.ID,
		match.WhiteID, match.WhiteName,
		match.BlackID, match.BlackName,
		pgnResult, match.Outcome, match.GameState,
		string(movesRaw), string(movesSANRaw), pgn,
		match.CreatedAt, match.UpdatedAt, duration,
	)
	return err
}

func resultToken(match *Match) string {
	switch match.Status {
	case StatusFinished, StatusResigned:
		if match.Winner == match.WhiteID {
			return "1-0"
		}
		if match.Winner == match.BlackID {
			return "0-1"
		}
		return "*"
	case StatusDraw:
		return "1/2-1/2"
	}
	return "*"
}

func buildPGN(match *Match, pgnResult string) string {
	var b strings.Builder
	date := match.UpdatedAt
	if date.IsZero() {
		date = time.Now()
	}
	b.WriteString("[Event \"Arena Match\"]\n")
	b.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day()))
	b.WriteString(fmt.Sprintf("[White \"%s\"]\n", sanitizePGN(match.WhiteName)))
	b.WriteString(fmt.Sprintf("[Black \"%s\"]\n", sanitizePGN(match.BlackName)))
	if strings.TrimSpace(match.Outcome) != "" {
		b.WriteString(fmt.Sprintf("[Termination \"%s\"]\n", sanitizePGN(match.Outcome)))
	}
	b.WriteString(fmt.Sprintf("[Result \"%s\"]\n\n", pgnResult))

	for i := 0; i < len(match.MovesSAN); i += 2 {
		b.WriteString(fmt.Sprintf("%d. %s", i/2+1, strings.TrimSpace(match.MovesSAN[i])))
		if i+1 < len(match.MovesSAN) {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(match.MovesSAN[i+1]))
		}
		b.WriteString(" ")
	}
	b.WriteString(pgnResult)
	return b.String()
}

func sanitizePGN(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
