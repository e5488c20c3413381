package arena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/chess-arena/internal/core"
	"github.com/kapu/chess-arena/internal/game"
	"github.com/kapu/chess-arena/internal/obslog"
)

// Manager keeps concurrent two-player matches in Redis. Each match is a
// JSON record keyed by ID; per-player index sets locate active games. The
// rules core is single-threaded per session, so every mutation runs under
// a WATCH on the match key for optimistic concurrency.
type Manager struct {
	rdb  *redis.Client
	repo *Repository
	ttl  time.Duration
}

var (
	errNotYourTurn = errors.New("not_your_turn")
	errIllegalMove = errors.New("illegal_move")

	// ErrMatchFinished reports a command against a match that already ended.
	ErrMatchFinished = errors.New("match no longer active")
)

func NewManager(redisURL string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis URL required for arena manager")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{rdb: rdb, ttl: ttl}, nil
}

func (m *Manager) Close() error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Close()
}

// AttachRepository wires a database repository for persisting final results.
func (m *Manager) AttachRepository(r *Repository) {
	if m != nil {
		m.repo = r
	}
}

// CreateMatch starts a match between two players, optionally from a FEN
// position instead of the standard setup.
func (m *Manager) CreateMatch(ctx context.Context, whiteID, whiteName, blackID, blackName, startFEN string) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, fmt.Errorf("arena manager not initialized")
	}
	if strings.TrimSpace(whiteID) == "" || strings.TrimSpace(blackID) == "" {
		return nil, fmt.Errorf("invalid participants")
	}

	sess, err := buildSession(startFEN, nil)
	if err != nil {
		return nil, err
	}

	match := &Match{
		ID:        uuid.NewString(),
		StartFEN:  strings.TrimSpace(startFEN),
		FEN:       sess.FEN(),
		Moves:     []string{},
		MovesSAN:  []string{},
		Turn:      sess.CurrentPlayer().String(),
		Status:    StatusActive,
		GameState: sess.State().String(),
		WhiteID:   strings.TrimSpace(whiteID),
		WhiteName: strings.TrimSpace(whiteName),
		BlackID:   strings.TrimSpace(blackID),
		BlackName: strings.TrimSpace(blackName),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := m.save(ctx, match); err != nil {
		return nil, err
	}
	if err := m.indexParticipants(ctx, match.ID, match.WhiteID, match.BlackID); err != nil {
		return nil, err
	}
	obslog.L().Info("arena_match_create",
		zap.String("match_id", match.ID),
		zap.String("white_id", match.WhiteID),
		zap.String("black_id", match.BlackID),
	)
	return match, nil
}

// Match returns a match by ID, or nil when absent.
func (m *Manager) Match(ctx context.Context, id string) (*Match, error) {
	return m.get(ctx, id)
}

// ActiveMatchByPlayer returns the most recently updated active match for
// a player, or nil.
func (m *Manager) ActiveMatchByPlayer(ctx context.Context, playerID string) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, fmt.Errorf("arena manager not initialized")
	}
	if strings.TrimSpace(playerID) == "" {
		return nil, nil
	}
	ids, err := m.rdb.SMembers(ctx, idxPlayerKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	var active []*Match
	for _, id := range ids {
		match, gerr := m.get(ctx, id)
		if gerr == nil && match != nil && match.Status == StatusActive {
			active = append(active, match)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	sort.Slice(active, func(i, j int) bool { return active[i].UpdatedAt.After(active[j].UpdatedAt) })
	return active[0], nil
}

// PlayMove applies a coordinate-notation move ("e2e4", "e7e8q") for the
// requesting player. Illegal or out-of-turn moves return a user-facing
// message and no error; concurrent updates are retried by the caller.
func (m *Manager) PlayMove(ctx context.Context, playerID, moveStr string) (*Match, string, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, "", fmt.Errorf("invalid player")
	}
	match, err := m.ActiveMatchByPlayer(ctx, playerID)
	if err != nil || match == nil {
		return nil, "", err
	}

	matchKey := matchKey(match.ID)
	oldLen := len(match.Moves)
	var resultText string

	err = m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, matchKey).Bytes()
		if err == redis.Nil {
			return fmt.Errorf("match not found")
		}
		if err != nil {
			return err
		}
		var cur Match
		if jerr := json.Unmarshal(raw, &cur); jerr != nil {
			return jerr
		}
		if cur.Status != StatusActive {
			return redis.TxFailedErr
		}
		if len(cur.Moves) != oldLen {
			return redis.TxFailedErr
		}

		side, ok := playerSide(&cur, playerID)
		if !ok {
			return fmt.Errorf("player not in match")
		}
		sess, err := buildSession(cur.StartFEN, cur.Moves)
		if err != nil {
			return err
		}
		if sess.CurrentPlayer() != side {
			return errNotYourTurn
		}

		from, to, promo, perr := core.ParseUCI(moveStr)
		if perr != nil {
			resultText = "unreadable move, use coordinates like e2e4"
			return errIllegalMove
		}
		var applied bool
		var san string
		if promo != nil {
			applied = sess.MakeMoveWithPromotion(from, to, *promo, side)
		} else {
			applied = sess.MakeMove(from, to, side)
		}
		if !applied {
			resultText = "illegal move"
			return errIllegalMove
		}
		history := sess.MoveHistory()
		last := history[len(history)-1]
		san = last.SAN()

		cur.Moves = append(cur.Moves, last.UCI())
		cur.MovesSAN = append(cur.MovesSAN, san)
		cur.FEN = sess.FEN()
		cur.Turn = sess.CurrentPlayer().String()
		cur.GameState = sess.State().String()
		cur.UpdatedAt = time.Now()
		applyOutcome(&cur, sess)

		pipe := tx.TxPipeline()
		newRaw, _ := json.Marshal(&cur)
		pipe.Set(ctx, matchKey, newRaw, m.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		match = &cur
		resultText = san
		return nil
	}, matchKey)

	if err != nil {
		switch {
		case errors.Is(err, redis.TxFailedErr):
			return match, "a concurrent command was detected, try again", nil
		case errors.Is(err, errIllegalMove):
			return match, resultText, nil
		case errors.Is(err, errNotYourTurn):
			return match, "it is your opponent's turn", nil
		}
		return nil, "", err
	}

	obslog.L().Info("arena_move",
		zap.String("match_id", match.ID),
		zap.String("player_id", strings.TrimSpace(playerID)),
		zap.String("san", resultText),
		zap.String("game_state", match.GameState),
		zap.String("status", string(match.Status)),
	)
	if match.Status != StatusActive {
		_ = m.persistIfFinal(ctx, match)
	}
	return match, resultText, nil
}

// Resign ends the player's active match in the opponent's favor.
func (m *Manager) Resign(ctx context.Context, playerID string) (*Match, error) {
	match, err := m.ActiveMatchByPlayer(ctx, playerID)
	if err != nil || match == nil {
		return nil, err
	}
	matchKey := matchKey(match.ID)
	err = m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, matchKey).Bytes()
		if err == redis.Nil {
			return fmt.Errorf("match not found")
		}
		if err != nil {
			return err
		}
		var cur Match
		if jerr := json.Unmarshal(raw, &cur); jerr != nil {
			return jerr
		}
		if cur.Status != StatusActive {
			return redis.TxFailedErr
		}
		cur.Status = StatusResigned
		cur.GameState = core.Resigned.String()
		cur.Winner = opponentID(&cur, playerID)
		cur.Outcome = "resignation"
		cur.UpdatedAt = time.Now()

		pipe := tx.TxPipeline()
		newRaw, _ := json.Marshal(&cur)
		pipe.Set(ctx, matchKey, newRaw, m.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		match = &cur
		return nil
	}, matchKey)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrMatchFinished
		}
		return nil, err
	}
	obslog.L().Info("arena_resign",
		zap.String("match_id", match.ID),
		zap.String("resigner", strings.TrimSpace(playerID)),
		zap.String("winner", match.Winner),
	)
	_ = m.persistIfFinal(ctx, match)
	return match, nil
}

// buildSession reconstructs a session from the start position plus the
// stored move list. Observers are not used here; the session is disposable.
func buildSession(startFEN string, moves []string) (*game.Session, error) {
	b := game.NewBuilder().WithUndoEnabled(false)
	if strings.TrimSpace(startFEN) != "" {
		b = b.FromFEN(startFEN)
	} else {
		b = b.WithStandardSetup()
	}
	sess, err := b.Build()
	if err != nil {
		return nil, err
	}
	for _, mv := range moves {
		from, to, promo, err := core.ParseUCI(mv)
		if err != nil {
			return nil, fmt.Errorf("stored move %q: %w", mv, err)
		}
		side := sess.CurrentPlayer()
		ok := false
		if promo != nil {
			ok = sess.MakeMoveWithPromotion(from, to, *promo, side)
		} else {
			ok = sess.MakeMove(from, to, side)
		}
		if !ok {
			return nil, fmt.Errorf("stored move %q no longer applies", mv)
		}
	}
	return sess, nil
}

func applyOutcome(match *Match, sess *game.Session) {
	st := sess.State()
	switch {
	case st == core.Checkmate:
		match.Status = StatusFinished
		match.Outcome = "checkmate"
		if w, ok := sess.Winner(); ok && w == core.White {
			match.Winner = match.WhiteID
		} else {
			match.Winner = match.BlackID
		}
	case st.Draw():
		match.Status = StatusDraw
		match.Outcome = st.String()
	}
}

func playerSide(match *Match, playerID string) (core.Color, bool) {
	switch playerID {
	case match.WhiteID:
		return core.White, true
	case match.BlackID:
		return core.Black, true
	}
	return core.White, false
}

func opponentID(match *Match, playerID string) string {
	if match.WhiteID == playerID {
		return match.BlackID
	}
	if match.BlackID == playerID {
		return match.WhiteID
	}
	return ""
}

func (m *Manager) save(ctx context.Context, match *Match) error {
	raw, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, matchKey(match.ID), raw, m.ttl).Err()
}

func (m *Manager) get(ctx context.Context, id string) (*Match, error) {
	raw, err := m.rdb.Get(ctx, matchKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var match Match
	if err := json.Unmarshal(raw, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (m *Manager) indexParticipants(ctx context.Context, id string, white, black string) error {
	for _, player := range []string{white, black} {
		if strings.TrimSpace(player) == "" {
			continue
		}
		key := idxPlayerKey(player)
		if err := m.rdb.SAdd(ctx, key, id).Err(); err != nil {
			return err
		}
		// Refresh the index TTL alongside the match TTL so stale IDs age out.
		_ = m.rdb.Expire(ctx, key, m.ttl).Err()
	}
	return nil
}

func (m *Manager) persistIfFinal(ctx context.Context, match *Match) error {
	if m == nil || m.repo == nil || match == nil || match.Status == StatusActive {
		return nil
	}
	if err := m.repo.SaveResult(ctx, match); err != nil {
		obslog.L().Error("arena_result_persist_error",
			zap.String("match_id", match.ID),
			zap.String("outcome", match.Outcome),
			zap.Error(err),
		)
		return err
	}
	obslog.L().Info("arena_result_persist",
		zap.String("match_id", match.ID),
		zap.String("outcome", match.Outcome),
	)
	return nil
}

func matchKey(id string) string { return "arena:match:" + strings.TrimSpace(id) }

func idxPlayerKey(id string) string { return "arena:index:player:" + strings.TrimSpace(id) }
