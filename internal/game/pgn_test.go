package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/chess-arena/internal/core"
)

func TestExportMoveList(t *testing.T) {
	sess := newStandardSession(t)
	play(t, sess, "e2e4", "e7e5", "g1f3")
	assert.Equal(t, "1. e4 e5\n2. Nf3", ExportMoveList(sess))
}

func TestResultToken(t *testing.T) {
	sess := newStandardSession(t)
	assert.Equal(t, "*", ResultToken(sess))

	play(t, sess, "f2f3", "e7e5", "g2g4", "d8h4")
	assert.Equal(t, "0-1", ResultToken(sess))

	drawn := newStandardSession(t)
	require.True(t, drawn.AgreeDraw())
	assert.Equal(t, "1/2-1/2", ResultToken(drawn))

	resigned := newStandardSession(t)
	require.True(t, resigned.Resign(core.Black))
	assert.Equal(t, "1-0", ResultToken(resigned))
}

func TestExportPGN(t *testing.T) {
	sess := newStandardSession(t)
	play(t, sess, "f2f3", "e7e5", "g2g4", "d8h4")

	pgn := ExportPGN(sess, "Club Match", "Alice", "Bob")
	assert.Contains(t, pgn, `[Event "Club Match"]`)
	assert.Contains(t, pgn, `[White "Alice"]`)
	assert.Contains(t, pgn, `[Black "Bob"]`)
	assert.Contains(t, pgn, `[Termination "checkmate"]`)
	assert.Contains(t, pgn, `[Result "0-1"]`)
	assert.Contains(t, pgn, "1. f3 e5 2. g4 Qh4 0-1")
}

func TestExportPGNSanitizesTags(t *testing.T) {
	sess := newStandardSession(t)
	pgn := ExportPGN(sess, `Friendly "blitz"`, "  Alice  ", "Bob\\")
	assert.Contains(t, pgn, `[Event "Friendly 'blitz'"]`)
	assert.Contains(t, pgn, `[White "Alice"]`)
	assert.NotContains(t, pgn, "\\")
}
