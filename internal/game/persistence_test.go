package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/chess-arena/internal/core"
)

func TestSavePGN(t *testing.T) {
	sess := newStandardSession(t)
	play(t, sess, "f2f3", "e7e5", "g2g4", "d8h4")

	path := filepath.Join(t.TempDir(), "game.pgn")
	require.NoError(t, SavePGN(path, sess, "Club Match", "Alice", "Bob"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	pgn := string(raw)
	assert.Contains(t, pgn, `[Event "Club Match"]`)
	assert.Contains(t, pgn, `[Result "0-1"]`)
	assert.Contains(t, pgn, "1. f3 e5 2. g4 Qh4 0-1")

	assert.Error(t, SavePGN("", sess, "e", "w", "b"))
}

func TestSaveAndLoadFEN(t *testing.T) {
	sess := newStandardSession(t)
	play(t, sess, "e2e4", "c7c5")

	path := filepath.Join(t.TempDir(), "game.fen")
	require.NoError(t, SaveFEN(path, sess))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sess.FEN()+"\n", string(raw))

	loaded, err := LoadFEN(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sess.FEN(), loaded.FEN())
	assert.Equal(t, core.White, loaded.CurrentPlayer())

	assert.Error(t, SaveFEN("", sess))
}

func TestLoadFENRejectsBadFiles(t *testing.T) {
	_, err := LoadFEN(filepath.Join(t.TempDir(), "missing.fen"), nil)
	require.Error(t, err)

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.fen")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o644))
	_, err = LoadFEN(empty, nil)
	require.Error(t, err)

	junk := filepath.Join(dir, "junk.fen")
	require.NoError(t, os.WriteFile(junk, []byte("not a position\n"), 0o644))
	_, err = LoadFEN(junk, nil)
	require.Error(t, err)
}
