package game

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// SavePGN writes the session's PGN export to path.
func SavePGN(path string, s *Session, event, white, black string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("save pgn: path required")
	}
	pgn := ExportPGN(s, event, white, black)
	if err := os.WriteFile(path, []byte(pgn+"\n"), 0o644); err != nil {
		return errors.Wrap(err, "save pgn")
	}
	return nil
}

// SaveFEN writes the current position to path, one FEN line.
func SaveFEN(path string, s *Session) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("save fen: path required")
	}
	if err := os.WriteFile(path, []byte(s.FEN()+"\n"), 0o644); err != nil {
		return errors.Wrap(err, "save fen")
	}
	return nil
}

// LoadFEN builds a session from a position file written by SaveFEN.
// Options other than the position (observers, undo) come from the builder.
func LoadFEN(path string, b *Builder) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load fen")
	}
	fen := strings.TrimSpace(string(raw))
	if fen == "" {
		return nil, errors.Errorf("load fen: %s is empty", path)
	}
	if b == nil {
		b = NewBuilder()
	}
	return b.FromFEN(fen).Build()
}
