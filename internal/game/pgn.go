package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/kapu/chess-arena/internal/core"
)

// ExportMoveList renders the move history as numbered pairs,
// "1. e4 e5" per line.
func ExportMoveList(s *Session) string {
	var sb strings.Builder
	for i, m := range s.MoveHistory() {
		if i%2 == 0 {
			sb.WriteString(fmt.Sprintf("%d. ", i/2+1))
		}
		sb.WriteString(m.SAN())
		if i%2 == 1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

// ResultToken maps the session outcome to the PGN result field.
func ResultToken(s *Session) string {
	st := s.State()
	switch {
	case st == core.Checkmate || st == core.Resigned:
		if w, ok := s.Winner(); ok && w == core.White {
			return "1-0"
		}
		return "0-1"
	case st.Draw():
		return "1/2-1/2"
	}
	return "*"
}

// ExportPGN renders minimal PGN: Event/Date/White/Black/Result headers
// plus Termination when the game ended, then the numbered SAN move text.
func ExportPGN(s *Session, event, white, black string) string {
	var sb strings.Builder
	now := time.Now()
	result := ResultToken(s)

	sb.WriteString(fmt.Sprintf("[Event %q]\n", sanitizeTag(event)))
	sb.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", now.Year(), int(now.Month()), now.Day()))
	sb.WriteString(fmt.Sprintf("[White %q]\n", sanitizeTag(white)))
	sb.WriteString(fmt.Sprintf("[Black %q]\n", sanitizeTag(black)))
	if st := s.State(); st.Terminal() {
		sb.WriteString(fmt.Sprintf("[Termination %q]\n", st.String()))
	}
	sb.WriteString(fmt.Sprintf("[Result %q]\n\n", result))

	moves := s.MoveHistory()
	for i := 0; i < len(moves); i += 2 {
		sb.WriteString(fmt.Sprintf("%d. %s", i/2+1, moves[i].SAN()))
		if i+1 < len(moves) {
			sb.WriteByte(' ')
			sb.WriteString(moves[i+1].SAN())
		}
		sb.WriteByte(' ')
	}
	sb.WriteString(result)
	return sb.String()
}

func sanitizeTag(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
