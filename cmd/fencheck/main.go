package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kapu/chess-arena/internal/core"
	"github.com/kapu/chess-arena/internal/game"
)

// fencheck validates FEN strings from argv (or stdin, one per line) and
// reports the side to move, game state, and legal-move count.
func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		exit := 0
		for _, fen := range args {
			if !check(fen) {
				exit = 1
			}
		}
		os.Exit(exit)
	}

	scanner := bufio.NewScanner(os.Stdin)
	exit := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !check(line) {
			exit = 1
		}
	}
	os.Exit(exit)
}

func check(fen string) bool {
	sess, err := game.NewBuilder().WithUndoEnabled(false).FromFEN(fen).Build()
	if err != nil {
		fmt.Printf("INVALID  %s\n         %v\n", fen, err)
		return false
	}

	var validator core.Validator
	count := 0
	sess.Board().Each(func(sq core.Square, p core.Piece) bool {
		if p.Color == sess.CurrentPlayer() {
			count += len(validator.LegalMoves(sess.Board(), sq, p.Color))
		}
		return true
	})
	fmt.Printf("OK       %s\n         side=%s state=%s legal_moves=%d\n",
		fen, sess.CurrentPlayer(), sess.State(), count)
	return true
}
