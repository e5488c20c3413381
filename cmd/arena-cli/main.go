package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/chess-arena/internal/config"
	"github.com/kapu/chess-arena/internal/core"
	"github.com/kapu/chess-arena/internal/game"
	"github.com/kapu/chess-arena/internal/obslog"
	"github.com/kapu/chess-arena/internal/render"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config")
	fen := flag.String("fen", "", "starting position in FEN (overrides config)")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = obslog.L().Sync() }()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		obslog.L().Error("config load failed", zap.Error(err))
		os.Exit(1)
	}
	startFEN := cfg.StartFEN
	if strings.TrimSpace(*fen) != "" {
		startFEN = strings.TrimSpace(*fen)
	}

	sess, err := buildSession(cfg, startFEN)
	if err != nil {
		obslog.L().Error("session build failed", zap.Error(err))
		os.Exit(1)
	}

	obslog.L().Info("arena_cli_start",
		zap.String("white", cfg.WhiteName),
		zap.String("black", cfg.BlackName),
		zap.Bool("undo_enabled", cfg.UndoEnabled),
	)

	fmt.Println(sess.Board())
	fmt.Printf("%s to move. Type 'help' for commands.\n", sess.CurrentPlayer())
	repl(sess, cfg)
}

func buildSession(cfg *config.AppConfig, startFEN string) (*game.Session, error) {
	b := newSessionBuilder(cfg)
	if startFEN != "" {
		b = b.FromFEN(startFEN)
	} else {
		b = b.WithStandardSetup()
	}
	return b.Build()
}

func newSessionBuilder(cfg *config.AppConfig) *game.Builder {
	return game.NewBuilder().
		WithUndoEnabled(cfg.UndoEnabled).
		WithObserver(game.Events{
			MoveMade: func(m core.Move) {
				fmt.Printf("  played %s (%s -> %s)\n", m.SAN(), m.From, m.To)
			},
			MoveUndone: func(m core.Move) {
				fmt.Printf("  undone %s\n", m.SAN())
			},
			PieceCaptured: func(p core.Piece) {
				fmt.Printf("  captured %s %s\n", p.Color, p.Kind)
			},
			GameStateChanged: func(st core.GameState, side core.Color) {
				if st != core.InProgress {
					fmt.Printf("  state: %s (%s to move)\n", st, side)
				}
			},
		})
}

func repl(sess *game.Session, cfg *config.AppConfig) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if sess.State().Terminal() {
			fmt.Printf("game over: %s\n", sess.State())
			if w, ok := sess.Winner(); ok {
				fmt.Printf("winner: %s\n", w)
			}
			fmt.Println(game.ExportPGN(sess, cfg.EventName, cfg.WhiteName, cfg.BlackName))
			return
		}
		fmt.Printf("%s> ", sess.CurrentPlayer())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "board":
			fmt.Println(sess.Board())
		case "fen":
			fmt.Println(sess.FEN())
		case "pgn":
			fmt.Println(game.ExportPGN(sess, cfg.EventName, cfg.WhiteName, cfg.BlackName))
		case "history":
			fmt.Println(game.ExportMoveList(sess))
		case "undo":
			if !sess.Undo() {
				fmt.Println("nothing to undo")
			}
		case "redo":
			if !sess.Redo() {
				fmt.Println("nothing to redo")
			}
		case "resign":
			sess.Resign(sess.CurrentPlayer())
		case "draw":
			sess.AgreeDraw()
		case "moves":
			if len(fields) < 2 {
				fmt.Println("usage: moves <square>")
				continue
			}
			showMoves(sess, fields[1])
		case "save":
			if len(fields) < 2 {
				fmt.Println("usage: save <file>")
				continue
			}
			saveGame(sess, cfg, fields[1])
		case "load":
			if len(fields) < 2 {
				fmt.Println("usage: load <file.fen>")
				continue
			}
			loaded, err := game.LoadFEN(fields[1], newSessionBuilder(cfg))
			if err != nil {
				fmt.Printf("load failed: %v\n", err)
				continue
			}
			sess = loaded
			fmt.Println(sess.Board())
		case "render":
			if len(fields) < 2 {
				fmt.Println("usage: render <file.png>")
				continue
			}
			renderBoard(sess, fields[1])
		default:
			playMove(sess, line)
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  e2e4, e7e8q      play a move in coordinate notation
  moves <square>   list legal moves for the piece on a square
  board fen pgn    show the position
  history          show the move list
  undo redo        take back / replay a move
  resign draw      end the game
  save <file>      write the game as PGN, or the position when <file> ends in .fen
  load <file.fen>  restart from a saved position
  render <file>    save the board as a PNG
  quit`)
}

func saveGame(sess *game.Session, cfg *config.AppConfig, path string) {
	var err error
	if strings.HasSuffix(path, ".fen") {
		err = game.SaveFEN(path, sess)
	} else {
		err = game.SavePGN(path, sess, cfg.EventName, cfg.WhiteName, cfg.BlackName)
	}
	if err != nil {
		fmt.Printf("save failed: %v\n", err)
		return
	}
	fmt.Printf("saved %s\n", path)
}

func playMove(sess *game.Session, text string) {
	from, to, promo, err := core.ParseUCI(text)
	if err != nil {
		fmt.Printf("unreadable move %q (try e2e4, or 'help')\n", text)
		return
	}
	side := sess.CurrentPlayer()
	var ok bool
	if promo != nil {
		ok = sess.MakeMoveWithPromotion(from, to, *promo, side)
	} else {
		ok = sess.MakeMove(from, to, side)
	}
	if !ok {
		fmt.Println("illegal move")
		return
	}
	fmt.Println(sess.Board())
}

func showMoves(sess *game.Session, square string) {
	sq, err := core.ParseSquare(square)
	if err != nil {
		fmt.Printf("bad square %q\n", square)
		return
	}
	targets := sess.LegalTargets(sq)
	if len(targets) == 0 {
		fmt.Println("no legal moves")
		return
	}
	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		parts = append(parts, t.String())
	}
	fmt.Println(strings.Join(parts, " "))
}

func renderBoard(sess *game.Session, path string) {
	var highlight *core.Move
	if history := sess.MoveHistory(); len(history) > 0 {
		m := history[len(history)-1]
		highlight = &m
	}
	png, err := render.NewBoardRenderer().RenderPNG(context.Background(), sess.Board(), render.Options{
		Highlight: highlight,
		Flipped:   sess.CurrentPlayer() == core.Black,
	})
	if err != nil {
		fmt.Printf("render failed: %v\n", err)
		return
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		fmt.Printf("write %s: %v\n", path, err)
		return
	}
	fmt.Printf("saved %s\n", path)
}
