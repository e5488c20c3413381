package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/chess-arena/internal/arena"
	"github.com/kapu/chess-arena/internal/config"
	"github.com/kapu/chess-arena/internal/obslog"
)

// arena-match hosts a Redis-backed match between two seats on one
// terminal. Unlike arena-cli it exercises the full match service:
// optimistic concurrency, stored move lists, and result persistence.
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

	mgr, err := arena.NewManager(cfg.RedisURL, time.Duration(cfg.MatchTTLSec)*time.Second)
	if err != nil {
		obslog.L().Error("arena manager init failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = mgr.Close() }()

	if cfg.DatabaseURL != "" {
		repo, err := arena.NewRepository(cfg.DatabaseURL)
		if err != nil {
			obslog.L().Error("repository init failed", zap.Error(err))
			os.Exit(1)
		}
		defer func() { _ = repo.Close() }()
		mgr.AttachRepository(repo)
	}

	ctx := context.Background()
	match, err := mgr.CreateMatch(ctx, "white", cfg.WhiteName, "black", cfg.BlackName, startFEN)
	if err != nil {
		obslog.L().Error("match create failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("match %s: %s vs %s\n", match.ID, cfg.WhiteName, cfg.BlackName)
	fmt.Println("commands: <seat> <move> (e.g. 'white e2e4'), state, resign <seat>, quit")

	repl(ctx, mgr, match.ID)
}

func repl(ctx context.Context, mgr *arena.Manager, matchID string) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "state":
			printState(ctx, mgr, matchID)
		case "resign":
			if len(fields) < 2 {
				fmt.Println("usage: resign <white|black>")
				continue
			}
			match, err := mgr.Resign(ctx, fields[1])
			if err != nil {
				fmt.Printf("resign failed: %v\n", err)
				continue
			}
			fmt.Printf("match %s: %s wins by resignation\n", match.ID, match.Winner)
			return
		case "white", "black":
			if len(fields) < 2 {
				fmt.Printf("usage: %s <move>\n", fields[0])
				continue
			}
			match, txt, err := mgr.PlayMove(ctx, fields[0], fields[1])
			if err != nil {
				fmt.Printf("move failed: %v\n", err)
				continue
			}
			summary, err := arena.PresentMove(match, txt)
			if err != nil {
				fmt.Println(err)
				return
			}
			fmt.Println(summary.Message)
			if summary.Finished {
				printState(ctx, mgr, matchID)
				fmt.Printf("match over: %s (%s)\n", summary.State.GameState, summary.State.Outcome)
				return
			}
		default:
			fmt.Println("unknown command, try: white e2e4 / state / resign black / quit")
		}
	}
}

func printState(ctx context.Context, mgr *arena.Manager, matchID string) {
	match, err := mgr.Match(ctx, matchID)
	if err != nil || match == nil {
		fmt.Printf("match lookup failed: %v\n", err)
		return
	}
	dto, err := arena.Present(match)
	if err != nil {
		fmt.Printf("present failed: %v\n", err)
		return
	}
	fmt.Printf("fen: %s\n", dto.FEN)
	fmt.Printf("turn: %s  state: %s  material: %+d\n", dto.Turn, dto.GameState, dto.Material.Diff())
	if len(dto.MovesSAN) > 0 {
		fmt.Printf("moves: %s\n", strings.Join(dto.MovesSAN, " "))
	}
	if len(dto.Captured.White) > 0 || len(dto.Captured.Black) > 0 {
		fmt.Printf("captured white: %s\n", strings.Join(dto.Captured.White, " "))
		fmt.Printf("captured black: %s\n", strings.Join(dto.Captured.Black, " "))
	}
}
