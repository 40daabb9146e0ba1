// Command kungfu runs a local Kung Fu Chess game between two AI-controlled
// players for demonstration and manual testing, in the idiom of morlock's
// console driver: a stdin line reader for "quit", and periodic board
// snapshots written to stdout as the tick loop runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/logw"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/board/boardtext"
	"github.com/clutchchess/kfcore/pkg/config"
	"github.com/clutchchess/kfcore/pkg/engine"
)

var (
	speedName   = flag.String("speed", "standard", "speed profile: standard or lightning")
	level1      = flag.Int("level1", 2, "AI level (1-3) for player 1")
	level2      = flag.Int("level2", 2, "AI level (1-3) for player 2")
	printEveryN = flag.Int("print-every", 30, "print a board snapshot every N ticks")
	configPath  = flag.String("config", "", "optional TOML config file overlay")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kungfu [options]

kungfu runs a local two-AI Kung Fu Chess game to completion, printing board
snapshots as it plays. Type "quit" and press enter to stop early.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	config.Load(ctx, *configPath)

	speed, ok := board.ParseSpeedProfile(*speedName)
	if !ok {
		logw.Exitf(ctx, "Unknown speed profile %q", *speedName)
	}

	controllers := map[board.Player]board.Controller{
		board.Player1: board.AIController(clampLevel(*level1)),
		board.Player2: board.AIController(clampLevel(*level2)),
	}

	registry := engine.NewGameRegistry(4)
	defer registry.Close()

	gameID, _, err := registry.Create(ctx, speed, board.TwoPlayer, controllers)
	if err != nil {
		logw.Exitf(ctx, "Failed to create game: %v", err)
	}

	e, _ := registry.Lookup(gameID)
	logw.Infof(ctx, "Created game %v (speed=%v)", gameID, speed.Name)

	// Both seats are AI-controlled; marking one ready auto-readies the other
	// and starts the game immediately.
	e.MarkReady(ctx, board.Player1)

	in := engine.ReadStdinLines(ctx)
	quit := make(chan struct{})
	go func() {
		for line := range in {
			if line == "quit" {
				close(quit)
				return
			}
		}
	}()

	out := make(chan string, 1)
	go engine.WriteStdoutLines(ctx, out)
	defer close(out)

	runAndWatch(ctx, e, quit, out)
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}

// runAndWatch polls the hosted game's snapshot at a human-readable cadence
// until it finishes or the user types "quit", pushing formatted lines onto
// out (drained by engine.WriteStdoutLines); GameRegistry's own background
// loop drives the ticks and AI seats, this just observes and reports.
func runAndWatch(ctx context.Context, e *engine.Engine, quit <-chan struct{}, out chan<- string) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var lastPrinted int64 = -1
	for {
		select {
		case <-quit:
			logw.Infof(ctx, "Stopped by user")
			return
		case <-ticker.C:
		}

		s := e.State()
		if s.CurrentTick/int64(*printEveryN) != lastPrinted {
			lastPrinted = s.CurrentTick / int64(*printEveryN)
			out <- fmt.Sprintf("-- tick %d --\n%v", s.CurrentTick, boardtext.Encode(s.Board))
		}

		if s.Status == board.Finished {
			out <- fmt.Sprintf("game over: winner=%v reason=%v ticks=%d", s.Winner, s.WinReason, s.CurrentTick)
			return
		}
	}
}
