package engine

import "github.com/clutchchess/kfcore/pkg/board"

// Serializer is the consumer interface a storage layer implements to persist
// a finished game's Replay (as built by BuildReplay). Nothing in this module
// calls it; handing a Replay to a Serializer, and handling its error, is left
// to the host.
type Serializer interface {
	SaveReplay(r board.Replay) error
}

// BuildReplay assembles the append-only Replay record for a finished game.
// Entries are already tick-ordered because applyMove appends them in tick
// order; replay consumers rely on this.
func BuildReplay(g *board.GameState) board.Replay {
	return board.Replay{
		GameID:      g.GameID,
		Speed:       g.Speed,
		Variant:     g.Board.Variant,
		Players:     g.Players,
		Entries:     append([]board.ReplayEntry(nil), g.ReplayLog...),
		TotalTicks:  g.CurrentTick,
		Winner:      g.Winner,
		WinReason:   g.WinReason,
		CreatedUnix: g.CreatedUnix,
		BoardSetup:  g.BoardSetup,
	}
}
