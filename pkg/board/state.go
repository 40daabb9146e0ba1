package board

import (
	"fmt"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Status is the lifecycle stage of a GameState.
type Status uint8

const (
	Waiting Status = iota
	Playing
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Playing:
		return "PLAYING"
	case Finished:
		return "FINISHED"
	default:
		return "?"
	}
}

// Controller identifies who drives a seat: a human client or an AI pipeline
// at a given level.
type Controller struct {
	Human bool
	Level int // meaningful only when !Human; 1-3
	Ident string

	// TimeBudget, if set, overrides the AI's per-level think-delay range for
	// this seat with a fixed delay. Unset means use the configured default.
	TimeBudget lang.Optional[time.Duration]
}

func HumanController(ident string) Controller {
	return Controller{Human: true, Ident: ident}
}

func AIController(level int) Controller {
	return Controller{Human: false, Level: level, Ident: fmt.Sprintf("bot:%d", level)}
}

// AIControllerWithTimeBudget is an AIController whose think-delay is pinned
// to budget instead of drawn from the level's configured random range, for
// callers that need a predictable per-seat response time (e.g. a timed
// exhibition game).
func AIControllerWithTimeBudget(level int, budget time.Duration) Controller {
	c := AIController(level)
	c.TimeBudget = lang.Some(budget)
	return c
}

func (c Controller) String() string {
	if c.Human {
		return c.Ident
	}
	return c.Ident
}

// ReplayEntry records one move-initiation for post-game reconstruction.
type ReplayEntry struct {
	Tick    int64
	PieceID string
	ToRow   int
	ToCol   int
	Player  Player
}

// Replay is the ordered, append-only move-initiation log of a finished game,
// plus enough metadata to recreate and narrate it without the live GameState.
type Replay struct {
	GameID      string
	Speed       SpeedProfile
	Variant     Variant
	Players     map[Player]string
	Entries     []ReplayEntry
	TotalTicks  int64
	Winner      Player
	WinReason   string
	CreatedUnix int64
	BoardSetup  string // textual setup, set only for createGameFromBoard games
}

// GameState is the single mutable source of truth for one game: identity,
// board, speed, player roster, lifecycle status, the tick clock, and the
// active Moves/Cooldowns. It is owned exclusively by one Engine and must
// never be shared or mutated concurrently; callers read it through
// value-copied snapshots between ticks.
type GameState struct {
	GameID      string
	Board       *Board
	Speed       SpeedProfile
	Players     map[Player]string    // player number -> opaque player id
	Controllers map[Player]Controller // player number -> human/AI seat driver

	Status      Status
	Ready       map[Player]bool
	CurrentTick int64

	Moves     []Move
	Cooldowns []Cooldown
	ReplayLog []ReplayEntry

	LastMoveTick    int64
	LastCaptureTick int64

	Winner    Player // NoPlayer until FINISHED
	WinReason string

	BoardSetup string // non-empty iff created via createGameFromBoard
	DrawOffers map[Player]bool

	CreatedUnix int64
}

// NewGameState constructs a fresh WAITING game over the given board.
func NewGameState(gameID string, b *Board, speed SpeedProfile, players map[Player]string, controllers map[Player]Controller, createdUnix int64) *GameState {
	return &GameState{
		GameID:      gameID,
		Board:       b,
		Speed:       speed,
		Players:     players,
		Controllers: controllers,
		Status:      Waiting,
		Ready:       map[Player]bool{},
		DrawOffers:  map[Player]bool{},
		CreatedUnix: createdUnix,
	}
}

// FindMove returns the active Move for a piece id, if any.
func (g *GameState) FindMove(pieceID string) (Move, bool) {
	for _, m := range g.Moves {
		if m.PieceID == pieceID {
			return m, true
		}
	}
	return Move{}, false
}

// FindCooldown returns the active Cooldown for a piece id, if any.
func (g *GameState) FindCooldown(pieceID string) (Cooldown, bool) {
	for _, c := range g.Cooldowns {
		if c.PieceID == pieceID {
			return c, true
		}
	}
	return Cooldown{}, false
}

// LivingPlayers returns the players whose king is uncaptured.
func (g *GameState) LivingPlayers() []Player {
	var ret []Player
	for p := range g.Players {
		if k := g.Board.GetKing(p); k != nil && !k.Captured {
			ret = append(ret, p)
		}
	}
	return ret
}

func (g *GameState) String() string {
	return fmt.Sprintf("game{%v, status=%v, tick=%v, moves=%d, cooldowns=%d}", g.GameID, g.Status, g.CurrentTick, len(g.Moves), len(g.Cooldowns))
}
