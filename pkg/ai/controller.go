package ai

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/config"
)

// Controller drives one AI-controlled seat: it decides, once per eligible
// tick, whether to think and which move to propose.
type Controller struct {
	Level int
	Speed board.SpeedProfile

	// timeBudget, if set, overrides the configured think-delay range with a
	// fixed per-call delay; see board.Controller.TimeBudget.
	timeBudget lang.Optional[time.Duration]

	lastMoveTick   int64
	thinkDelayTick int64

	cachedState *State
	cachedTick  int64
}

// NewController creates a bot driver clamped to levels 1-3.
func NewController(level int, speed board.SpeedProfile) *Controller {
	c := &Controller{Level: clampLevel(level), Speed: speed, lastMoveTick: -9999}
	c.rollThinkDelay()
	return c
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

// ShouldMove reports whether the bot is due to attempt a move this tick,
// extracting and caching State for the subsequent Decide call on the same
// tick.
func (c *Controller) ShouldMove(g *board.GameState, player board.Player, currentTick int64) bool {
	if currentTick-c.lastMoveTick < c.thinkDelayTick {
		return false
	}

	s := Extract(g, player)
	c.cachedState = s
	c.cachedTick = currentTick
	return len(s.Movable()) > 0
}

// Decide runs the full pipeline — generate, score, pick — and returns the
// chosen (pieceID, destination), or false if no candidate was found.
func (c *Controller) Decide(ctx context.Context, g *board.GameState, player board.Player) (string, board.Square, bool) {
	var s *State
	if c.cachedState != nil && c.cachedTick == g.CurrentTick {
		s = c.cachedState
		c.cachedState = nil
	} else {
		s = Extract(g, player)
	}

	candidates := GenerateCandidates(g, s, config.Settings.AI.MaxPieces[c.Level], config.Settings.AI.MaxCandidatesPerPiece[c.Level])
	if len(candidates) == 0 {
		return "", board.Square{}, false
	}

	noise := c.Level <= 2
	scored := ScoreCandidates(candidates, s, noise)
	if len(scored) == 0 {
		return "", board.Square{}, false
	}

	if c.Level == 3 {
		applyTacticalRefinement(g, scored, s)
	}

	best := scored[0].Candidate
	c.lastMoveTick = g.CurrentTick
	c.rollThinkDelay()

	logw.Debugf(ctx, "bot:%d player %v proposes %v -> %v (score=%.2f)", c.Level, player, best.PieceID, best.To, scored[0].Score)
	return best.PieceID, best.To, true
}

// applyTacticalRefinement re-scores Level 3's candidates using the full
// arrival-time/tactics layer — dodge risk on captures, recapture setups, and
// post-arrival safety — then re-sorts in place. Levels 1-2 skip this and
// rely on Eval's material/positional score alone, matching the reference's
// per-level pipeline depth.
func applyTacticalRefinement(g *board.GameState, scored []Scored, s *State) {
	a := ComputeArrival(s, g.Speed.TicksPerSquare, g.Speed.CooldownTicks)
	for i := range scored {
		c := scored[i].Candidate
		bonus := CaptureValue(c) * (1 - DodgeProbability(g, c, s, a))
		bonus += RecaptureBonus(c, s, a)
		bonus += ThreatenScore(c, s, a)
		bonus += MoveSafety(c, s, a, config.Settings.Engine.TickRateHz)
		scored[i].Score += bonus
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
}

// SetTimeBudget pins this seat's think-delay to budget instead of drawing it
// from the level's configured random range on every move, mirroring a timed
// seat's board.Controller.TimeBudget override.
func (c *Controller) SetTimeBudget(budget lang.Optional[time.Duration]) {
	c.timeBudget = budget
	c.rollThinkDelay()
}

func (c *Controller) rollThinkDelay() {
	if budget, ok := c.timeBudget.V(); ok {
		c.thinkDelayTick = int64(budget.Seconds() * float64(config.Settings.Engine.TickRateHz))
		return
	}

	rng, ok := config.Settings.AI.ThinkDelaySeconds[c.Level][c.Speed.Name]
	if !ok {
		rng = [2]float64{0, 4.0}
	}
	delaySeconds := rng[0] + rand.Float64()*(rng[1]-rng[0])
	c.thinkDelayTick = int64(delaySeconds * float64(config.Settings.Engine.TickRateHz))
}

// Seats holds one Controller per AI-driven seat in a single game, keyed by
// player number so think-delay timing and cached state persist across
// ticks. A GameRegistry owns one Seats per running game and drives it each
// tick; see pkg/engine/registry.go.
type Seats map[board.Player]*Controller

// DriveSeat attempts one move for a single AI-controlled seat this tick. It
// returns the chosen (pieceID, destination) and true if the bot decided to
// move; the caller (GameRegistry) is responsible for calling
// Engine.ProposeMove and logging a rejection, since Controller has no
// access to the Engine that owns g.
func DriveSeat(ctx context.Context, seats Seats, g *board.GameState, player board.Player, ctrl board.Controller, currentTick int64) (string, board.Square, bool) {
	bot, ok := seats[player]
	if !ok {
		bot = NewController(ctrl.Level, g.Speed)
		if budget, hasBudget := ctrl.TimeBudget.V(); hasBudget {
			bot.SetTimeBudget(lang.Some(budget))
		}
		seats[player] = bot
	}
	if !bot.ShouldMove(g, player, currentTick) {
		return "", board.Square{}, false
	}
	return bot.Decide(ctx, g, player)
}
