// Package engine is the tick simulator: it owns a GameState's mutation,
// applies validated moves, advances the clock, resolves collisions, and
// checks termination. One Engine owns exactly one game; GameRegistry manages
// the population of concurrently running games.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/collision"
	"github.com/clutchchess/kfcore/pkg/config"
	"github.com/clutchchess/kfcore/pkg/validate"
)

var version = build.NewVersion(0, 1, 0)

// Version reports the engine's build version, in the teacher's
// name-plus-semver convention.
func Version() string {
	return fmt.Sprintf("kfcore %v", version)
}

// Win reasons form a closed set (§4.6). INVALID marks an administrative
// termination, not rating-eligible.
const (
	WinKingCaptured = "KING_CAPTURED"
	WinDraw         = "DRAW"
	WinResignation  = "RESIGNATION"
	WinLastStanding = "LAST_STANDING"
	WinInvalid      = "INVALID"
)

// Options are engine creation options; all have sensible defaults so a bare
// CreateGame call is always valid.
type Options struct {
	// KnightAirborneFraction overrides config.Settings.Collision.KnightAirborneFraction;
	// zero or negative keeps the configured value.
	KnightAirborneFraction float64
}

func (o Options) resolve() Options {
	if o.KnightAirborneFraction <= 0 {
		o.KnightAirborneFraction = config.Settings.Collision.KnightAirborneFraction
	}
	return o
}

// Option configures an Engine at creation time.
type Option func(*Options)

// WithKnightAirborneFraction overrides the knight jump's airborne window.
func WithKnightAirborneFraction(f float64) Option {
	return func(o *Options) { o.KnightAirborneFraction = f }
}

// Engine owns mutation of a single GameState. All public methods are
// mutex-guarded; the caller never sees a state mid-tick.
type Engine struct {
	opts Options
	busy atomic.Bool // true while a Tick call is in flight

	mu sync.Mutex
	g  *board.GameState
}

// CreateGame starts a new WAITING game on the conventional starting layout.
// Only TwoPlayer has a generated standard layout (the original game never
// defines one for FourPlayer, which is always built from a board setup
// string instead); callers wanting a FourPlayer or custom game must use
// CreateGameFromBoard.
func CreateGame(ctx context.Context, gameID string, speed board.SpeedProfile, variant board.Variant, players map[board.Player]string, controllers map[board.Player]board.Controller, opts ...Option) (*Engine, error) {
	if variant == board.FourPlayer {
		return nil, fmt.Errorf("four-player games have no standard layout; use CreateGameFromBoard")
	}
	return newEngine(ctx, gameID, speed, board.NewStandardBoard(), "", players, controllers, opts...), nil
}

// CreateGameFromBoard starts a new WAITING game from an explicit board,
// typically decoded from a board setup string (campaign levels, tests).
func CreateGameFromBoard(ctx context.Context, gameID string, speed board.SpeedProfile, b *board.Board, setupText string, players map[board.Player]string, controllers map[board.Player]board.Controller, opts ...Option) *Engine {
	return newEngine(ctx, gameID, speed, b, setupText, players, controllers, opts...)
}

func newEngine(ctx context.Context, gameID string, speed board.SpeedProfile, b *board.Board, setupText string, players map[board.Player]string, controllers map[board.Player]board.Controller, opts ...Option) *Engine {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	o = o.resolve()

	g := board.NewGameState(gameID, b, speed, players, controllers, nowUnix())
	g.BoardSetup = setupText

	logw.Infof(ctx, "Created game %v: variant=%v, speed=%v, players=%v", gameID, b.Variant, speed.Name, players)
	return &Engine{opts: o, g: g}
}

// State returns a forked, read-only snapshot of the current GameState. The
// returned Board is independent of the live one; Moves/Cooldowns/ReplayLog
// are copied slices.
func (e *Engine) State() *board.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := *e.g
	cp.Board = e.g.Board.Fork()
	cp.Moves = append([]board.Move(nil), e.g.Moves...)
	cp.Cooldowns = append([]board.Cooldown(nil), e.g.Cooldowns...)
	cp.ReplayLog = append([]board.ReplayEntry(nil), e.g.ReplayLog...)
	return &cp
}

// MarkReady marks a seat ready; once every seat is ready the game transitions
// WAITING -> PLAYING. Returns (ok, gameStarted).
func (e *Engine) MarkReady(ctx context.Context, player board.Player) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.g.Status != board.Waiting {
		return false, false
	}
	if _, ok := e.g.Players[player]; !ok {
		return false, false
	}

	e.g.Ready[player] = true

	// AI-controlled seats are always ready; a human marking ready is enough
	// to surface them, matching the original's "games with bots, bots are
	// always ready" rule.
	for p, c := range e.g.Controllers {
		if !c.Human {
			e.g.Ready[p] = true
		}
	}

	for p := range e.g.Players {
		if !e.g.Ready[p] {
			return true, false
		}
	}

	e.g.Status = board.Playing
	logw.Infof(ctx, "Game %v: all seats ready, PLAYING", e.g.GameID)
	return true, true
}

// ProposeMove validates and, on success, applies a move: it is attached to
// the active set with startTick = currentTick+1, a Replay entry is recorded,
// and a MoveStarted event is returned alongside the pieces' parallel extra
// move's own MoveStarted (castling).
func (e *Engine) ProposeMove(ctx context.Context, player board.Player, pieceID string, to board.Square) ([]board.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.g.Status == board.Finished {
		return nil, reject(ErrGameOver, "game %v is finished", e.g.GameID)
	}
	if e.g.Status == board.Waiting {
		return nil, reject(ErrGameNotStarted, "game %v has not started", e.g.GameID)
	}

	m, err := validate.Validate(e.g, player, pieceID, to)
	if err != nil {
		return nil, translateValidationError(err)
	}

	events := e.applyMove(ctx, m)
	return events, nil
}

func (e *Engine) applyMove(ctx context.Context, m board.Move) []board.Event {
	e.clearDrawOffers()
	e.g.Moves = append(e.g.Moves, m)
	e.g.ReplayLog = append(e.g.ReplayLog, board.ReplayEntry{
		Tick: m.StartTick, PieceID: m.PieceID,
		ToRow: m.To().Round().Row, ToCol: m.To().Round().Col,
		Player: e.g.Board.GetPieceByID(m.PieceID).Owner,
	})

	events := []board.Event{board.NewMoveStartedEvent(m.PieceID, m.StartTick, m.To().Round())}

	if m.ExtraMove != nil {
		rm := *m.ExtraMove
		e.g.Moves = append(e.g.Moves, rm)
		e.g.ReplayLog = append(e.g.ReplayLog, board.ReplayEntry{
			Tick: rm.StartTick, PieceID: rm.PieceID,
			ToRow: rm.To().Round().Row, ToCol: rm.To().Round().Col,
			Player: e.g.Board.GetPieceByID(rm.PieceID).Owner,
		})
		events = append(events, board.NewMoveStartedEvent(rm.PieceID, rm.StartTick, rm.To().Round()))
	}

	logw.Infof(ctx, "Game %v: move %v", e.g.GameID, m)
	return events
}

func translateValidationError(err error) error {
	ve, ok := err.(*validate.Error)
	if !ok {
		return reject(ErrInvalidMove, "%v", err)
	}
	switch ve.Kind {
	case validate.ErrUnknownPiece:
		return reject(ErrPieceNotFound, "%v", ve.Msg)
	case validate.ErrNotOwner:
		return reject(ErrNotYourPiece, "%v", ve.Msg)
	case validate.ErrCaptured:
		return reject(ErrPieceCaptured, "%v", ve.Msg)
	case validate.ErrNotPlaying:
		return reject(ErrGameNotStarted, "%v", ve.Msg)
	default:
		return reject(ErrInvalidMove, "%v", ve.Msg)
	}
}

// Tick advances the simulation by exactly one tick: progresses collisions,
// retires completed moves into cooldowns (with promotion), expires
// cooldowns, and checks termination, in that strict order (§4.5).
func (e *Engine) Tick(ctx context.Context) ([]board.Event, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.g.Status != board.Playing {
		return nil, e.g.Status == board.Finished, reject(ErrGameNotStarted, "game %v is not PLAYING", e.g.GameID)
	}

	// Tick is only ever entered with mu held, so busy should never already be
	// true here; a reentrant tick is a state invariant violation (§7), not a
	// validation error, so it terminates the affected game instead of
	// corrupting it silently.
	if e.busy.Load() {
		logw.Errorf(ctx, "game %v: Tick re-entered while busy; terminating game", e.g.GameID)
		events := e.finish(ctx, board.NoPlayer, WinInvalid)
		return events, true, nil
	}

	e.busy.Store(true)
	defer e.busy.Store(false)

	e.clearDrawOffers()
	e.g.CurrentTick++
	var events []board.Event

	events = append(events, e.resolveCollisions(ctx)...)
	events = append(events, e.retireCompletedMoves(ctx)...)
	e.expireCooldowns()
	events = append(events, e.checkTermination(ctx)...)

	return events, e.g.Status == board.Finished, nil
}

func (e *Engine) resolveCollisions(ctx context.Context) []board.Event {
	captures := collision.Detect(e.g.Board.GetActivePieces(), e.g.Moves, e.g.CurrentTick, e.g.Speed.TicksPerSquare, e.opts.KnightAirborneFraction)
	if len(captures) == 0 {
		return nil
	}

	var events []board.Event
	for _, c := range captures {
		captured := e.g.Board.GetPieceByID(c.CapturedPieceID)
		if captured == nil || captured.Captured {
			continue
		}
		captured.Captured = true

		e.dropMove(c.CapturedPieceID)
		e.dropCooldown(c.CapturedPieceID)
		e.g.LastCaptureTick = e.g.CurrentTick

		events = append(events, board.NewCaptureEvent(c.CapturingPieceID, c.CapturedPieceID, c.Position))
		logw.Infof(ctx, "Game %v: capture %v", e.g.GameID, c)
	}
	return events
}

// dropMove removes a piece's active move, including an owned extraMove (a
// captured castling king drags its rook's parallel move down with it).
func (e *Engine) dropMove(pieceID string) {
	var filtered []board.Move
	for _, m := range e.g.Moves {
		if m.PieceID == pieceID {
			continue
		}
		if m.ExtraMove != nil && m.ExtraMove.PieceID == pieceID {
			continue
		}
		filtered = append(filtered, m)
	}
	e.g.Moves = filtered
}

func (e *Engine) dropCooldown(pieceID string) {
	var filtered []board.Cooldown
	for _, c := range e.g.Cooldowns {
		if c.PieceID != pieceID {
			filtered = append(filtered, c)
		}
	}
	e.g.Cooldowns = filtered
}

func (e *Engine) retireCompletedMoves(ctx context.Context) []board.Event {
	var events []board.Event
	var remaining []board.Move

	for _, m := range e.g.Moves {
		p := e.g.Board.GetPieceByID(m.PieceID)
		if p == nil || p.Captured {
			continue // captured mid-flight; dropMove already removed it, defensive skip
		}
		if !m.IsComplete(e.g.CurrentTick, e.g.Speed.TicksPerSquare) {
			remaining = append(remaining, m)
			continue
		}

		dest := m.To().Round()
		p.Pos = dest.Pos()
		p.Moved = true

		e.g.LastMoveTick = e.g.CurrentTick
		e.g.Cooldowns = append(e.g.Cooldowns, board.Cooldown{
			PieceID: p.ID, StartTick: e.g.CurrentTick, DurationTicks: e.g.Speed.CooldownTicks,
		})

		events = append(events, board.NewMoveCompletedEvent(p.ID, dest))
		events = append(events, board.NewCooldownStartedEvent(p.ID, e.g.Speed.CooldownTicks))
		logw.Infof(ctx, "Game %v: move completed %v -> %v", e.g.GameID, p.ID, dest)

		if m.Promotion != board.NoPieceType {
			p.Type = m.Promotion
			events = append(events, board.NewPromotionEvent(p.ID, m.Promotion))
			logw.Infof(ctx, "Game %v: promotion %v -> %v", e.g.GameID, p.ID, m.Promotion)
		}
	}

	e.g.Moves = remaining
	return events
}

func (e *Engine) expireCooldowns() {
	var remaining []board.Cooldown
	for _, c := range e.g.Cooldowns {
		if c.Active(e.g.CurrentTick) {
			remaining = append(remaining, c)
		}
	}
	e.g.Cooldowns = remaining
}

// checkTermination implements §4.6: zero living kings draws; exactly one
// living king wins by KING_CAPTURED; otherwise, after minDrawTicks, long
// inactivity on both moves and captures draws by DRAW.
func (e *Engine) checkTermination(ctx context.Context) []board.Event {
	living := e.g.LivingPlayers()

	switch len(living) {
	case 0:
		return e.finish(ctx, board.NoPlayer, WinDraw)
	case 1:
		return e.finish(ctx, living[0], WinKingCaptured)
	}

	if e.g.CurrentTick < e.g.Speed.MinDrawTicks {
		return nil
	}
	sinceMove := e.g.CurrentTick - e.g.LastMoveTick
	sinceCapture := e.g.CurrentTick - e.g.LastCaptureTick
	if sinceMove >= e.g.Speed.DrawNoMoveTicks && sinceCapture >= e.g.Speed.DrawNoCaptureTicks {
		return e.finish(ctx, board.NoPlayer, WinDraw)
	}
	return nil
}

func (e *Engine) finish(ctx context.Context, winner board.Player, reason string) []board.Event {
	e.g.Status = board.Finished
	e.g.Winner = winner
	e.g.WinReason = reason

	logw.Infof(ctx, "Game %v: finished, winner=%v, reason=%v", e.g.GameID, winner, reason)

	if reason == WinDraw {
		return []board.Event{board.NewDrawEvent(reason)}
	}
	return []board.Event{board.NewGameOverEvent(winner, reason)}
}

// Resign immediately captures the resigning player's king, which the next
// Tick will observe as a termination condition.
func (e *Engine) Resign(ctx context.Context, player board.Player) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := e.g.Board.GetKing(player)
	if k == nil || k.Captured {
		return reject(ErrInvalidMove, "player %v has no living king to resign", player)
	}
	k.Captured = true
	e.dropMove(k.ID)
	e.dropCooldown(k.ID)
	e.g.LastCaptureTick = e.g.CurrentTick

	logw.Infof(ctx, "Game %v: player %v resigned", e.g.GameID, player)
	return nil
}

// clearDrawOffers resets all pending draw offers: any move or tick passing
// withdraws every outstanding offer, so a stale accept from several ticks
// ago can never resolve a draw the offering player would no longer want.
func (e *Engine) clearDrawOffers() {
	for p := range e.g.DrawOffers {
		delete(e.g.DrawOffers, p)
	}
}

// OfferDraw records a pending draw offer from a player. The draw is accepted,
// and the game finishes immediately, once every other living player also has
// a pending offer outstanding at the same time (no tick or move has passed
// since any of them offered).
func (e *Engine) OfferDraw(ctx context.Context, player board.Player) (bool, string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.g.DrawOffers[player] = true

	living := e.g.LivingPlayers()
	for _, p := range living {
		if !e.g.DrawOffers[p] {
			return false, "awaiting other players"
		}
	}

	e.g.Status = board.Finished
	e.g.Winner = board.NoPlayer
	e.g.WinReason = WinDraw
	logw.Infof(ctx, "Game %v: draw agreed by %v", e.g.GameID, living)
	return true, "all living players agreed"
}

// PieceState is a read-only view of one piece's current situation.
type PieceState struct {
	Piece             *board.Piece
	Pos               board.Pos
	Moving            bool
	OnCooldown        bool
	CooldownRemaining int
}

// GetPieceState returns a piece's interpolated position, moving flag, and
// cooldown remaining, or false if the piece doesn't exist.
func (e *Engine) GetPieceState(pieceID string) (PieceState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.g.Board.GetPieceByID(pieceID)
	if p == nil {
		return PieceState{}, false
	}

	m, moving := e.g.FindMove(pieceID)
	var pos board.Pos
	switch {
	case p.Type == board.Knight && moving:
		if visible, ok := collision.KnightPosition(p, &m, e.g.CurrentTick, e.g.Speed.TicksPerSquare, e.opts.KnightAirborneFraction); ok {
			pos = visible
		} else {
			pos = m.From() // airborne: report takeoff square, not a fabricated midpoint
		}
	case moving:
		pos = collision.InterpolatedPosition(p, &m, e.g.CurrentTick, e.g.Speed.TicksPerSquare)
	default:
		pos = p.Pos
	}

	cd, onCooldown := e.g.FindCooldown(pieceID)
	remaining := 0
	if onCooldown {
		remaining = cd.Remaining(e.g.CurrentTick)
	}

	return PieceState{
		Piece:             p,
		Pos:               pos,
		Moving:            moving,
		OnCooldown:        onCooldown,
		CooldownRemaining: remaining,
	}, true
}

// GetLegalMoves enumerates every legal (pieceId, destination) pair currently
// available to a player.
func (e *Engine) GetLegalMoves(player board.Player) []validate.LegalMove {
	e.mu.Lock()
	defer e.mu.Unlock()

	return validate.LegalMoves(e.g, player)
}

// nowUnix stamps GameState.CreatedUnix; overridable in tests.
var nowUnix = func() int64 { return 0 }
