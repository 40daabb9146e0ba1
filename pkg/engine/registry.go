package engine

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"golang.org/x/sync/semaphore"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/config"
)

// gameIDAlphabet excludes visually confusable characters (I, L, O, 0, 1).
const gameIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const gameIDLength = 8

const playerKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const playerKeyLength = 24

// hostedGame pairs a running Engine with its per-seat secret keys and AI
// drivers. GameRegistry owns its tick loop end to end.
type hostedGame struct {
	e     *Engine
	keys  map[board.Player]string // human seats only
	seats ai.Seats
	quit  iox.AsyncCloser
}

// GameRegistry hosts a population of concurrently running games: it mints
// ids and per-seat keys, authenticates calls routed through it, drives each
// game's tick loop, and bounds how many AI decisions may compute at once
// across every hosted game (the §5 "Performance envelope" resource cap).
type GameRegistry struct {
	aiSem *semaphore.Weighted

	mu    sync.Mutex
	games map[string]*hostedGame
}

// NewGameRegistry creates an empty registry. aiConcurrency bounds how many
// ai.Controller.Decide calls may run concurrently across every hosted game.
func NewGameRegistry(aiConcurrency int64) *GameRegistry {
	if aiConcurrency <= 0 {
		aiConcurrency = 1
	}
	return &GameRegistry{
		aiSem: semaphore.NewWeighted(aiConcurrency),
		games: map[string]*hostedGame{},
	}
}

func randomString(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			// The platform CSPRNG is unusable; there is no safe fallback for
			// an identifier or secret that must not be guessable.
			panic(fmt.Sprintf("engine: random string generation: %v", err))
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// reserveID mints a game id unique among currently hosted games, inserting a
// placeholder under lock so two concurrent Create calls never race onto the
// same id.
func (r *GameRegistry) reserveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		id := randomString(gameIDAlphabet, gameIDLength)
		if _, exists := r.games[id]; !exists {
			r.games[id] = nil
			return id
		}
	}
}

// seedPlayers assigns an opaque player id to every seat — "u:<key>" for
// human seats (the key doubles as the identity, absent a real account
// system) and a controller's own "bot:<level>" identity for AI seats,
// matching the original's player-id convention (§6 glossary).
func seedPlayers(controllers map[board.Player]board.Controller) (players map[board.Player]string, keys map[board.Player]string) {
	players = map[board.Player]string{}
	keys = map[board.Player]string{}
	for p, c := range controllers {
		if c.Human {
			key := randomString(playerKeyAlphabet, playerKeyLength)
			keys[p] = key
			players[p] = fmt.Sprintf("u:%v", key)
		} else {
			players[p] = c.Ident
		}
	}
	return players, keys
}

// Create starts a new hosted game on the conventional starting layout and
// begins driving it immediately. Only TwoPlayer has a generated layout; see
// CreateGame. Returns the game id and a secret key per human seat.
func (r *GameRegistry) Create(ctx context.Context, speed board.SpeedProfile, variant board.Variant, controllers map[board.Player]board.Controller, opts ...Option) (string, map[board.Player]string, error) {
	players, keys := seedPlayers(controllers)
	gameID := r.reserveID()

	e, err := CreateGame(ctx, gameID, speed, variant, players, controllers, opts...)
	if err != nil {
		r.mu.Lock()
		delete(r.games, gameID)
		r.mu.Unlock()
		return "", nil, err
	}

	r.host(ctx, gameID, e, keys, controllers, speed)
	return gameID, keys, nil
}

// CreateFromBoard starts a new hosted game from an explicit board (campaign
// levels, 4-player games, tests) and begins driving it immediately.
func (r *GameRegistry) CreateFromBoard(ctx context.Context, speed board.SpeedProfile, b *board.Board, setupText string, controllers map[board.Player]board.Controller, opts ...Option) (string, map[board.Player]string, error) {
	players, keys := seedPlayers(controllers)
	gameID := r.reserveID()

	e := CreateGameFromBoard(ctx, gameID, speed, b, setupText, players, controllers, opts...)
	r.host(ctx, gameID, e, keys, controllers, speed)
	return gameID, keys, nil
}

// host registers a freshly created Engine and starts its tick loop. Every
// AI-controlled seat's Controller is created here, up front and
// single-threaded, so the run loop's per-tick goroutines only ever read
// hg.seats concurrently — never write it, which a shared Go map cannot
// safely tolerate across goroutines.
func (r *GameRegistry) host(ctx context.Context, gameID string, e *Engine, keys map[board.Player]string, controllers map[board.Player]board.Controller, speed board.SpeedProfile) {
	hg := &hostedGame{e: e, keys: keys, seats: ai.Seats{}, quit: iox.NewAsyncCloser()}
	for p, c := range controllers {
		if !c.Human {
			hg.seats[p] = ai.NewController(c.Level, speed)
		}
	}

	r.mu.Lock()
	r.games[gameID] = hg
	r.mu.Unlock()

	go r.run(ctx, gameID, hg, controllers)
	logw.Infof(ctx, "GameRegistry: hosting game %v", gameID)
}

// Lookup returns the Engine for a hosted game id.
func (r *GameRegistry) Lookup(gameID string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hg, ok := r.games[gameID]
	if !ok || hg == nil {
		return nil, false
	}
	return hg.e, true
}

// authenticate resolves (gameID, key) to the hostedGame and player it
// addresses, failing with ErrGameNotFound or ErrInvalidKey.
func (r *GameRegistry) authenticate(gameID, key string) (*hostedGame, board.Player, error) {
	r.mu.Lock()
	hg, ok := r.games[gameID]
	r.mu.Unlock()

	if !ok || hg == nil {
		return nil, board.NoPlayer, reject(ErrGameNotFound, "no such game %v", gameID)
	}
	for p, k := range hg.keys {
		if k == key {
			return hg, p, nil
		}
	}
	return nil, board.NoPlayer, reject(ErrInvalidKey, "key does not match any seat in game %v", gameID)
}

// ProposeMove authenticates key against gameID's human seats, then proposes
// the move as that seat's player.
func (r *GameRegistry) ProposeMove(ctx context.Context, gameID, key, pieceID string, to board.Square) ([]board.Event, error) {
	hg, player, err := r.authenticate(gameID, key)
	if err != nil {
		return nil, err
	}
	return hg.e.ProposeMove(ctx, player, pieceID, to)
}

// MarkReady authenticates key and marks the corresponding seat ready.
func (r *GameRegistry) MarkReady(ctx context.Context, gameID, key string) (bool, bool, error) {
	hg, player, err := r.authenticate(gameID, key)
	if err != nil {
		return false, false, err
	}
	ok, started := hg.e.MarkReady(ctx, player)
	return ok, started, nil
}

// Resign authenticates key and resigns the corresponding seat.
func (r *GameRegistry) Resign(ctx context.Context, gameID, key string) error {
	hg, player, err := r.authenticate(gameID, key)
	if err != nil {
		return err
	}
	return hg.e.Resign(ctx, player)
}

// OfferDraw authenticates key and records a draw offer from the
// corresponding seat.
func (r *GameRegistry) OfferDraw(ctx context.Context, gameID, key string) (bool, string, error) {
	hg, player, err := r.authenticate(gameID, key)
	if err != nil {
		return false, "", err
	}
	ok, reason := hg.e.OfferDraw(ctx, player)
	return ok, reason, nil
}

// run drives one hosted game at the configured tick rate: each tick, every
// AI-controlled seat is offered one decision (bounded by the registry's AI
// concurrency semaphore) before the simulation clock advances, mirroring the
// original service's per-tick "process AI moves, then advance" order.
func (r *GameRegistry) run(ctx context.Context, gameID string, hg *hostedGame, controllers map[board.Player]board.Controller) {
	wctx, cancel := contextx.WithQuitCancel(ctx, hg.quit.Closed())
	defer cancel()

	rate := config.Settings.Engine.TickRateHz
	if rate <= 0 {
		rate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for !hg.quit.IsClosed() {
		select {
		case <-wctx.Done():
			return
		case <-ticker.C:
		}

		state := hg.e.State()
		if state.Status != board.Playing {
			if state.Status == board.Finished {
				r.reap(ctx, gameID, hg)
				return
			}
			continue
		}

		r.driveAISeats(wctx, hg, state, controllers)

		if _, finished, err := hg.e.Tick(wctx); err != nil {
			logw.Errorf(ctx, "GameRegistry: game %v tick failed: %v", gameID, err)
		} else if finished {
			r.reap(ctx, gameID, hg)
			return
		}
	}
}

func (r *GameRegistry) driveAISeats(ctx context.Context, hg *hostedGame, state *board.GameState, controllers map[board.Player]board.Controller) {
	var wg sync.WaitGroup
	for player, ctrl := range controllers {
		if ctrl.Human {
			continue
		}
		player, ctrl := player, ctrl

		if !r.aiSem.TryAcquire(1) {
			continue // every AI slot busy this tick; try again next tick
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.aiSem.Release(1)

			pieceID, to, found := ai.DriveSeat(ctx, hg.seats, state, player, ctrl, state.CurrentTick)
			if !found {
				return
			}
			if _, err := hg.e.ProposeMove(ctx, player, pieceID, to); err != nil {
				logw.Debugf(ctx, "GameRegistry: bot %v proposal rejected: %v", player, err)
			}
		}()
	}
	wg.Wait()
}

// reap fires a finished game's closer and removes the game from the registry
// in the same call; a later Lookup of its id finds nothing, and there is no
// delay during which a finished game stays available.
func (r *GameRegistry) reap(ctx context.Context, gameID string, hg *hostedGame) {
	hg.quit.Close()

	r.mu.Lock()
	delete(r.games, gameID)
	r.mu.Unlock()

	logw.Infof(ctx, "GameRegistry: reaped finished game %v", gameID)
}

// Close stops every hosted game's tick loop without waiting for them to
// finish naturally; intended for process shutdown.
func (r *GameRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, hg := range r.games {
		if hg != nil {
			hg.quit.Close()
		}
	}
	r.games = map[string]*hostedGame{}
}
