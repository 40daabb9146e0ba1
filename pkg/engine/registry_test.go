package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/engine"
)

const gameIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newTwoHumanRegistryGame(t *testing.T) (*engine.GameRegistry, string, map[board.Player]string) {
	t.Helper()
	ctx := context.Background()

	r := engine.NewGameRegistry(2)
	t.Cleanup(r.Close)

	controllers := map[board.Player]board.Controller{
		board.Player1: board.HumanController(""),
		board.Player2: board.HumanController(""),
	}
	gameID, keys, err := r.Create(ctx, board.Standard, board.TwoPlayer, controllers)
	require.NoError(t, err)

	return r, gameID, keys
}

func TestRegistryCreateMintsIDAndKeys(t *testing.T) {
	r, gameID, keys := newTwoHumanRegistryGame(t)

	require.Len(t, gameID, 8)
	for _, c := range gameID {
		assert.True(t, strings.ContainsRune(gameIDAlphabet, c), "id char %q must come from the confusable-free alphabet", c)
	}

	require.Len(t, keys, 2)
	require.Len(t, keys[board.Player1], 24)
	require.Len(t, keys[board.Player2], 24)
	assert.NotEqual(t, keys[board.Player1], keys[board.Player2])

	_, ok := r.Lookup(gameID)
	assert.True(t, ok)
}

func TestRegistryProposeMoveRejectsUnknownGame(t *testing.T) {
	r, _, _ := newTwoHumanRegistryGame(t)

	_, err := r.ProposeMove(context.Background(), "NOSUCHID", "somekey", "P:1:6:4", board.Square{Row: 5, Col: 4})
	require.Error(t, err)
	assert.Equal(t, engine.ErrGameNotFound, err.(*engine.Error).Kind)
}

func TestRegistryProposeMoveRejectsBadKey(t *testing.T) {
	r, gameID, _ := newTwoHumanRegistryGame(t)

	_, err := r.ProposeMove(context.Background(), gameID, "not-a-real-key", "P:1:6:4", board.Square{Row: 5, Col: 4})
	require.Error(t, err)
	assert.Equal(t, engine.ErrInvalidKey, err.(*engine.Error).Kind)
}

func TestRegistryMarkReadyThenProposeMove(t *testing.T) {
	ctx := context.Background()
	r, gameID, keys := newTwoHumanRegistryGame(t)

	ok, started, err := r.MarkReady(ctx, gameID, keys[board.Player1])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, started)

	ok, started, err = r.MarkReady(ctx, gameID, keys[board.Player2])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, started)

	_, err = r.ProposeMove(ctx, gameID, keys[board.Player1], "P:1:6:4", board.Square{Row: 5, Col: 4})
	assert.NoError(t, err)
}

func TestRegistryResignAuthenticatesKey(t *testing.T) {
	ctx := context.Background()
	r, gameID, keys := newTwoHumanRegistryGame(t)

	_, _, err := r.MarkReady(ctx, gameID, keys[board.Player1])
	require.NoError(t, err)
	_, _, err = r.MarkReady(ctx, gameID, keys[board.Player2])
	require.NoError(t, err)

	require.NoError(t, r.Resign(ctx, gameID, keys[board.Player1]))

	e, ok := r.Lookup(gameID)
	require.True(t, ok)
	k1 := e.State().Board.GetKing(board.Player1)
	assert.True(t, k1.Captured)
}

func TestRegistryAIOnlyGameAutoStarts(t *testing.T) {
	ctx := context.Background()
	r := engine.NewGameRegistry(2)
	t.Cleanup(r.Close)

	controllers := map[board.Player]board.Controller{
		board.Player1: board.AIController(1),
		board.Player2: board.AIController(1),
	}
	gameID, keys, err := r.Create(ctx, board.Lightning, board.TwoPlayer, controllers)
	require.NoError(t, err)
	assert.Empty(t, keys, "an all-AI game has no human seats to mint keys for")

	e, ok := r.Lookup(gameID)
	require.True(t, ok)

	ok, started := e.MarkReady(ctx, board.Player1)
	require.True(t, ok)
	assert.True(t, started, "marking one AI seat ready must auto-ready the other and start the game")
}
