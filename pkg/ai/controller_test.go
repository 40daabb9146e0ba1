package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
)

func TestNewControllerClampsLevel(t *testing.T) {
	assert.Equal(t, 1, ai.NewController(0, board.Standard).Level)
	assert.Equal(t, 1, ai.NewController(-5, board.Standard).Level)
	assert.Equal(t, 3, ai.NewController(3, board.Standard).Level)
	assert.Equal(t, 3, ai.NewController(99, board.Standard).Level)
	assert.Equal(t, 2, ai.NewController(2, board.Standard).Level)
}

func TestShouldMoveRespectsThinkDelay(t *testing.T) {
	g := newStandardGame()
	c := ai.NewController(1, board.Standard)

	// A fresh controller's huge initial backlog (lastMoveTick starts far in
	// the past) means it is always due on its very first check.
	require.True(t, c.ShouldMove(g, board.Player1, 0))
	_, _, ok := c.Decide(context.Background(), g, board.Player1)
	require.True(t, ok)

	// Standard-speed level 1's think delay is at least 15 ticks (0.5s at
	// 30Hz); one tick later it must not be due again yet.
	assert.False(t, c.ShouldMove(g, board.Player1, 1))

	assert.True(t, c.ShouldMove(g, board.Player1, 1_000_000), "after enough elapsed ticks the bot must be due")
}

func TestDecideReturnsAMoveForAStandardOpeningPosition(t *testing.T) {
	g := newStandardGame()
	c := ai.NewController(2, board.Standard)

	require.True(t, c.ShouldMove(g, board.Player1, 1_000_000))
	pieceID, to, ok := c.Decide(context.Background(), g, board.Player1)
	require.True(t, ok)
	assert.NotEmpty(t, pieceID)

	p := g.Board.GetPieceByID(pieceID)
	require.NotNil(t, p)
	assert.Equal(t, board.Player1, p.Owner)
	assert.NotEqual(t, p.GridPosition(), to)
}

func TestDriveSeatCreatesControllerOnFirstUse(t *testing.T) {
	g := newStandardGame()
	seats := ai.Seats{}
	ctrl := board.AIController(2)

	_, _, _ = ai.DriveSeat(context.Background(), seats, g, board.Player1, ctrl, 1_000_000)
	assert.Contains(t, seats, board.Player1)
}

func TestDriveSeatReusesExistingController(t *testing.T) {
	g := newStandardGame()
	seats := ai.Seats{board.Player1: ai.NewController(2, board.Standard)}
	existing := seats[board.Player1]
	ctrl := board.AIController(2)

	_, _, _ = ai.DriveSeat(context.Background(), seats, g, board.Player1, ctrl, 1_000_000)
	assert.Same(t, existing, seats[board.Player1])
}
