package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
)

func newStandardGame() *board.GameState {
	players := map[board.Player]string{board.Player1: "u:a", board.Player2: "u:b"}
	controllers := map[board.Player]board.Controller{
		board.Player1: board.HumanController("u:a"),
		board.Player2: board.HumanController("u:b"),
	}
	g := board.NewGameState("g1", board.NewStandardBoard(), board.Standard, players, controllers, 0)
	g.Status = board.Playing
	return g
}

func TestExtractClassifiesOwnAndEnemyPieces(t *testing.T) {
	g := newStandardGame()
	s := ai.Extract(g, board.Player1)

	assert.Equal(t, 16, len(s.Movable()), "every one of a fresh player's 16 pieces is idle and movable")
	assert.Equal(t, 16, len(s.Enemies()))

	require.NotNil(t, s.OwnKing())
	assert.Equal(t, board.Player1, s.OwnKing().Piece.Owner)

	require.NotNil(t, s.EnemyKing())
	assert.Equal(t, board.Player2, s.EnemyKing().Piece.Owner)
}

func TestExtractMarksTravelingPieceNotMovable(t *testing.T) {
	g := newStandardGame()
	g.Moves = append(g.Moves, board.Move{
		PieceID:   "P:1:6:4",
		StartTick: 1,
		Path:      []board.Pos{{Row: 6, Col: 4}, {Row: 5, Col: 4}},
	})

	s := ai.Extract(g, board.Player1)
	ap, ok := s.ByID["P:1:6:4"]
	require.True(t, ok)
	assert.Equal(t, ai.Traveling, ap.Status)

	for _, m := range s.Movable() {
		assert.NotEqual(t, "P:1:6:4", m.Piece.ID, "a traveling piece must not appear as movable")
	}
}

func TestExtractSkipsCapturedPieces(t *testing.T) {
	g := newStandardGame()
	g.Board.GetPieceByID("P:2:1:0").Captured = true

	s := ai.Extract(g, board.Player1)
	_, ok := s.ByID["P:2:1:0"]
	assert.False(t, ok)
	assert.Equal(t, 15, len(s.Enemies()))
}

func TestExtractMarksCooldownStatus(t *testing.T) {
	g := newStandardGame()
	g.CurrentTick = 5
	g.Cooldowns = append(g.Cooldowns, board.Cooldown{PieceID: "P:1:6:4", StartTick: 0, DurationTicks: 50})

	s := ai.Extract(g, board.Player1)
	ap, ok := s.ByID["P:1:6:4"]
	require.True(t, ok)
	assert.Equal(t, ai.OnCooldown, ap.Status)
	assert.Equal(t, 45, ap.CooldownRemaining)
}
