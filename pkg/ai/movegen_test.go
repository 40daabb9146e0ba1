package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
)

func TestGenerateCandidatesRespectsPerPieceCap(t *testing.T) {
	g := newStandardGame()
	s := ai.Extract(g, board.Player1)

	candidates := ai.GenerateCandidates(g, s, 16, 1)
	require.NotEmpty(t, candidates)

	counts := map[string]int{}
	for _, c := range candidates {
		counts[c.PieceID]++
	}
	for pieceID, n := range counts {
		assert.LessOrEqual(t, n, 1, "piece %v exceeded the per-piece candidate cap", pieceID)
	}
}

func TestGenerateCandidatesWithNoMovablePiecesReturnsEmpty(t *testing.T) {
	g := newStandardGame()
	for _, p := range g.Board.GetPiecesForPlayer(board.Player1) {
		g.Cooldowns = append(g.Cooldowns, board.Cooldown{PieceID: p.ID, StartTick: 0, DurationTicks: 1_000_000})
	}

	s := ai.Extract(g, board.Player1)
	assert.Empty(t, s.Movable())
	assert.Empty(t, ai.GenerateCandidates(g, s, 16, 8))
}

func TestGenerateCandidatesTagsCaptures(t *testing.T) {
	players := map[board.Player]string{board.Player1: "u:a", board.Player2: "u:b"}
	controllers := map[board.Player]board.Controller{
		board.Player1: board.HumanController("u:a"),
		board.Player2: board.HumanController("u:b"),
	}
	b := board.NewEmptyBoard(board.TwoPlayer)
	b.Pieces = append(b.Pieces,
		board.NewPiece(board.King, board.Player1, 7, 4),
		board.NewPiece(board.King, board.Player2, 0, 4),
		board.NewPiece(board.Rook, board.Player1, 3, 3),
		board.NewPiece(board.Pawn, board.Player2, 3, 5),
	)
	g := board.NewGameState("g1", b, board.Standard, players, controllers, 0)
	g.Status = board.Playing

	s := ai.Extract(g, board.Player1)
	candidates := ai.GenerateCandidates(g, s, 16, 16)

	var found bool
	for _, c := range candidates {
		if c.PieceID == "R:1:3:3" && c.To == (board.Square{Row: 3, Col: 5}) {
			found = true
			assert.Equal(t, ai.Capture, c.Category)
			assert.Equal(t, board.Pawn, c.CaptureType)
		}
	}
	assert.True(t, found, "rook capturing the undefended pawn must appear as a Capture candidate")
}
