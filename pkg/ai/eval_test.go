package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
)

func TestScoreCandidatesRanksCapturesAboveQuietMoves(t *testing.T) {
	players := map[board.Player]string{board.Player1: "u:a", board.Player2: "u:b"}
	controllers := map[board.Player]board.Controller{
		board.Player1: board.HumanController("u:a"),
		board.Player2: board.HumanController("u:b"),
	}
	b := board.NewEmptyBoard(board.TwoPlayer)
	rook := board.NewPiece(board.Rook, board.Player1, 3, 0)
	prey := board.NewPiece(board.Pawn, board.Player2, 3, 1)
	b.Pieces = append(b.Pieces, rook, prey,
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 0, 0))
	g := board.NewGameState("g1", b, board.Standard, players, controllers, 0)
	g.Status = board.Playing

	s := ai.Extract(g, board.Player1)

	capture := ai.Candidate{PieceID: rook.ID, To: board.Square{Row: 3, Col: 1}, Category: ai.Capture, CaptureType: board.Pawn, Piece: s.ByID[rook.ID]}
	quiet := ai.Candidate{PieceID: rook.ID, To: board.Square{Row: 3, Col: 5}, Category: ai.Positional, Piece: s.ByID[rook.ID]}

	scored := ai.ScoreCandidates([]ai.Candidate{quiet, capture}, s, false)
	require.Len(t, scored, 2)
	assert.Equal(t, capture.To, scored[0].Candidate.To, "the capture must outscore a quiet move of the same piece")
}

func TestScoreCandidatesEmptyInput(t *testing.T) {
	assert.Nil(t, ai.ScoreCandidates(nil, &ai.State{}, false))
}

func TestNoiseGaussianIsReproducibleForFixedSeed(t *testing.T) {
	n1 := ai.NewNoise(42)
	n2 := ai.NewNoise(42)
	assert.Equal(t, n1.Gaussian(1.0), n2.Gaussian(1.0))
}

func TestPieceValuesOrderedByStrength(t *testing.T) {
	assert.Less(t, ai.PieceValues[board.Pawn], ai.PieceValues[board.Knight])
	assert.Less(t, ai.PieceValues[board.Knight], ai.PieceValues[board.Rook])
	assert.Less(t, ai.PieceValues[board.Rook], ai.PieceValues[board.Queen])
	assert.Less(t, ai.PieceValues[board.Queen], ai.PieceValues[board.King])
}
