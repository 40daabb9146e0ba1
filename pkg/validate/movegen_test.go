package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/validate"
)

func hasLegalMove(moves []validate.LegalMove, pieceID string, to board.Square) bool {
	for _, m := range moves {
		if m.PieceID == pieceID && m.To == to {
			return true
		}
	}
	return false
}

func TestLegalMovesEnumeratesRookSlides(t *testing.T) {
	king := board.NewPiece(board.King, board.Player1, 7, 4)
	rook := board.NewPiece(board.Rook, board.Player1, 7, 0)
	g := newTestGame(king, rook)

	moves := validate.LegalMoves(g, board.Player1)
	assert.True(t, hasLegalMove(moves, rook.ID, board.Square{Row: 7, Col: 1}))
	assert.True(t, hasLegalMove(moves, rook.ID, board.Square{Row: 7, Col: 3}))
	assert.False(t, hasLegalMove(moves, rook.ID, board.Square{Row: 7, Col: 4}), "a rook may not land on its own king's square")
}

func TestLegalMovesIncludesCastlingWhenKingUnmoved(t *testing.T) {
	king := board.NewPiece(board.King, board.Player1, 7, 4)
	rook := board.NewPiece(board.Rook, board.Player1, 7, 7)
	g := newTestGame(king, rook)

	moves := validate.LegalMoves(g, board.Player1)
	assert.True(t, hasLegalMove(moves, king.ID, board.Square{Row: 7, Col: 6}))
}

func TestLegalMovesExcludesCastlingWhenKingMoved(t *testing.T) {
	king := board.NewPiece(board.King, board.Player1, 7, 4)
	king.Moved = true
	rook := board.NewPiece(board.Rook, board.Player1, 7, 7)
	g := newTestGame(king, rook)

	moves := validate.LegalMoves(g, board.Player1)
	assert.False(t, hasLegalMove(moves, king.ID, board.Square{Row: 7, Col: 6}))
}

func TestLegalMovesExcludesPiecesOnCooldown(t *testing.T) {
	king := board.NewPiece(board.King, board.Player1, 7, 4)
	rook := board.NewPiece(board.Rook, board.Player1, 7, 0)
	g := newTestGame(king, rook)
	g.Cooldowns = append(g.Cooldowns, board.Cooldown{PieceID: rook.ID, StartTick: 0, DurationTicks: 50})

	moves := validate.LegalMoves(g, board.Player1)
	assert.False(t, hasLegalMove(moves, rook.ID, board.Square{Row: 7, Col: 1}))
}

func TestLegalMovesEmptyWhenKingCaptured(t *testing.T) {
	king := board.NewPiece(board.King, board.Player1, 7, 4)
	king.Captured = true
	rook := board.NewPiece(board.Rook, board.Player1, 7, 0)
	g := newTestGame(king, rook)

	moves := validate.LegalMoves(g, board.Player1)
	assert.Empty(t, moves)
}
