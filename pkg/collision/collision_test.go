package collision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/collision"
)

func newPawn(owner board.Player, row, col int) *board.Piece {
	return board.NewPiece(board.Pawn, owner, row, col)
}

func TestKnightAirborneDuringJump(t *testing.T) {
	knight := board.NewPiece(board.Knight, board.Player1, 7, 1)
	m := board.Move{
		PieceID:   knight.ID,
		StartTick: 0,
		Path:      []board.Pos{board.SquarePos(7, 1), {Row: 6, Col: 1.5}, board.SquarePos(5, 2)},
	}
	ticksPerSquare := 10
	total := 2 * ticksPerSquare

	frac := collision.DefaultKnightAirborneFraction

	_, visible := collision.KnightPosition(knight, &m, int64(float64(total)*0.5), ticksPerSquare, frac)
	assert.False(t, visible, "knight must be airborne and invisible before the 85% threshold")

	pos, visible := collision.KnightPosition(knight, &m, int64(float64(total)*0.9), ticksPerSquare, frac)
	assert.True(t, visible, "knight must become visible past the 85% threshold")
	assert.InDelta(t, 5.8, pos.Row, 0.05)

	assert.False(t, collision.CanKnightCapture(m, int64(float64(total)*0.5), ticksPerSquare, frac))
	assert.True(t, collision.CanKnightCapture(m, int64(float64(total)*0.9), ticksPerSquare, frac))
}

func TestStraightPawnCannotCaptureDiagonalPawnSurvives(t *testing.T) {
	p1 := newPawn(board.Player1, 6, 4)
	p2 := newPawn(board.Player2, 4, 5)
	ticksPerSquare := 10

	p1Move := board.Move{PieceID: p1.ID, StartTick: 1, Path: []board.Pos{board.SquarePos(6, 4), board.SquarePos(5, 4)}}
	p2Move := board.Move{PieceID: p2.ID, StartTick: 1, Path: []board.Pos{board.SquarePos(4, 5), board.SquarePos(5, 4)}}

	pieces := []*board.Piece{p1, p2}
	moves := []board.Move{p1Move, p2Move}

	endTick := int64(1 + ticksPerSquare)
	captures := collision.Detect(pieces, moves, endTick, ticksPerSquare, collision.DefaultKnightAirborneFraction)

	require.Len(t, captures, 1, "straight pawn cannot capture, but can be captured by the diagonal mover")
	assert.Equal(t, p2.ID, captures[0].CapturingPieceID)
	assert.Equal(t, p1.ID, captures[0].CapturedPieceID)
}

func TestMutualDestructionSameStartTick(t *testing.T) {
	q1 := board.NewPiece(board.Queen, board.Player1, 4, 0)
	q2 := board.NewPiece(board.Queen, board.Player2, 0, 4)
	ticksPerSquare := 10

	q1Move := board.Move{PieceID: q1.ID, StartTick: 5, Path: []board.Pos{board.SquarePos(4, 0), board.SquarePos(4, 4)}}
	q2Move := board.Move{PieceID: q2.ID, StartTick: 5, Path: []board.Pos{board.SquarePos(0, 4), board.SquarePos(4, 4)}}

	pieces := []*board.Piece{q1, q2}
	moves := []board.Move{q1Move, q2Move}

	endTick := q1Move.EndTick(ticksPerSquare)
	captures := collision.Detect(pieces, moves, endTick, ticksPerSquare, collision.DefaultKnightAirborneFraction)

	require.Len(t, captures, 2, "same start tick must produce mutual destruction, not a single winner")
	for _, c := range captures {
		assert.Empty(t, c.CapturingPieceID)
	}
	ids := []string{captures[0].CapturedPieceID, captures[1].CapturedPieceID}
	assert.ElementsMatch(t, []string{q1.ID, q2.ID}, ids)
}

func TestEarlierStartTickWinsHeadOnCollision(t *testing.T) {
	r1 := board.NewPiece(board.Rook, board.Player1, 4, 0)
	r2 := board.NewPiece(board.Rook, board.Player2, 4, 8)
	ticksPerSquare := 10

	r1Move := board.Move{PieceID: r1.ID, StartTick: 0, Path: []board.Pos{board.SquarePos(4, 0), board.SquarePos(4, 4)}}
	r2Move := board.Move{PieceID: r2.ID, StartTick: 5, Path: []board.Pos{board.SquarePos(4, 8), board.SquarePos(4, 4)}}

	pieces := []*board.Piece{r1, r2}
	moves := []board.Move{r1Move, r2Move}

	// r1 has been resting on (4,4) since tick 10; the later r2 reaches it at
	// its own end tick.
	captures := collision.Detect(pieces, moves, r2Move.EndTick(ticksPerSquare), ticksPerSquare, collision.DefaultKnightAirborneFraction)

	require.Len(t, captures, 1)
	assert.Equal(t, r1.ID, captures[0].CapturingPieceID, "earlier startTick must win a head-on collision")
	assert.Equal(t, r2.ID, captures[0].CapturedPieceID)
}

func TestStationaryPiecesNeverCollide(t *testing.T) {
	p1 := newPawn(board.Player1, 4, 4)
	p2 := newPawn(board.Player2, 4, 4)

	captures := collision.Detect([]*board.Piece{p1, p2}, nil, 10, 10, collision.DefaultKnightAirborneFraction)
	assert.Empty(t, captures, "two stationary pieces, even on the same square, never collide without an active move")
}
