package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/geometry"
)

// TestCastleGeometryKingsideRookTakesSameTicksAsKing covers the kingside
// castling scenario: the king moves two squares toward h1's rook, and the
// rook's padded path must take exactly as many waypoints as the king's so
// both arrive simultaneously.
func TestCastleGeometryKingsideRookTakesSameTicksAsKing(t *testing.T) {
	from := board.Square{Row: 7, Col: 4}
	to := board.Square{Row: 7, Col: 6}
	rookSq := board.Square{Row: 7, Col: 7}
	newRookSq := board.Square{Row: 7, Col: 5}

	attempt := geometry.CastleGeometry(from, to, rookSq, newRookSq)

	require.Len(t, attempt.KingPath, 3)
	assert.Equal(t, to, attempt.KingPath[len(attempt.KingPath)-1].Round())

	require.Len(t, attempt.RookPath, len(attempt.KingPath), "rook path must take exactly as many waypoints as the king's for simultaneous arrival")
	assert.Equal(t, newRookSq, attempt.RookPath[len(attempt.RookPath)-1].Round())

	require.Len(t, attempt.BetweenSquares, 2)
	assert.Equal(t, []board.Square{{Row: 7, Col: 5}, {Row: 7, Col: 6}}, attempt.BetweenSquares)
}

// TestCastleGeometryQueensideRookTravelsFartherThanKing covers the queenside
// castling scenario: the a-file rook is 3 squares from its destination while
// the king is always exactly 2, so (unlike kingside) the rook's path is
// longer than the king's rather than padded to match it.
func TestCastleGeometryQueensideRookTravelsFartherThanKing(t *testing.T) {
	from := board.Square{Row: 7, Col: 4}
	to := board.Square{Row: 7, Col: 2}
	rookSq := board.Square{Row: 7, Col: 0}
	newRookSq := board.Square{Row: 7, Col: 3}

	attempt := geometry.CastleGeometry(from, to, rookSq, newRookSq)

	assert.Equal(t, []board.Square{{Row: 7, Col: 1}, {Row: 7, Col: 2}, {Row: 7, Col: 3}}, attempt.BetweenSquares)
	require.Len(t, attempt.KingPath, 3)
	require.Len(t, attempt.RookPath, 4)
	assert.Equal(t, newRookSq, attempt.RookPath[len(attempt.RookPath)-1].Round())
}
