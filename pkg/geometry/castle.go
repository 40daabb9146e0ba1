package geometry

import "github.com/clutchchess/kfcore/pkg/board"

// CastleAttempt describes a candidate castling move's geometry, before any
// legality checks (rook state, path clearance, cooldowns) are applied.
type CastleAttempt struct {
	RookSquare    board.Square
	NewRookSquare board.Square
	KingPath      []board.Pos
	RookPath      []board.Pos
	// BetweenSquares lists the squares strictly between king and rook origin,
	// in board order, for the caller to check for stationary blockers.
	BetweenSquares []board.Square
}

// CastleGeometry computes the king+rook path shapes for a king moving two
// squares toward "to", given the king's current orientation. Returns false if
// "to" is not a two-square move along the board's castling axis for this
// player. It does not know where the rooks actually are on a 4-player board
// (that depends on player orientation); the caller supplies rookSquare and
// newRookSquare once it has located a candidate rook.
//
// The rook's path has one waypoint per square it actually crosses, so its
// travel time follows its real distance: kingside the rook crosses two
// squares and arrives with the king; queenside it crosses three and arrives
// one square's worth of ticks after the king.
func CastleGeometry(from, to, rookSquare, newRookSquare board.Square) CastleAttempt {
	kingPath := buildLinearPath(from, to)

	rookPath := []board.Pos{rookSquare.Pos()}
	rowDir := sign(newRookSquare.Row - rookSquare.Row)
	colDir := sign(newRookSquare.Col - rookSquare.Col)
	cur := rookSquare
	for cur != newRookSquare {
		cur = board.Square{Row: cur.Row + rowDir, Col: cur.Col + colDir}
		rookPath = append(rookPath, cur.Pos())
	}

	var between []board.Square
	if from.Row == rookSquare.Row {
		lo, hi := minInt(from.Col, rookSquare.Col)+1, maxInt(from.Col, rookSquare.Col)
		for c := lo; c < hi; c++ {
			between = append(between, board.Square{Row: from.Row, Col: c})
		}
	} else {
		lo, hi := minInt(from.Row, rookSquare.Row)+1, maxInt(from.Row, rookSquare.Row)
		for r := lo; r < hi; r++ {
			between = append(between, board.Square{Row: r, Col: from.Col})
		}
	}

	return CastleAttempt{
		RookSquare:     rookSquare,
		NewRookSquare:  newRookSquare,
		KingPath:       kingPath,
		RookPath:       rookPath,
		BetweenSquares: between,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
