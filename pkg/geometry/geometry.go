// Package geometry computes the raw movement path for a piece moving to a
// destination square: the geometric shape of the move (straight line,
// L-jump, diagonal...) without regard to in-flight blockers, which is
// pkg/validate's job. Pawn geometry is the one exception that must consult
// board occupancy directly, since "is this a straight advance or a diagonal
// capture" is itself geometric.
package geometry

import "github.com/clutchchess/kfcore/pkg/board"

// ComputePath returns the path a piece would take to reach "to", or nil if
// the move is not geometrically valid for that piece type. The returned path
// always starts with the piece's current grid position and ends with "to".
func ComputePath(b *board.Board, p *board.Piece, to board.Square) []board.Pos {
	from := p.GridPosition()
	if from.Equals(to) {
		return nil
	}
	if !b.IsValidSquare(to) {
		return nil
	}

	switch p.Type {
	case board.Pawn:
		return pawnPath(b, p, from, to)
	case board.Knight:
		return knightPath(from, to)
	case board.Bishop:
		return bishopPath(from, to)
	case board.Rook:
		return rookPath(from, to)
	case board.Queen:
		return queenPath(from, to)
	case board.King:
		return kingPath(from, to)
	default:
		return nil
	}
}

func pawnPath(b *board.Board, p *board.Piece, from, to board.Square) []board.Pos {
	if b.Variant == board.FourPlayer {
		return pawnPath4P(b, p, from, to)
	}

	direction := 1
	startRow := 1
	if p.Owner == board.Player1 {
		direction = -1
		startRow = 6
	}

	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col

	if colDiff == 0 {
		if rowDiff == direction {
			if b.GetPieceAt(to) != nil {
				return nil
			}
			return straight(from, to)
		}
		if rowDiff == 2*direction && from.Row == startRow {
			mid := board.Square{Row: from.Row + direction, Col: from.Col}
			if b.GetPieceAt(mid) != nil || b.GetPieceAt(to) != nil {
				return nil
			}
			return []board.Pos{from.Pos(), mid.Pos(), to.Pos()}
		}
	}

	if abs(colDiff) == 1 && rowDiff == direction {
		target := b.GetPieceAt(to)
		if target == nil || target.Owner == p.Owner {
			return nil
		}
		return straight(from, to)
	}

	return nil
}

func pawnPath4P(b *board.Board, p *board.Piece, from, to board.Square) []board.Pos {
	orient, ok := board.FourPlayerOrientations[p.Owner]
	if !ok {
		return nil
	}

	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col

	var isAtStart bool
	var forwardDiff, lateralDiff, forwardDir int
	if orient.Axis == "col" {
		isAtStart = from.Col == orient.PawnHomeAxis
		forwardDiff, lateralDiff, forwardDir = colDiff, rowDiff, orient.Forward.Col
	} else {
		isAtStart = from.Row == orient.PawnHomeAxis
		forwardDiff, lateralDiff, forwardDir = rowDiff, colDiff, orient.Forward.Row
	}

	if lateralDiff == 0 {
		if forwardDiff == forwardDir {
			if b.GetPieceAt(to) != nil {
				return nil
			}
			return straight(from, to)
		}
		if forwardDiff == 2*forwardDir && isAtStart {
			mid := board.Square{Row: from.Row + orient.Forward.Row, Col: from.Col + orient.Forward.Col}
			if b.GetPieceAt(mid) != nil || b.GetPieceAt(to) != nil {
				return nil
			}
			return []board.Pos{from.Pos(), mid.Pos(), to.Pos()}
		}
	}

	if forwardDiff == forwardDir && abs(lateralDiff) == 1 {
		target := b.GetPieceAt(to)
		if target == nil || target.Owner == p.Owner {
			return nil
		}
		return straight(from, to)
	}

	return nil
}

// ShouldPromote reports whether a pawn landing on "at" should promote.
func ShouldPromote(b *board.Board, p *board.Piece, at board.Square) bool {
	if p.Type != board.Pawn {
		return false
	}
	if b.Variant != board.FourPlayer {
		promotionRow := 7
		if p.Owner == board.Player1 {
			promotionRow = 0
		}
		return at.Row == promotionRow
	}

	orient, ok := board.FourPlayerOrientations[p.Owner]
	if !ok {
		return false
	}
	if orient.Axis == "col" {
		return at.Col == orient.PromotionAxis
	}
	return at.Row == orient.PromotionAxis
}

func knightPath(from, to board.Square) []board.Pos {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if !((rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)) {
		return nil
	}

	mid := board.Pos{
		Row: (float64(from.Row) + float64(to.Row)) / 2.0,
		Col: (float64(from.Col) + float64(to.Col)) / 2.0,
	}
	return []board.Pos{from.Pos(), mid, to.Pos()}
}

func bishopPath(from, to board.Square) []board.Pos {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if abs(rowDiff) != abs(colDiff) || rowDiff == 0 {
		return nil
	}
	return buildLinearPath(from, to)
}

func rookPath(from, to board.Square) []board.Pos {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if rowDiff != 0 && colDiff != 0 {
		return nil
	}
	if rowDiff == 0 && colDiff == 0 {
		return nil
	}
	return buildLinearPath(from, to)
}

func queenPath(from, to board.Square) []board.Pos {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if abs(rowDiff) == abs(colDiff) && rowDiff != 0 {
		return buildLinearPath(from, to)
	}
	if (rowDiff == 0) != (colDiff == 0) {
		return buildLinearPath(from, to)
	}
	return nil
}

func kingPath(from, to board.Square) []board.Pos {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if rowDiff <= 1 && colDiff <= 1 && (rowDiff > 0 || colDiff > 0) {
		return straight(from, to)
	}
	return nil
}

// buildLinearPath walks from "from" to "to" one square at a time, including
// every intermediate square, matching the ray's direction on each axis.
func buildLinearPath(from, to board.Square) []board.Pos {
	path := []board.Pos{from.Pos()}

	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	cur := from
	for cur != to {
		cur = board.Square{Row: cur.Row + rowDir, Col: cur.Col + colDir}
		path = append(path, cur.Pos())
	}
	return path
}

func straight(from, to board.Square) []board.Pos {
	return []board.Pos{from.Pos(), to.Pos()}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
