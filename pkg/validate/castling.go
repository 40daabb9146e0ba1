package validate

import (
	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/geometry"
)

// TryCastle checks whether moving the king to "to" is a legal castling move
// and, if so, returns the king move and the rook's parallel extra move
// (StartTick left unset; the caller stamps both with currentTick+1).
//
// Requirements: king has not moved; king moves exactly two squares along the
// castling axis toward a same-player rook that has not moved, is not
// in-flight, and is not on cooldown; every square between them is clear of
// stationary blockers (a moving piece has vacated its square); no in-flight
// move terminates strictly between king and rook origin.
func TryCastle(g *board.GameState, king *board.Piece, to board.Square) (board.Move, board.Move, bool) {
	if king.Type != board.King || king.Moved {
		return board.Move{}, board.Move{}, false
	}

	from := king.GridPosition()

	if g.Board.Variant == board.FourPlayer {
		orient, ok := board.FourPlayerOrientations[king.Owner]
		if !ok {
			return board.Move{}, board.Move{}, false
		}
		if orient.Axis == "row" {
			return tryCastleHorizontal4P(g, king, from, to)
		}
		return tryCastleVertical4P(g, king, from, to)
	}
	return tryCastleStandard(g, king, from, to)
}

func tryCastleStandard(g *board.GameState, king *board.Piece, from, to board.Square) (board.Move, board.Move, bool) {
	if to.Row != from.Row {
		return board.Move{}, board.Move{}, false
	}
	colDiff := to.Col - from.Col
	if abs(colDiff) != 2 {
		return board.Move{}, board.Move{}, false
	}

	rookCol, newRookCol := 0, 3
	if colDiff == 2 {
		rookCol, newRookCol = 7, 5
	}
	rookSq := board.Square{Row: from.Row, Col: rookCol}
	newRookSq := board.Square{Row: from.Row, Col: newRookCol}

	return finishCastle(g, king, from, to, rookSq, newRookSq)
}

func tryCastleHorizontal4P(g *board.GameState, king *board.Piece, from, to board.Square) (board.Move, board.Move, bool) {
	if to.Row != from.Row {
		return board.Move{}, board.Move{}, false
	}
	colDiff := to.Col - from.Col
	if abs(colDiff) != 2 {
		return board.Move{}, board.Move{}, false
	}

	var rookCol, newRookCol int
	if colDiff > 0 {
		rookCol, newRookCol = 9, to.Col-1
	} else {
		rookCol, newRookCol = 2, to.Col+1
	}
	rookSq := board.Square{Row: from.Row, Col: rookCol}
	newRookSq := board.Square{Row: from.Row, Col: newRookCol}

	return finishCastle(g, king, from, to, rookSq, newRookSq)
}

func tryCastleVertical4P(g *board.GameState, king *board.Piece, from, to board.Square) (board.Move, board.Move, bool) {
	if to.Col != from.Col {
		return board.Move{}, board.Move{}, false
	}
	rowDiff := to.Row - from.Row
	if abs(rowDiff) != 2 {
		return board.Move{}, board.Move{}, false
	}

	var rookRow, newRookRow int
	if rowDiff > 0 {
		rookRow, newRookRow = 9, to.Row-1
	} else {
		rookRow, newRookRow = 2, to.Row+1
	}
	rookSq := board.Square{Row: rookRow, Col: from.Col}
	newRookSq := board.Square{Row: newRookRow, Col: from.Col}

	return finishCastle(g, king, from, to, rookSq, newRookSq)
}

func finishCastle(g *board.GameState, king *board.Piece, from, to, rookSq, newRookSq board.Square) (board.Move, board.Move, bool) {
	rook := g.Board.GetPieceAt(rookSq)
	if rook == nil || rook.Type != board.Rook || rook.Owner != king.Owner {
		return board.Move{}, board.Move{}, false
	}
	if rook.Moved {
		return board.Move{}, board.Move{}, false
	}
	if isMoving(g, rook.ID) {
		return board.Move{}, board.Move{}, false
	}
	if cd, ok := g.FindCooldown(rook.ID); ok && cd.Active(g.CurrentTick) {
		return board.Move{}, board.Move{}, false
	}

	geom := geometry.CastleGeometry(from, to, rookSq, newRookSq)

	movingIDs := map[string]bool{}
	for _, m := range g.Moves {
		movingIDs[m.PieceID] = true
	}
	for _, sq := range geom.BetweenSquares {
		if at := g.Board.GetPieceAt(sq); at != nil && !movingIDs[at.ID] {
			return board.Move{}, board.Move{}, false
		}
	}
	for _, m := range g.Moves {
		end := m.To().Round()
		if !onAxis(from, rookSq, end) {
			continue
		}
		if betweenExclusive(from, rookSq, end) {
			return board.Move{}, board.Move{}, false
		}
	}

	kingMove := board.Move{PieceID: king.ID, Path: geom.KingPath}
	rookMove := board.Move{PieceID: rook.ID, Path: geom.RookPath}
	kingMove.ExtraMove = &rookMove
	return kingMove, rookMove, true
}

func onAxis(from, rookSq, end board.Square) bool {
	if from.Row == rookSq.Row {
		return end.Row == from.Row
	}
	return end.Col == from.Col
}

func betweenExclusive(from, rookSq, end board.Square) bool {
	if from.Row == rookSq.Row {
		lo, hi := minInt(from.Col, rookSq.Col)+1, maxInt(from.Col, rookSq.Col)
		return lo <= end.Col && end.Col < hi
	}
	lo, hi := minInt(from.Row, rookSq.Row)+1, maxInt(from.Row, rookSq.Row)
	return lo <= end.Row && end.Row < hi
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
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
