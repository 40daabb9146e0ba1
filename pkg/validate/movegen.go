package validate

import "github.com/clutchchess/kfcore/pkg/board"

// LegalMoves enumerates every (pieceID, destination) pair a player may
// currently propose. Instead of brute-forcing every square on the board, it
// generates per-piece candidate destinations from movement geometry alone and
// then runs each candidate through Validate, which is far cheaper than the
// reverse (a handful of candidates per piece instead of all 64 squares, or
// 144 on a 12x12 four-player board).
func LegalMoves(g *board.GameState, player board.Player) []LegalMove {
	var moves []LegalMove

	king := g.Board.GetKing(player)
	if king == nil || king.Captured {
		return moves
	}

	for _, p := range g.Board.GetPiecesForPlayer(player) {
		if p.Captured || isMoving(g, p.ID) {
			continue
		}
		if cd, ok := g.FindCooldown(p.ID); ok && cd.Active(g.CurrentTick) {
			continue
		}

		for _, to := range candidates(g, p) {
			if _, err := Validate(g, player, p.ID, to); err == nil {
				moves = append(moves, LegalMove{PieceID: p.ID, To: to})
			}
		}
	}

	return moves
}

// LegalMove is a single legal destination for a piece.
type LegalMove struct {
	PieceID string
	To      board.Square
}

var rookDirs = []board.Square{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
var bishopDirs = []board.Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
var queenDirs = append(append([]board.Square{}, rookDirs...), bishopDirs...)

var knightOffsets = []board.Square{
	{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
	{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
}

func candidates(g *board.GameState, p *board.Piece) []board.Square {
	b := g.Board
	switch p.Type {
	case board.Pawn:
		return pawnCandidates(b, p)
	case board.Knight:
		return knightCandidates(b, p)
	case board.Bishop:
		return sliderCandidates(g, p, bishopDirs)
	case board.Rook:
		return sliderCandidates(g, p, rookDirs)
	case board.Queen:
		return sliderCandidates(g, p, queenDirs)
	case board.King:
		return kingCandidates(b, p)
	default:
		return nil
	}
}

func pawnCandidates(b *board.Board, p *board.Piece) []board.Square {
	from := p.GridPosition()
	var out []board.Square

	if b.Variant != board.FourPlayer {
		direction, startRow := 1, 1
		if p.Owner == board.Player1 {
			direction, startRow = -1, 6
		}

		r := from.Row + direction
		if r >= 0 && r < b.Height {
			out = append(out, board.Square{Row: r, Col: from.Col})
		}
		if from.Row == startRow {
			r2 := from.Row + 2*direction
			if r2 >= 0 && r2 < b.Height {
				out = append(out, board.Square{Row: r2, Col: from.Col})
			}
		}
		for _, dc := range []int{-1, 1} {
			c := from.Col + dc
			dr := from.Row + direction
			if dr >= 0 && dr < b.Height && c >= 0 && c < b.Width {
				sq := board.Square{Row: dr, Col: c}
				if occ := b.GetPieceAt(sq); occ != nil && occ.Owner != p.Owner {
					out = append(out, sq)
				}
			}
		}
		return out
	}

	orient, ok := board.FourPlayerOrientations[p.Owner]
	if !ok {
		return out
	}

	r1 := board.Square{Row: from.Row + orient.Forward.Row, Col: from.Col + orient.Forward.Col}
	if b.IsValidSquare(r1) {
		out = append(out, r1)
	}

	var isStart bool
	if orient.Axis == "col" {
		isStart = from.Col == orient.PawnHomeAxis
	} else {
		isStart = from.Row == orient.PawnHomeAxis
	}
	if isStart {
		r2 := board.Square{Row: from.Row + 2*orient.Forward.Row, Col: from.Col + 2*orient.Forward.Col}
		if b.IsValidSquare(r2) {
			out = append(out, r2)
		}
	}

	if orient.Axis == "col" {
		for _, dr := range []int{-1, 1} {
			sq := board.Square{Row: from.Row + dr, Col: from.Col + orient.Forward.Col}
			if b.IsValidSquare(sq) {
				if occ := b.GetPieceAt(sq); occ != nil && occ.Owner != p.Owner {
					out = append(out, sq)
				}
			}
		}
	} else {
		for _, dc := range []int{-1, 1} {
			sq := board.Square{Row: from.Row + orient.Forward.Row, Col: from.Col + dc}
			if b.IsValidSquare(sq) {
				if occ := b.GetPieceAt(sq); occ != nil && occ.Owner != p.Owner {
					out = append(out, sq)
				}
			}
		}
	}

	return out
}

func knightCandidates(b *board.Board, p *board.Piece) []board.Square {
	from := p.GridPosition()
	var out []board.Square
	for _, off := range knightOffsets {
		sq := board.Square{Row: from.Row + off.Row, Col: from.Col + off.Col}
		if b.IsValidSquare(sq) {
			out = append(out, sq)
		}
	}
	return out
}

// sliderCandidates walks each ray direction, collecting every square up to
// and including the first stationary occupant. A moving piece is treated as
// having vacated its square and does not stop the ray.
func sliderCandidates(g *board.GameState, p *board.Piece, dirs []board.Square) []board.Square {
	b := g.Board
	from := p.GridPosition()
	var out []board.Square

	for _, d := range dirs {
		sq := board.Square{Row: from.Row + d.Row, Col: from.Col + d.Col}
		for b.IsValidSquare(sq) {
			out = append(out, sq)
			if occ := b.GetPieceAt(sq); occ != nil && !isMoving(g, occ.ID) {
				break
			}
			sq = board.Square{Row: sq.Row + d.Row, Col: sq.Col + d.Col}
		}
	}
	return out
}

func kingCandidates(b *board.Board, p *board.Piece) []board.Square {
	from := p.GridPosition()
	var out []board.Square
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			sq := board.Square{Row: from.Row + dr, Col: from.Col + dc}
			if b.IsValidSquare(sq) {
				out = append(out, sq)
			}
		}
	}

	if p.Moved {
		return out
	}

	if b.Variant != board.FourPlayer {
		for _, dc := range []int{-2, 2} {
			sq := board.Square{Row: from.Row, Col: from.Col + dc}
			if b.IsValidSquare(sq) {
				out = append(out, sq)
			}
		}
		return out
	}

	orient, ok := board.FourPlayerOrientations[p.Owner]
	if !ok {
		return out
	}
	if orient.Axis == "row" {
		for _, dc := range []int{-2, 2} {
			sq := board.Square{Row: from.Row, Col: from.Col + dc}
			if b.IsValidSquare(sq) {
				out = append(out, sq)
			}
		}
	} else {
		for _, dr := range []int{-2, 2} {
			sq := board.Square{Row: from.Row + dr, Col: from.Col}
			if b.IsValidSquare(sq) {
				out = append(out, sq)
			}
		}
	}
	return out
}
