// Package board contains the Kung Fu Chess board representation: pieces,
// squares, moves, cooldowns, speed profiles and the observable event model.
package board

import "fmt"

// Variant selects the board layout.
type Variant uint8

const (
	TwoPlayer Variant = iota
	FourPlayer
)

func (v Variant) String() string {
	if v == FourPlayer {
		return "four_player"
	}
	return "standard"
}

// StandardBackRow is the piece order for the home rank of a 2-player board.
var StandardBackRow = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Orientation defines per-player movement direction and axis metadata for a
// 4-player board, where "forward" is not uniformly "decreasing row".
type Orientation struct {
	Forward       Square // (row delta, col delta) for one forward pawn step
	PawnHomeAxis  int    // row or col index where pawns start
	BackRowAxis   int    // row or col index for back-row pieces
	PromotionAxis int    // row or col index that triggers promotion
	Axis          string // "row" or "col" - which axis pawns advance along
}

// FourPlayerOrientations gives the orientation for each of the four seats on
// a 12x12 board: Player1 East, Player2 South, Player3 West, Player4 North.
var FourPlayerOrientations = map[Player]Orientation{
	Player1: {Forward: Square{Row: 0, Col: -1}, PawnHomeAxis: 10, BackRowAxis: 11, PromotionAxis: 2, Axis: "col"},
	Player2: {Forward: Square{Row: -1, Col: 0}, PawnHomeAxis: 10, BackRowAxis: 11, PromotionAxis: 2, Axis: "row"},
	Player3: {Forward: Square{Row: 0, Col: 1}, PawnHomeAxis: 1, BackRowAxis: 0, PromotionAxis: 9, Axis: "col"},
	Player4: {Forward: Square{Row: 1, Col: 0}, PawnHomeAxis: 1, BackRowAxis: 0, PromotionAxis: 9, Axis: "row"},
}

// Board holds the full piece roster (captured pieces stay, flagged) plus
// layout metadata. It owns no tick/move state; GameState composes a Board
// with the active Moves, Cooldowns and tick counter.
type Board struct {
	Variant Variant
	Width   int
	Height  int
	Pieces  []*Piece
}

// NewStandardBoard returns the conventional 8x8 two-player starting layout.
func NewStandardBoard() *Board {
	b := &Board{Variant: TwoPlayer, Width: 8, Height: 8}
	for col, t := range StandardBackRow {
		b.Pieces = append(b.Pieces, NewPiece(t, Player2, 0, col))
	}
	for col := 0; col < 8; col++ {
		b.Pieces = append(b.Pieces, NewPiece(Pawn, Player2, 1, col))
	}
	for col := 0; col < 8; col++ {
		b.Pieces = append(b.Pieces, NewPiece(Pawn, Player1, 6, col))
	}
	for col, t := range StandardBackRow {
		b.Pieces = append(b.Pieces, NewPiece(t, Player1, 7, col))
	}
	return b
}

// NewEmptyBoard returns a piece-less board of the given variant's dimensions,
// for campaign levels and tests built from an explicit setup string.
func NewEmptyBoard(v Variant) *Board {
	if v == FourPlayer {
		return &Board{Variant: v, Width: 12, Height: 12}
	}
	return &Board{Variant: v, Width: 8, Height: 8}
}

// Fork returns a deep copy: independent pieces, same layout. Safe to hand to
// an AI snapshot or a speculative validation pass.
func (b *Board) Fork() *Board {
	cp := &Board{Variant: b.Variant, Width: b.Width, Height: b.Height}
	cp.Pieces = make([]*Piece, len(b.Pieces))
	for i, p := range b.Pieces {
		cp.Pieces[i] = p.Clone()
	}
	return cp
}

func (b *Board) GetPieceByID(id string) *Piece {
	for _, p := range b.Pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// GetPieceAt returns the uncaptured piece at a grid square, if any.
func (b *Board) GetPieceAt(sq Square) *Piece {
	for _, p := range b.Pieces {
		if p.Captured {
			continue
		}
		if p.GridPosition().Equals(sq) {
			return p
		}
	}
	return nil
}

func (b *Board) GetPiecesForPlayer(player Player) []*Piece {
	var ret []*Piece
	for _, p := range b.Pieces {
		if p.Owner == player && !p.Captured {
			ret = append(ret, p)
		}
	}
	return ret
}

func (b *Board) GetActivePieces() []*Piece {
	var ret []*Piece
	for _, p := range b.Pieces {
		if !p.Captured {
			ret = append(ret, p)
		}
	}
	return ret
}

func (b *Board) GetKing(player Player) *Piece {
	for _, p := range b.Pieces {
		if p.Type == King && p.Owner == player && !p.Captured {
			return p
		}
	}
	return nil
}

// IsValidSquare reports whether a square is on the board, honoring the
// 2x2 cut corners of a four-player layout.
func (b *Board) IsValidSquare(sq Square) bool {
	if sq.Row < 0 || sq.Row >= b.Height || sq.Col < 0 || sq.Col >= b.Width {
		return false
	}
	if b.Variant == FourPlayer {
		if sq.Row < 2 && sq.Col < 2 {
			return false
		}
		if sq.Row < 2 && sq.Col >= b.Width-2 {
			return false
		}
		if sq.Row >= b.Height-2 && sq.Col < 2 {
			return false
		}
		if sq.Row >= b.Height-2 && sq.Col >= b.Width-2 {
			return false
		}
	}
	return true
}

func (b *Board) AddPiece(p *Piece) {
	b.Pieces = append(b.Pieces, p)
}

func (b *Board) RemovePiece(id string) bool {
	for i, p := range b.Pieces {
		if p.ID == id {
			b.Pieces = append(b.Pieces[:i], b.Pieces[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{variant=%v, %dx%d, pieces=%d}", b.Variant, b.Width, b.Height, len(b.Pieces))
}
