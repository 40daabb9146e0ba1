// Package boardtext encodes and decodes the plain-text board setup format
// used by campaign levels and test fixtures: one line per row, two characters
// per square (piece type + player digit, "00" for empty).
package boardtext

import (
	"fmt"
	"strings"

	"github.com/clutchchess/kfcore/pkg/board"
)

// Decode parses a setup string into an empty board of the given variant,
// placing pieces at their specified squares. It rejects a setup string whose
// dimensions don't match the variant, that names an unknown piece letter, or
// that places a piece on one of the sixteen cut-corner squares (four 2x2
// corners) of a FourPlayer board.
func Decode(setup string, variant board.Variant) (*board.Board, error) {
	lines := nonEmptyLines(setup)

	b := board.NewEmptyBoard(variant)
	rows, cols := b.Height, b.Width

	if len(lines) != rows {
		return nil, fmt.Errorf("boardtext: expected %d rows, got %d", rows, len(lines))
	}

	for row, line := range lines {
		if len(line) != cols*2 {
			return nil, fmt.Errorf("boardtext: row %d has wrong length %d, expected %d", row, len(line), cols*2)
		}

		for col := 0; col < cols; col++ {
			cell := line[col*2 : col*2+2]
			if cell == "00" {
				continue
			}

			sq := board.Square{Row: row, Col: col}
			if !b.IsValidSquare(sq) {
				return nil, fmt.Errorf("boardtext: piece placed on cut-corner square %v", sq)
			}

			t, ok := board.ParsePieceType(rune(cell[0]))
			if !ok {
				return nil, fmt.Errorf("boardtext: unknown piece type %q at %v", cell[0], sq)
			}
			player, ok := parsePlayer(cell[1])
			if !ok {
				return nil, fmt.Errorf("boardtext: invalid player digit %q at %v", cell[1], sq)
			}

			b.AddPiece(board.NewPiece(t, player, row, col))
		}
	}

	return b, nil
}

// Encode renders a board back into setup-string form, using the piece's
// current grid position. Captured pieces are omitted.
func Encode(b *board.Board) string {
	grid := make([][]string, b.Height)
	for r := range grid {
		grid[r] = make([]string, b.Width)
		for c := range grid[r] {
			grid[r][c] = "00"
		}
	}

	for _, p := range b.GetActivePieces() {
		sq := p.GridPosition()
		grid[sq.Row][sq.Col] = fmt.Sprintf("%v%v", p.Type, uint8(p.Owner))
	}

	var sb strings.Builder
	for r, row := range grid {
		sb.WriteString(strings.Join(row, ""))
		if r < len(grid)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func nonEmptyLines(s string) []string {
	var ret []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

func parsePlayer(r byte) (board.Player, bool) {
	switch r {
	case '1':
		return board.Player1, true
	case '2':
		return board.Player2, true
	case '3':
		return board.Player3, true
	case '4':
		return board.Player4, true
	default:
		return board.NoPlayer, false
	}
}
