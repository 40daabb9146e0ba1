// Package collision resolves captures from piece proximity during movement.
// Pieces need not land on the same square to capture one another: any two
// enemy pieces that come within CaptureDistance squares of each other while
// at least one is in flight collide, and a tie-break picks the survivor.
package collision

import (
	"math"

	"github.com/clutchchess/kfcore/pkg/board"
)

// CaptureDistance is how close (in board squares) two pieces must get before
// they collide.
const CaptureDistance = 0.4

// DefaultKnightAirborneFraction is the portion of a knight's two-square jump
// during which it is untouchable and cannot itself capture; it becomes
// visible and vulnerable again in the final stretch. Callers may override
// this per config.Settings.Collision.KnightAirborneFraction.
const DefaultKnightAirborneFraction = 0.85

// Capture is a resolved collision between two pieces. CapturingPieceID is
// empty for a mutual destruction, in which case both pieces listed across the
// returned slice die without a winner.
type Capture struct {
	CapturingPieceID string
	CapturedPieceID  string
	Position         board.Pos
}

// InterpolatedPosition returns a piece's current position, following its
// active move (if any) at the given tick. A piece with no active move simply
// reports its resting grid position.
func InterpolatedPosition(p *board.Piece, m *board.Move, tick int64, ticksPerSquare int) board.Pos {
	if m == nil {
		return p.Pos
	}

	elapsed := tick - m.StartTick
	if elapsed < 0 {
		return p.Pos
	}

	total := m.NumSquares()
	if total == 0 {
		return m.Path[0]
	}

	totalTicks := int64(total * ticksPerSquare)
	if elapsed >= totalTicks {
		return m.Path[len(m.Path)-1]
	}

	progress := float64(elapsed) / float64(ticksPerSquare)
	segment := int(progress)
	segmentProgress := progress - float64(segment)

	if segment >= total {
		return m.Path[len(m.Path)-1]
	}

	return m.Path[segment].Lerp(m.Path[segment+1], segmentProgress)
}

// KnightPosition returns a moving knight's collision position, or (_, false)
// while it is airborne (the first airborneFraction of its jump) and so
// invisible to collision detection entirely. A stationary knight always
// reports its resting position. Pass DefaultKnightAirborneFraction absent an
// overriding config value.
func KnightPosition(p *board.Piece, m *board.Move, tick int64, ticksPerSquare int, airborneFraction float64) (board.Pos, bool) {
	if m == nil {
		return p.Pos, true
	}

	elapsed := tick - m.StartTick
	if elapsed < 0 {
		return p.Pos, true
	}

	totalTicks := int64(2 * ticksPerSquare)
	threshold := float64(totalTicks) * airborneFraction
	if float64(elapsed) < threshold {
		return board.Pos{}, false
	}

	if elapsed >= totalTicks {
		return m.Path[len(m.Path)-1], true
	}

	progress := float64(elapsed) / float64(totalTicks)
	return m.Path[0].Lerp(m.Path[len(m.Path)-1], progress), true
}

// CanKnightCapture reports whether a moving knight has cleared its airborne
// window and may participate in a capture.
func CanKnightCapture(m board.Move, tick int64, ticksPerSquare int, airborneFraction float64) bool {
	elapsed := tick - m.StartTick
	totalTicks := float64(2 * ticksPerSquare)
	return float64(elapsed)/totalTicks >= airborneFraction
}

type located struct {
	piece *board.Piece
	move  *board.Move
	pos   board.Pos
}

// Detect scans every non-captured piece for collisions at the given tick and
// returns the resulting captures. Two stationary pieces never collide — at
// least one side of every checked pair is in flight.
func Detect(pieces []*board.Piece, moves []board.Move, tick int64, ticksPerSquare int, airborneFraction float64) []Capture {
	byPiece := map[string]*board.Move{}
	for i := range moves {
		byPiece[moves[i].PieceID] = &moves[i]
	}

	var moving, stationary []located
	for _, p := range pieces {
		if p.Captured {
			continue
		}
		m := byPiece[p.ID]

		var pos board.Pos
		if p.Type == board.Knight {
			var ok bool
			pos, ok = KnightPosition(p, m, tick, ticksPerSquare, airborneFraction)
			if !ok {
				continue // airborne, invisible to collision
			}
		} else {
			pos = InterpolatedPosition(p, m, tick, ticksPerSquare)
		}

		loc := located{piece: p, move: m, pos: pos}
		if m != nil {
			moving = append(moving, loc)
		} else {
			stationary = append(stationary, loc)
		}
	}

	var captures []Capture
	checkPair := func(a, b located) {
		if a.piece.Owner == b.piece.Owner {
			return
		}
		dr := a.pos.Row - b.pos.Row
		dc := a.pos.Col - b.pos.Col
		if math.Abs(dr) >= CaptureDistance || math.Abs(dc) >= CaptureDistance {
			return
		}
		if math.Sqrt(dr*dr+dc*dc) >= CaptureDistance {
			return
		}

		if a.piece.Type == board.Knight && a.move != nil && !CanKnightCapture(*a.move, tick, ticksPerSquare, airborneFraction) {
			return
		}
		if b.piece.Type == board.Knight && b.move != nil && !CanKnightCapture(*b.move, tick, ticksPerSquare, airborneFraction) {
			return
		}

		winner, loser := determineCaptureWinner(a, b)
		pos := board.Pos{Row: (a.pos.Row + b.pos.Row) / 2, Col: (a.pos.Col + b.pos.Col) / 2}

		switch {
		case winner != nil && loser != nil:
			captures = append(captures, Capture{CapturingPieceID: winner.ID, CapturedPieceID: loser.ID, Position: pos})
		case winner == nil && loser == nil:
			captures = append(captures,
				Capture{CapturedPieceID: a.piece.ID, Position: pos},
				Capture{CapturedPieceID: b.piece.ID, Position: pos},
			)
		}
	}

	for i, a := range moving {
		for _, b := range moving[i+1:] {
			checkPair(a, b)
		}
	}
	for _, a := range moving {
		for _, b := range stationary {
			checkPair(a, b)
		}
	}

	return captures
}

// determineCaptureWinner applies the tie-break rules: a pawn moving straight
// cannot capture (only be captured); if neither side of a pair can capture,
// the earlier-starting one survives (same tick: both die); if exactly one
// side can capture, it wins; if both can, a moving piece beats a stationary
// one and, between two moving pieces, the earlier StartTick wins (same tick:
// mutual destruction).
func determineCaptureWinner(a, b located) (winner, loser *board.Piece) {
	aCanCapture := canCapture(a)
	bCanCapture := canCapture(b)

	if !aCanCapture && !bCanCapture {
		if a.move != nil && b.move != nil {
			switch {
			case a.move.StartTick < b.move.StartTick:
				return a.piece, b.piece
			case b.move.StartTick < a.move.StartTick:
				return b.piece, a.piece
			}
		}
		return nil, nil
	}
	if aCanCapture && !bCanCapture {
		return a.piece, b.piece
	}
	if bCanCapture && !aCanCapture {
		return b.piece, a.piece
	}

	aMoving, bMoving := a.move != nil, b.move != nil
	if aMoving && !bMoving {
		return a.piece, b.piece
	}
	if bMoving && !aMoving {
		return b.piece, a.piece
	}
	if !aMoving && !bMoving {
		return nil, nil
	}

	switch {
	case a.move.StartTick < b.move.StartTick:
		return a.piece, b.piece
	case b.move.StartTick < a.move.StartTick:
		return b.piece, a.piece
	default:
		return nil, nil
	}
}

func canCapture(l located) bool {
	return !isPawnMovingStraight(l)
}

func isPawnMovingStraight(l located) bool {
	if l.piece.Type != board.Pawn || l.move == nil || len(l.move.Path) < 2 {
		return false
	}
	start := l.move.Path[0]
	end := l.move.Path[len(l.move.Path)-1]
	return start.Col == end.Col
}
