package board

import (
	"fmt"
	"strings"
)

// Move is an in-flight movement: a piece id, the tick it starts on, and an
// ordered list of path waypoints (each possibly fractional, as with a
// knight's midpoint). NumSquares and TotalTicks are derived from Path.
//
// ExtraMove carries the rook's parallel move during castling; it shares
// StartTick with the king move and is otherwise an ordinary Move.
type Move struct {
	PieceID   string
	StartTick int64
	Path      []Pos
	ExtraMove *Move
	Promotion PieceType // set at validation when the path ends on a promotion square; applied on completion
}

// NumSquares is the number of segments in the path (path length minus one).
func (m Move) NumSquares() int {
	if len(m.Path) == 0 {
		return 0
	}
	return len(m.Path) - 1
}

// TotalTicks is the number of ticks needed to traverse the full path.
func (m Move) TotalTicks(ticksPerSquare int) int {
	return m.NumSquares() * ticksPerSquare
}

// From is the move's origin waypoint.
func (m Move) From() Pos {
	if len(m.Path) == 0 {
		return Pos{}
	}
	return m.Path[0]
}

// To is the move's final waypoint.
func (m Move) To() Pos {
	if len(m.Path) == 0 {
		return Pos{}
	}
	return m.Path[len(m.Path)-1]
}

// EndTick is the tick at which the move's final waypoint is reached.
func (m Move) EndTick(ticksPerSquare int) int64 {
	return m.StartTick + int64(m.TotalTicks(ticksPerSquare))
}

// IsComplete reports whether the move has fully resolved by the given tick.
func (m Move) IsComplete(tick int64, ticksPerSquare int) bool {
	return tick-m.StartTick >= int64(m.TotalTicks(ticksPerSquare))
}

// Elapsed returns ticks elapsed since StartTick, clamped to [0, totalTicks].
// Before StartTick this is 0 (the move has not begun absorbing latency yet).
func (m Move) Elapsed(tick int64, ticksPerSquare int) int64 {
	if tick <= m.StartTick {
		return 0
	}
	e := tick - m.StartTick
	total := int64(m.TotalTicks(ticksPerSquare))
	if e > total {
		return total
	}
	return e
}

func (m Move) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v@%d", m.PieceID, m.StartTick)
	for _, p := range m.Path {
		fmt.Fprintf(&b, "->%v", p)
	}
	if m.ExtraMove != nil {
		fmt.Fprintf(&b, " +[%v]", m.ExtraMove)
	}
	return b.String()
}

// Cooldown marks a piece unable to issue a new move until it expires. It can
// still be captured while active.
type Cooldown struct {
	PieceID       string
	StartTick     int64
	DurationTicks int
}

// Active reports whether the cooldown still holds at the given tick.
func (c Cooldown) Active(tick int64) bool {
	return tick < c.StartTick+int64(c.DurationTicks)
}

// Remaining returns the number of ticks left on the cooldown, 0 if expired.
func (c Cooldown) Remaining(tick int64) int {
	left := c.StartTick + int64(c.DurationTicks) - tick
	if left < 0 {
		return 0
	}
	return int(left)
}

func (c Cooldown) String() string {
	return fmt.Sprintf("%v@%d+%d", c.PieceID, c.StartTick, c.DurationTicks)
}
