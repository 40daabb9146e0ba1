package ai

import (
	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/config"
)

// InfTicks marks an unreachable square.
const InfTicks = 999_999

// reactionSeconds is how long a piece needs, once its cooldown expires, to
// see an incoming threat and issue a dodge move; ComputeArrival converts it
// to ArrivalData.ReactionTicks at the configured tick rate.
const reactionSeconds = 1.0

// ArrivalData holds, for both sides, the minimum ticks needed to reach each
// square — the basis for judging whether a square is safe to land on.
type ArrivalData struct {
	Our   map[board.Square]int
	Enemy map[board.Square]int
	// EnemyByPiece supports excluding one enemy piece (e.g. one we just
	// captured) when judging recapture risk.
	EnemyByPiece map[string]map[board.Square]int

	TicksPerSquare int
	CooldownTicks  int
	ReactionTicks  int

	occupied map[board.Square]bool
	enemies  []*Piece
	width    int
	height   int
}

// EnemyTimeExcluding returns the fastest remaining enemy arrival at a
// square, ignoring one piece id.
func (a *ArrivalData) EnemyTimeExcluding(sq board.Square, excludeID string) int {
	best := InfTicks
	for pid, times := range a.EnemyByPiece {
		if pid == excludeID {
			continue
		}
		if t, ok := times[sq]; ok && t < best {
			best = t
		}
	}
	return best
}

// PostArrivalSafety returns the safety margin (positive = safe) for landing
// on sq after travelTicks, excluding one enemy (the piece just captured,
// if any) and treating movingFrom as vacated so our own piece can't
// self-block a slider's ray toward sq.
func (a *ArrivalData) PostArrivalSafety(sq board.Square, travelTicks int, excludeID string, movingFrom *board.Square) int {
	var enemyT int
	switch {
	case movingFrom != nil && len(a.enemies) > 0:
		enemyT = a.recomputeEnemyTime(sq, *movingFrom, excludeID)
	case excludeID != "":
		enemyT = a.EnemyTimeExcluding(sq, excludeID)
	default:
		if t, ok := a.Enemy[sq]; ok {
			enemyT = t
		} else {
			enemyT = InfTicks
		}
	}
	vulnerableUntil := travelTicks + a.CooldownTicks + a.ReactionTicks
	return enemyT - vulnerableUntil
}

func (a *ArrivalData) recomputeEnemyTime(sq, unblocked board.Square, excludeID string) int {
	modified := map[board.Square]bool{}
	for k, v := range a.occupied {
		modified[k] = v
	}
	delete(modified, unblocked)

	best := InfTicks
	seen := map[string]bool{}
	for _, ep := range a.enemies {
		if excludeID != "" && ep.Piece.ID == excludeID {
			continue
		}
		seen[ep.Piece.ID] = true
		t := pieceArrivalTime(ep, sq, a.TicksPerSquare, a.CooldownTicks, modified, a.width, a.height)
		if t < best {
			best = t
		}
	}
	for pid, times := range a.EnemyByPiece {
		if excludeID != "" && pid == excludeID {
			continue
		}
		if seen[pid] {
			continue
		}
		if t, ok := times[sq]; ok && t < best {
			best = t
		}
	}
	return best
}

// ComputeArrival builds the arrival-time field for both sides over every
// square on the board.
func ComputeArrival(s *State, ticksPerSquare, cooldownTicks int) *ArrivalData {
	occupied := map[board.Square]bool{}
	for i := range s.Pieces {
		ap := &s.Pieces[i]
		if ap.Status != Traveling {
			occupied[ap.Piece.GridPosition()] = true
		}
	}

	var own, enemies []*Piece
	for i := range s.Pieces {
		ap := &s.Pieces[i]
		if ap.Status == Traveling {
			continue
		}
		if ap.Piece.Owner == s.Player {
			own = append(own, ap)
		} else {
			enemies = append(enemies, ap)
		}
	}

	var squares []board.Square
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			squares = append(squares, board.Square{Row: r, Col: c})
		}
	}

	our := map[board.Square]int{}
	for _, sq := range squares {
		best := InfTicks
		for _, p := range own {
			if t := pieceArrivalTime(p, sq, ticksPerSquare, cooldownTicks, occupied, s.Width, s.Height); t < best {
				best = t
			}
		}
		our[sq] = best
	}

	enemyByPiece := map[string]map[board.Square]int{}
	enemy := map[board.Square]int{}
	for _, sq := range squares {
		enemy[sq] = InfTicks
	}
	for _, ep := range enemies {
		times := map[board.Square]int{}
		for _, sq := range squares {
			t := pieceArrivalTime(ep, sq, ticksPerSquare, cooldownTicks, occupied, s.Width, s.Height)
			times[sq] = t
			if t < enemy[sq] {
				enemy[sq] = t
			}
		}
		enemyByPiece[ep.Piece.ID] = times
	}

	// Traveling enemy pieces are committed moves that will land; project
	// their remaining path onto the field too.
	for i := range s.Pieces {
		ep := &s.Pieces[i]
		if ep.Status != Traveling || ep.Piece.Owner == s.Player {
			continue
		}
		if ep.TravelDirection.Row == 0 && ep.TravelDirection.Col == 0 {
			continue
		}
		from := ep.Piece.Pos
		times := map[board.Square]int{}
		limit := s.Width
		if s.Height > limit {
			limit = s.Height
		}
		for dist := 0; dist < limit; dist++ {
			sr := int(from.Row + ep.TravelDirection.Row*float64(dist))
			sc := int(from.Col + ep.TravelDirection.Col*float64(dist))
			if sr < 0 || sr >= s.Height || sc < 0 || sc >= s.Width {
				break
			}
			sq := board.Square{Row: sr, Col: sc}
			t := dist * ticksPerSquare
			times[sq] = t
			if t < enemy[sq] {
				enemy[sq] = t
			}
		}
		enemyByPiece[ep.Piece.ID] = times
	}

	return &ArrivalData{
		Our: our, Enemy: enemy, EnemyByPiece: enemyByPiece,
		TicksPerSquare: ticksPerSquare, CooldownTicks: cooldownTicks,
		ReactionTicks: int(reactionSeconds * tickRateHz()),
		occupied:      occupied, enemies: enemies, width: s.Width, height: s.Height,
	}
}

// tickRateHz matches the configured tick rate used to convert the reaction
// window from seconds to ticks; it has no effect on simulation correctness,
// only on how conservative the bot's dodge-window estimate is.
func tickRateHz() float64 { return float64(config.Settings.Engine.TickRateHz) }

func pieceArrivalTime(ap *Piece, target board.Square, tps, cdTicks int, occupied map[board.Square]bool, w, h int) int {
	pos := ap.Piece.GridPosition()
	if pos == target {
		return ap.CooldownRemaining
	}
	baseDelay := ap.CooldownRemaining

	switch ap.Piece.Type {
	case board.Rook:
		return sliderTimeRook(pos, target, tps, baseDelay, occupied)
	case board.Bishop:
		return sliderTimeBishop(pos, target, tps, baseDelay, occupied)
	case board.Queen:
		rt := sliderTimeRook(pos, target, tps, baseDelay, occupied)
		bt := sliderTimeBishop(pos, target, tps, baseDelay, occupied)
		if bt < rt {
			return bt
		}
		return rt
	case board.Knight:
		return knightTime(pos, target, tps, baseDelay, cdTicks, w, h)
	case board.King:
		return kingTime(pos, target, tps, baseDelay)
	case board.Pawn:
		return pawnTime(ap, target, tps, baseDelay, w > 8)
	}
	return InfTicks
}

func sliderTimeRook(pos, target board.Square, tps, baseDelay int, occupied map[board.Square]bool) int {
	if pos.Row == target.Row {
		if pathClearHorizontal(pos.Row, pos.Col, target.Col, occupied) {
			return baseDelay + absInt(target.Col-pos.Col)*tps
		}
	} else if pos.Col == target.Col {
		if pathClearVertical(pos.Col, pos.Row, target.Row, occupied) {
			return baseDelay + absInt(target.Row-pos.Row)*tps
		}
	}
	return InfTicks
}

func sliderTimeBishop(pos, target board.Square, tps, baseDelay int, occupied map[board.Square]bool) int {
	dr, dc := absInt(target.Row-pos.Row), absInt(target.Col-pos.Col)
	if dr == dc && dr > 0 && pathClearDiagonal(pos, target, occupied) {
		return baseDelay + dr*tps
	}
	return InfTicks
}

func pathClearHorizontal(row, fromCol, toCol int, occupied map[board.Square]bool) bool {
	step := 1
	if toCol < fromCol {
		step = -1
	}
	for c := fromCol + step; c != toCol; c += step {
		if occupied[board.Square{Row: row, Col: c}] {
			return false
		}
	}
	return true
}

func pathClearVertical(col, fromRow, toRow int, occupied map[board.Square]bool) bool {
	step := 1
	if toRow < fromRow {
		step = -1
	}
	for r := fromRow + step; r != toRow; r += step {
		if occupied[board.Square{Row: r, Col: col}] {
			return false
		}
	}
	return true
}

func pathClearDiagonal(pos, target board.Square, occupied map[board.Square]bool) bool {
	dr, dc := 1, 1
	if target.Row < pos.Row {
		dr = -1
	}
	if target.Col < pos.Col {
		dc = -1
	}
	r, c := pos.Row+dr, pos.Col+dc
	for r != target.Row || c != target.Col {
		if occupied[board.Square{Row: r, Col: c}] {
			return false
		}
		r += dr
		c += dc
	}
	return true
}

var knightOffsetsAI = []board.Square{
	{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
	{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
}

func knightTime(pos, target board.Square, tps, baseDelay, cdTicks, w, h int) int {
	moveTicks := 2 * tps
	dr, dc := absInt(target.Row-pos.Row), absInt(target.Col-pos.Col)
	if (dr == 1 && dc == 2) || (dr == 2 && dc == 1) {
		return baseDelay + moveTicks
	}
	for _, off := range knightOffsetsAI {
		mr, mc := pos.Row+off.Row, pos.Col+off.Col
		if mr < 0 || mr >= h || mc < 0 || mc >= w {
			continue
		}
		dr2, dc2 := absInt(target.Row-mr), absInt(target.Col-mc)
		if (dr2 == 1 && dc2 == 2) || (dr2 == 2 && dc2 == 1) {
			return baseDelay + moveTicks + cdTicks + moveTicks
		}
	}
	return InfTicks
}

func kingTime(pos, target board.Square, tps, baseDelay int) int {
	dr, dc := absInt(target.Row-pos.Row), absInt(target.Col-pos.Col)
	if dr <= 1 && dc <= 1 {
		dist := dr
		if dc > dist {
			dist = dc
		}
		return baseDelay + dist*tps
	}
	return InfTicks
}

func pawnForward(player board.Player, is4p bool) board.Square {
	if is4p {
		if o, ok := board.FourPlayerOrientations[player]; ok {
			return o.Forward
		}
		return board.Square{Row: -1, Col: 0}
	}
	if player == board.Player1 {
		return board.Square{Row: -1, Col: 0}
	}
	return board.Square{Row: 1, Col: 0}
}

func pawnTime(ap *Piece, target board.Square, tps, baseDelay int, is4p bool) int {
	pos := ap.Piece.GridPosition()
	f := pawnForward(ap.Piece.Owner, is4p)
	dr, dc := target.Row-pos.Row, target.Col-pos.Col

	if dr == f.Row && dc == f.Col {
		return baseDelay + tps
	}
	if dr == 2*f.Row && dc == 2*f.Col && !ap.Piece.Moved {
		return baseDelay + 2*tps
	}
	if f.Row != 0 {
		if dr == f.Row && absInt(dc) == 1 {
			return baseDelay + tps
		}
	} else {
		if dc == f.Col && absInt(dr) == 1 {
			return baseDelay + tps
		}
	}
	return InfTicks
}

// computeTravelTicks is the single-move travel time for a piece between two
// squares, used by the tactics layer to judge races without a full
// ArrivalData recompute.
func computeTravelTicks(from, to board.Square, t board.PieceType, tps int) int {
	dr, dc := absInt(to.Row-from.Row), absInt(to.Col-from.Col)
	switch t {
	case board.Knight:
		return 2 * tps
	case board.King:
		dist := dr
		if dc > dist {
			dist = dc
		}
		return dist * tps
	default:
		dist := dr
		if dc > dist {
			dist = dc
		}
		return dist * tps
	}
}
