package validate

import "github.com/clutchchess/kfcore/pkg/board"

// ForwardPath returns the integer waypoints of a Move the piece has not yet
// reached as of the given tick. Fractional knight midpoints are excluded:
// an airborne knight blocks nothing. A move that hasn't started yet (tick <
// StartTick) has its entire path, less the origin, as forward path.
func ForwardPath(m board.Move, tick int64, ticksPerSquare int) []board.Square {
	if len(m.Path) < 2 {
		return nil
	}

	if tick < m.StartTick {
		return integerWaypoints(m.Path[1:])
	}

	elapsed := tick - m.StartTick
	total := int64(m.TotalTicks(ticksPerSquare))
	if elapsed >= total {
		return nil
	}

	segment := int(elapsed) / ticksPerSquare
	return integerWaypoints(m.Path[segment+1:])
}

func integerWaypoints(path []board.Pos) []board.Square {
	var ret []board.Square
	for _, p := range path {
		if p.Row == float64(int(p.Row)) && p.Col == float64(int(p.Col)) {
			ret = append(ret, board.Square{Row: int(p.Row), Col: int(p.Col)})
		}
	}
	return ret
}

// ownForwardPath unions the forward-path squares of every active move
// belonging to the given player.
func ownForwardPath(g *board.GameState, player board.Player) map[board.Square]bool {
	set := map[board.Square]bool{}
	for _, m := range g.Moves {
		p := g.Board.GetPieceByID(m.PieceID)
		if p == nil || p.Owner != player {
			continue
		}
		for _, sq := range ForwardPath(m, g.CurrentTick, g.Speed.TicksPerSquare) {
			set[sq] = true
		}
	}
	return set
}

// isMoving reports whether a piece id has an active move.
func isMoving(g *board.GameState, pieceID string) bool {
	_, ok := g.FindMove(pieceID)
	return ok
}

// IsPathClear applies the blocking rules to a non-knight path: stationary
// pieces (own or enemy) block; an own piece's not-yet-traversed forward path
// blocks; a moving piece's vacated origin does not block; enemy moving
// pieces never block (they cannot be captured mid-flight by bumping into
// their start square — that's the collision resolver's job, not ours).
func IsPathClear(g *board.GameState, player board.Player, path []board.Pos) bool {
	forward := ownForwardPath(g, player)

	for _, p := range path[1 : len(path)-1] {
		sq := p.Round()
		if blocked := squareBlocked(g, player, sq, forward); blocked {
			return false
		}
	}

	if len(path) >= 2 {
		dest := path[len(path)-1].Round()
		at := g.Board.GetPieceAt(dest)
		if at != nil && !isMoving(g, at.ID) && at.Owner == player {
			return false
		}
		if forward[dest] {
			return false
		}
	}
	return true
}

func squareBlocked(g *board.GameState, player board.Player, sq board.Square, forward map[board.Square]bool) bool {
	at := g.Board.GetPieceAt(sq)
	if at != nil && !isMoving(g, at.ID) {
		return true // stationary piece of any owner blocks
	}
	return forward[sq]
}

// IsKnightDestinationValid applies the knight-specific rule: knights jump
// over everything, but still can't land on their own stationary piece or
// their own forward path.
func IsKnightDestinationValid(g *board.GameState, player board.Player, path []board.Pos) bool {
	forward := ownForwardPath(g, player)
	dest := path[len(path)-1].Round()

	at := g.Board.GetPieceAt(dest)
	if at != nil && !isMoving(g, at.ID) && at.Owner == player {
		return false
	}
	return !forward[dest]
}
