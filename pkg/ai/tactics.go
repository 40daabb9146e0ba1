package ai

import (
	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/validate"
)

// CaptureValue is the raw material value of a capture candidate, 0 for a
// non-capture. Recapture risk is priced separately by MoveSafety.
func CaptureValue(c Candidate) float64 {
	if c.Category != Capture {
		return 0
	}
	return PieceValues[c.CaptureType]
}

// DodgeProbability estimates (0..1) the chance a capture target escapes
// before we land, using its cooldown, reaction time, our travel time, and
// how many of its legal moves step off our attack ray (two or more such
// escapes count as fully open).
func DodgeProbability(g *board.GameState, c Candidate, s *State, a *ArrivalData) float64 {
	if c.Category != Capture || c.Piece == nil {
		return 0
	}

	var target *Piece
	for _, ep := range s.Enemies() {
		if ep.Status != Traveling && ep.Piece.GridPosition() == c.To {
			target = ep
			break
		}
	}
	if target == nil {
		return 0
	}

	from := c.Piece.Piece.GridPosition()
	ourArrival := computeTravelTicks(from, c.To, c.Piece.Piece.Type, a.TicksPerSquare)

	dodgeStart := target.CooldownRemaining + a.ReactionTicks
	if dodgeStart >= ourArrival {
		return 0
	}

	escapes := escapeSquares(g, target.Piece.Owner, target.Piece.ID)
	if len(escapes) == 0 {
		return 0
	}

	attackDr, attackDc := c.To.Row-from.Row, c.To.Col-from.Col
	dodgeCount := 0
	for _, e := range escapes {
		escapeDr, escapeDc := e.Row-c.To.Row, e.Col-c.To.Col
		if isAlongAttackRay(escapeDr, escapeDc, attackDr, attackDc) {
			continue
		}
		dodgeCount++
	}
	if dodgeCount == 0 {
		return 0
	}

	dodgeWindow := ourArrival - dodgeStart
	timeFactor := float64(dodgeWindow) / float64(2*a.TicksPerSquare)
	if timeFactor > 1 {
		timeFactor = 1
	}
	escapeFactor := float64(dodgeCount) / 2.0
	if escapeFactor > 1 {
		escapeFactor = 1
	}
	return timeFactor * escapeFactor
}

func escapeSquares(g *board.GameState, owner board.Player, pieceID string) []board.Square {
	var out []board.Square
	for _, lm := range validate.LegalMoves(g, owner) {
		if lm.PieceID == pieceID {
			out = append(out, lm.To)
		}
	}
	return out
}

func isAlongAttackRay(escapeDr, escapeDc, attackDr, attackDc int) bool {
	if escapeDr == 0 && escapeDc == 0 {
		return true
	}
	if attackDr == 0 && attackDc == 0 {
		return false
	}
	ar, ac := sign(attackDr), sign(attackDc)
	er, ec := sign(escapeDr), sign(escapeDc)
	return er == ar && ec == ac
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

// RecaptureBonus rewards moves that position us to recapture an enemy piece
// already traveling toward one of ours, once it lands and enters cooldown.
func RecaptureBonus(c Candidate, s *State, a *ArrivalData) float64 {
	if c.Piece == nil {
		return 0
	}

	ownAt := map[board.Square]bool{}
	for _, op := range ownPieces(s) {
		ownAt[op.Piece.GridPosition()] = true
	}

	best := 0.0
	limit := s.Width
	if s.Height > limit {
		limit = s.Height
	}

	for _, ep := range s.Enemies() {
		if ep.Status != Traveling || (ep.TravelDirection.Row == 0 && ep.TravelDirection.Col == 0) {
			continue
		}
		var targetPos board.Square
		travelDist := 0
		found := false
		for dist := 1; dist < limit; dist++ {
			sr := int(ep.Piece.Pos.Row + ep.TravelDirection.Row*float64(dist))
			sc := int(ep.Piece.Pos.Col + ep.TravelDirection.Col*float64(dist))
			if sr < 0 || sr >= s.Height || sc < 0 || sc >= s.Width {
				break
			}
			sq := board.Square{Row: sr, Col: sc}
			if ownAt[sq] {
				targetPos, travelDist, found = sq, dist, true
				break
			}
		}
		if !found {
			continue
		}

		enemyRemainingTravel := travelDist * a.TicksPerSquare
		enemyVulnerableUntil := enemyRemainingTravel + a.CooldownTicks

		from := c.Piece.Piece.GridPosition()
		ourTravelToDest := computeTravelTicks(from, c.To, c.Piece.Piece.Type, a.TicksPerSquare)
		recaptureTravel := computeTravelTicks(c.To, targetPos, c.Piece.Piece.Type, a.TicksPerSquare)
		ourRecaptureArrival := ourTravelToDest + a.CooldownTicks + a.ReactionTicks + recaptureTravel

		if ourRecaptureArrival < enemyVulnerableUntil {
			if v := PieceValues[ep.Piece.Type]; v > best {
				best = v
			}
		}
	}

	return best
}

func ownPieces(s *State) []*Piece {
	var out []*Piece
	for i := range s.Pieces {
		if s.Pieces[i].Piece.Owner == s.Player && s.Pieces[i].Status != Traveling {
			out = append(out, &s.Pieces[i])
		}
	}
	return out
}

// MoveSafety returns a value <= 0: the expected material loss from recapture
// after landing on the candidate's destination, interpolated linearly from
// the post-arrival safety margin.
func MoveSafety(c Candidate, s *State, a *ArrivalData, tickRate int) float64 {
	if c.Piece == nil {
		return 0
	}
	ourValue := PieceValues[c.Piece.Piece.Type]

	excludeID := ""
	if c.Category == Capture {
		for _, ep := range s.Enemies() {
			if ep.Status != Traveling && ep.Piece.GridPosition() == c.To {
				excludeID = ep.Piece.ID
				break
			}
		}
	}

	from := c.Piece.Piece.GridPosition()
	travelTicks := computeTravelTicks(from, c.To, c.Piece.Piece.Type, a.TicksPerSquare)
	margin := a.PostArrivalSafety(c.To, travelTicks, excludeID, &from)

	if margin >= tickRate {
		return 0
	}
	recaptureProb := 1.0 - float64(margin)/float64(tickRate)
	if recaptureProb > 1 {
		recaptureProb = 1
	}
	if recaptureProb < 0 {
		recaptureProb = 0
	}
	return -recaptureProb * ourValue
}

// ThreatenScore returns the value of the best stationary enemy piece that
// cannot reach our destination before our follow-up attack (landing,
// cooldown, then travel to it) would. The follow-up travel is estimated from
// the Chebyshev distance alone: whether our piece type can actually attack
// that enemy from the destination (line, diagonal, L-jump, blockers) is not
// checked. An enemy king is valued as a queen.
func ThreatenScore(c Candidate, s *State, a *ArrivalData) float64 {
	if c.Piece == nil {
		return 0
	}
	from := c.Piece.Piece.GridPosition()
	ourType := c.Piece.Piece.Type
	ourTravel := computeTravelTicks(from, c.To, ourType, a.TicksPerSquare)

	best := 0.0
	for _, ep := range s.Enemies() {
		if ep.Status == Traveling {
			continue
		}
		epPos := ep.Piece.GridPosition()
		if epPos == c.To {
			continue
		}

		attackTravel := computeTravelTicks(c.To, epPos, ourType, a.TicksPerSquare)
		ourAttackTime := ourTravel + a.CooldownTicks + attackTravel

		enemyToDest := InfTicks
		if times, ok := a.EnemyByPiece[ep.Piece.ID]; ok {
			if t, ok := times[c.To]; ok {
				enemyToDest = t
			}
		}
		if enemyToDest <= ourAttackTime {
			continue
		}

		value := PieceValues[ep.Piece.Type]
		if ep.Piece.Type == board.King {
			value = PieceValues[board.Queen]
		}
		if value > best {
			best = value
		}
	}
	return best
}
