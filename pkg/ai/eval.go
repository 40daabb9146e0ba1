package ai

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/clutchchess/kfcore/pkg/board"
)

// Noise is a seeded randomness source for nudging close-scoring candidates
// apart, so a Level-1/2 bot's choice among them isn't perfectly deterministic.
type Noise struct {
	rng *rand.Rand
}

// NewNoise creates a seeded Noise generator; tests can pass a fixed seed for
// reproducibility.
func NewNoise(seed int64) Noise {
	return Noise{rng: rand.New(rand.NewSource(seed))}
}

// Gaussian returns a zero-mean sample scaled by sigma.
func (n Noise) Gaussian(sigma float64) float64 {
	return n.rng.NormFloat64() * sigma
}

var defaultNoise = NewNoise(time.Now().UnixNano())

// PieceValues are the material weights used across scoring and tactics.
var PieceValues = map[board.PieceType]float64{
	board.Pawn:   1.0,
	board.Knight: 3.0,
	board.Bishop: 3.0,
	board.Rook:   5.0,
	board.Queen:  9.0,
	board.King:   100.0,
}

const (
	materialWeight      = 10.0
	kingDangerWeight    = 3.0
	centerControlWeight = 1.0
	developmentWeight   = 0.8
	pawnAdvanceWeight   = 0.5
	noiseSigmaFraction  = 0.35
)

// Scored pairs a Candidate with its evaluation score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// ScoreCandidates scores every candidate and returns them sorted best-first.
// With noise enabled, a Level-1/2 bot's choice among close-scoring
// candidates becomes unpredictable without distorting clearly-best moves.
func ScoreCandidates(candidates []Candidate, s *State, noise bool) []Scored {
	if len(candidates) == 0 {
		return nil
	}

	var enemyKingSq, ownKingSq board.Square
	haveEnemyKing, haveOwnKing := false, false
	if k := s.EnemyKing(); k != nil {
		enemyKingSq = k.Piece.GridPosition()
		haveEnemyKing = true
	}
	if k := s.OwnKing(); k != nil {
		ownKingSq = k.Piece.GridPosition()
		haveOwnKing = true
	}

	centerR, centerC := float64(s.Height)/2.0, float64(s.Width)/2.0
	maxDist := euclidean(0, 0, centerR, centerC)

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = Scored{Candidate: c, Score: scoreMove(c, s, enemyKingSq, haveEnemyKing, ownKingSq, haveOwnKing, centerR, centerC, maxDist)}
	}

	if noise {
		lo, hi := scored[0].Score, scored[0].Score
		for _, sc := range scored {
			if sc.Score < lo {
				lo = sc.Score
			}
			if sc.Score > hi {
				hi = sc.Score
			}
		}
		scoreRange := 1.0
		if len(scored) > 1 {
			scoreRange = hi - lo
		}
		sigma := scoreRange * noiseSigmaFraction
		if sigma < 0.1 {
			sigma = 0.1
		}
		for i := range scored {
			scored[i].Score += defaultNoise.Gaussian(sigma)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

func scoreMove(c Candidate, s *State, enemyKingSq board.Square, haveEnemyKing bool, ownKingSq board.Square, haveOwnKing bool, centerR, centerC, maxDist float64) float64 {
	var score float64
	dest := c.To

	if c.Category == Capture && c.CaptureType != board.NoPieceType {
		score += PieceValues[c.CaptureType] * materialWeight
	}

	if haveEnemyKing {
		dist := chebyshev(dest, enemyKingSq)
		switch {
		case dist <= 1:
			score += 5.0 * kingDangerWeight
		case dist <= 3:
			score += (4.0 - dist) * kingDangerWeight
		}
	}

	if c.Piece != nil {
		p := c.Piece.Piece
		from := p.GridPosition()

		if haveOwnKing {
			curDist := chebyshev(from, ownKingSq)
			newDist := chebyshev(dest, ownKingSq)
			if curDist <= 2 && newDist > curDist {
				score -= 1.0
			}
			if p.Type == board.King {
				distToCenter := euclidean(float64(dest.Row), float64(dest.Col), centerR, centerC)
				if distToCenter < 2.0 {
					score -= 2.0
				}
			}
		}

		if p.Type == board.Knight || p.Type == board.Bishop {
			if s.Player == board.Player1 && from.Row == 7 {
				score += developmentWeight
			} else if s.Player == board.Player2 && from.Row == 0 {
				score += developmentWeight
			}
		}

		if p.Type == board.Pawn {
			var advancement float64
			if s.Player == board.Player1 {
				advancement = float64(7 - dest.Row)
			} else {
				advancement = float64(dest.Row)
			}
			score += advancement * pawnAdvanceWeight * 0.1
		}
	}

	distToCenter := euclidean(float64(dest.Row), float64(dest.Col), centerR, centerC)
	score += (1.0 - distToCenter/maxDist) * centerControlWeight

	return score
}

func chebyshev(a, b board.Square) float64 {
	dr, dc := math.Abs(float64(a.Row-b.Row)), math.Abs(float64(a.Col-b.Col))
	if dr > dc {
		return dr
	}
	return dc
}

func euclidean(ar, ac, br, bc float64) float64 {
	return math.Sqrt((ar-br)*(ar-br) + (ac-bc)*(ac-bc))
}
