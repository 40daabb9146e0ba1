package ai

import (
	"math/rand"

	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/validate"
)

// Category prioritizes a Candidate for selection: captures first, then
// squares near the enemy king, then everything else.
type Category uint8

const (
	Positional Category = iota
	KingThreat
	Capture
)

// Candidate is one destination a bot could propose, tagged with enough
// context for Score to judge it without re-walking the board.
type Candidate struct {
	PieceID     string
	To          board.Square
	Category    Category
	CaptureType board.PieceType // meaningful only when Category == Capture
	Piece       *Piece
}

// GenerateCandidates mirrors the original's budget-limited candidate
// generation: pick up to maxPieces random movable pieces (captures always
// win the sort, so picking fewer pieces never hides a free capture once a
// piece is chosen), generate its legal destinations via validate.LegalMoves,
// categorize, and keep the top maxCandidatesPerPiece per piece.
func GenerateCandidates(g *board.GameState, s *State, maxPieces, maxCandidatesPerPiece int) []Candidate {
	movable := s.Movable()
	if len(movable) == 0 {
		return nil
	}

	enemyKingSq := board.Square{}
	haveEnemyKing := false
	if k := s.EnemyKing(); k != nil {
		enemyKingSq = k.Piece.GridPosition()
		haveEnemyKing = true
	}

	enemyAt := map[board.Square]board.PieceType{}
	for _, ep := range s.Enemies() {
		if ep.Status != Traveling {
			enemyAt[ep.Piece.GridPosition()] = ep.Piece.Type
		}
	}

	legal := validate.LegalMoves(g, s.Player)
	byPiece := map[string][]board.Square{}
	for _, lm := range legal {
		byPiece[lm.PieceID] = append(byPiece[lm.PieceID], lm.To)
	}

	shuffled := append([]*Piece(nil), movable...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var candidates []Candidate
	piecesUsed := 0

	for _, p := range shuffled {
		if piecesUsed >= maxPieces && len(candidates) > 0 {
			break
		}
		dests, ok := byPiece[p.Piece.ID]
		if !ok {
			continue
		}
		piecesUsed++

		perPiece := categorize(p, dests, enemyAt, enemyKingSq, haveEnemyKing)
		sortByPriority(perPiece)
		if len(perPiece) > maxCandidatesPerPiece {
			perPiece = perPiece[:maxCandidatesPerPiece]
		}
		candidates = append(candidates, perPiece...)
	}

	return candidates
}

func categorize(p *Piece, dests []board.Square, enemyAt map[board.Square]board.PieceType, enemyKingSq board.Square, haveEnemyKing bool) []Candidate {
	var out []Candidate
	for _, to := range dests {
		c := Candidate{PieceID: p.Piece.ID, To: to, Piece: p}
		switch {
		case enemyAt[to] != board.NoPieceType:
			c.Category = Capture
			c.CaptureType = enemyAt[to]
		case haveEnemyKing && isKingThreat(to, enemyKingSq):
			c.Category = KingThreat
		default:
			c.Category = Positional
		}
		out = append(out, c)
	}
	return out
}

func isKingThreat(dest, king board.Square) bool {
	dr, dc := absInt(dest.Row-king.Row), absInt(dest.Col-king.Col)
	return dr <= 2 && dc <= 2
}

func sortByPriority(cs []Candidate) {
	priority := func(c Candidate) int {
		switch c.Category {
		case Capture:
			return 0
		case KingThreat:
			return 1
		default:
			return 2
		}
	}
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && priority(cs[j]) < priority(cs[j-1]); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
