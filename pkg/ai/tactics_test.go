package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clutchchess/kfcore/pkg/ai"
	"github.com/clutchchess/kfcore/pkg/board"
)

func TestCaptureValueOnlyForCaptures(t *testing.T) {
	assert.Equal(t, ai.PieceValues[board.Queen], ai.CaptureValue(ai.Candidate{Category: ai.Capture, CaptureType: board.Queen}))
	assert.Zero(t, ai.CaptureValue(ai.Candidate{Category: ai.Positional}))
}

func TestDodgeProbabilityZeroForNonCaptures(t *testing.T) {
	g := emptyTwoPlayerGame(
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 0, 0))
	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	p := ai.DodgeProbability(g, ai.Candidate{Category: ai.Positional}, s, a)
	assert.Zero(t, p)
}

func TestDodgeProbabilityZeroWhenOurArrivalBeatsReaction(t *testing.T) {
	mover := board.NewPiece(board.Queen, board.Player1, 0, 6)
	target := board.NewPiece(board.Pawn, board.Player2, 0, 7)
	g := emptyTwoPlayerGame(mover, target,
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 7, 0))

	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	c := ai.Candidate{PieceID: mover.ID, To: board.Square{Row: 0, Col: 7}, Category: ai.Capture, CaptureType: board.Pawn, Piece: s.ByID[mover.ID]}
	p := ai.DodgeProbability(g, c, s, a)
	assert.Zero(t, p, "an adjacent capture lands before the target's reaction window opens")
}

func TestDodgeProbabilityPositiveWhenTargetCanStepOffTheRay(t *testing.T) {
	mover := board.NewPiece(board.Queen, board.Player1, 0, 0)
	target := board.NewPiece(board.Pawn, board.Player2, 0, 7)
	g := emptyTwoPlayerGame(mover, target,
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 7, 0))

	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	c := ai.Candidate{PieceID: mover.ID, To: board.Square{Row: 0, Col: 7}, Category: ai.Capture, CaptureType: board.Pawn, Piece: s.ByID[mover.ID]}
	p := ai.DodgeProbability(g, c, s, a)
	assert.Greater(t, p, 0.0, "a long-distance capture gives the target time to step off the attack ray")
	assert.LessOrEqual(t, p, 1.0)
}

func TestRecaptureBonusZeroWithNoTravelingEnemies(t *testing.T) {
	mover := board.NewPiece(board.Rook, board.Player1, 0, 0)
	g := emptyTwoPlayerGame(mover,
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 0, 7))

	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	c := ai.Candidate{PieceID: mover.ID, To: board.Square{Row: 0, Col: 3}, Piece: s.ByID[mover.ID]}
	assert.Zero(t, ai.RecaptureBonus(c, s, a))
}

func TestMoveSafetyZeroWithoutPieceContext(t *testing.T) {
	assert.Zero(t, ai.MoveSafety(ai.Candidate{}, &ai.State{}, &ai.ArrivalData{}, board.Standard.TicksPerSquare))
}

func TestMoveSafetyNegativeWhenLandingNearEnemyRook(t *testing.T) {
	mover := board.NewPiece(board.Rook, board.Player1, 0, 0)
	enemyRook := board.NewPiece(board.Rook, board.Player2, 4, 4)
	g := emptyTwoPlayerGame(mover, enemyRook,
		board.NewPiece(board.King, board.Player1, 7, 7),
		board.NewPiece(board.King, board.Player2, 0, 7))

	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	c := ai.Candidate{PieceID: mover.ID, To: board.Square{Row: 4, Col: 0}, Piece: s.ByID[mover.ID]}
	safety := ai.MoveSafety(c, s, a, board.Standard.TicksPerSquare)
	assert.Less(t, safety, 0.0)
}

func TestThreatenScoreZeroWithoutPieceContext(t *testing.T) {
	assert.Zero(t, ai.ThreatenScore(ai.Candidate{}, &ai.State{}, &ai.ArrivalData{}))
}

func TestThreatenScoreRewardsAttackingUndefendedPiece(t *testing.T) {
	mover := board.NewPiece(board.Rook, board.Player1, 0, 0)
	prey := board.NewPiece(board.Pawn, board.Player2, 4, 4)
	// No kings on this board: ThreatenScore treats a reachable enemy king as
	// worth a queen, which would otherwise dominate this pawn-threat check.
	g := emptyTwoPlayerGame(mover, prey)

	s := ai.Extract(g, board.Player1)
	a := ai.ComputeArrival(s, board.Standard.TicksPerSquare, board.Standard.CooldownTicks)

	c := ai.Candidate{PieceID: mover.ID, To: board.Square{Row: 4, Col: 0}, Piece: s.ByID[mover.ID]}
	score := ai.ThreatenScore(c, s, a)
	assert.Equal(t, ai.PieceValues[board.Pawn], score)
}
