// Package ai drives a bot-controlled seat: it snapshots a GameState into an
// AI-friendly shape, generates candidate moves, scores them, and picks one —
// grounded on the original's StateExtractor/MoveGen/Eval/ArrivalField/Tactics
// pipeline, reshaped to consume kfcore's board and engine types directly
// instead of Python dataclasses.
package ai

import "github.com/clutchchess/kfcore/pkg/board"

// Status is a piece's situation from the bot's point of view.
type Status uint8

const (
	Idle Status = iota
	Traveling
	OnCooldown
)

// Piece is a bot-friendly view of one board.Piece, with its travel/cooldown
// situation pre-resolved so scoring never re-walks GameState.Moves.
type Piece struct {
	Piece             *board.Piece
	Status            Status
	CooldownRemaining int
	Destination       board.Square  // set when Status == Traveling and we own it
	TravelDirection   board.Pos     // unit vector, set when Status == Traveling and it's an enemy's
}

// State is a snapshot of a GameState from one player's perspective, with
// lookups pre-computed once so the rest of the pipeline never walks the
// full piece list more than necessary.
type State struct {
	Pieces      []Piece
	ByID        map[string]*Piece
	Player      board.Player
	CurrentTick int64
	Width       int
	Height      int

	movable  []*Piece
	enemies  []*Piece
	ownKing  *Piece
	enemyKing *Piece
}

// Movable returns this player's pieces that can be proposed a move this tick.
func (s *State) Movable() []*Piece { return s.movable }

// Enemies returns every non-captured piece not owned by this player.
func (s *State) Enemies() []*Piece { return s.enemies }

// OwnKing returns this player's king, or nil if already captured.
func (s *State) OwnKing() *Piece { return s.ownKing }

// EnemyKing returns an enemy king (the last one in board order; 2-player
// games have exactly one), or nil if none remain.
func (s *State) EnemyKing() *Piece { return s.enemyKing }

// Extract builds a State for the given player from a live GameState. It
// never mutates g.
func Extract(g *board.GameState, player board.Player) *State {
	s := &State{
		ByID:        map[string]*Piece{},
		Player:      player,
		CurrentTick: g.CurrentTick,
		Width:       g.Board.Width,
		Height:      g.Board.Height,
	}
	// Pre-sized so the append loop below never reallocates: every pointer
	// taken into s.Pieces must stay valid for the lifetime of this State.
	s.Pieces = make([]Piece, 0, len(g.Board.Pieces))

	moveByPiece := map[string]board.Move{}
	for _, m := range g.Moves {
		moveByPiece[m.PieceID] = m
	}

	for _, p := range g.Board.Pieces {
		if p.Captured {
			continue
		}

		ap := Piece{Piece: p}
		m, traveling := moveByPiece[p.ID]
		cd, onCooldown := g.FindCooldown(p.ID)

		switch {
		case traveling:
			ap.Status = Traveling
			to := m.To().Round()
			if p.Owner == player {
				ap.Destination = to
			} else {
				from := m.From()
				dr, dc := m.To().Row-from.Row, m.To().Col-from.Col
				length := maxF(absF(dr), absF(dc))
				if length > 0 {
					ap.TravelDirection = board.Pos{Row: dr / length, Col: dc / length}
				}
			}
		case onCooldown && cd.Active(g.CurrentTick):
			ap.Status = OnCooldown
			ap.CooldownRemaining = cd.Remaining(g.CurrentTick)
		default:
			ap.Status = Idle
		}

		s.Pieces = append(s.Pieces, ap)
		stored := &s.Pieces[len(s.Pieces)-1]
		s.ByID[p.ID] = stored

		if p.Owner == player {
			if ap.Status == Idle {
				s.movable = append(s.movable, stored)
			}
			if p.Type == board.King {
				s.ownKing = stored
			}
		} else {
			s.enemies = append(s.enemies, stored)
			if p.Type == board.King {
				s.enemyKing = stored
			}
		}
	}

	return s
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
