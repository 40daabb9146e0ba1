// Package validate turns a (player, pieceId, destination) proposal into a
// legal Move (or a typed rejection), and enumerates legal destinations for a
// piece. It consults the current in-flight move set and cooldowns, but never
// mutates GameState.
package validate

import (
	"github.com/clutchchess/kfcore/pkg/board"
	"github.com/clutchchess/kfcore/pkg/geometry"
)

// Validate checks a proposeMove request against every precondition in order
// and, on success, returns a Move (with ExtraMove set for castling) stamped
// with StartTick = currentTick + 1. The one-tick delay absorbs transport
// latency and makes same-tick simultaneous proposals from separate clients
// resolve deterministically.
func Validate(g *board.GameState, player board.Player, pieceID string, to board.Square) (board.Move, error) {
	if g.Status != board.Playing {
		return board.Move{}, reject(ErrNotPlaying, "game is not in PLAYING status")
	}

	king := g.Board.GetKing(player)
	if king == nil || king.Captured {
		return board.Move{}, reject(ErrKingCaptured, "player %v's king is captured", player)
	}

	p := g.Board.GetPieceByID(pieceID)
	if p == nil {
		return board.Move{}, reject(ErrUnknownPiece, "no such piece: %v", pieceID)
	}
	if p.Owner != player {
		return board.Move{}, reject(ErrNotOwner, "piece %v is not owned by player %v", pieceID, player)
	}
	if p.Captured {
		return board.Move{}, reject(ErrCaptured, "piece %v is captured", pieceID)
	}
	if isMoving(g, pieceID) {
		return board.Move{}, reject(ErrAlreadyMoving, "piece %v is already in flight", pieceID)
	}
	if cd, ok := g.FindCooldown(pieceID); ok && cd.Active(g.CurrentTick) {
		return board.Move{}, reject(ErrOnCooldown, "piece %v is on cooldown", pieceID)
	}

	from := p.GridPosition()
	if from.Equals(to) {
		return board.Move{}, reject(ErrSameSquare, "destination equals origin")
	}
	if !g.Board.IsValidSquare(to) {
		return board.Move{}, reject(ErrInvalidDestination, "square %v is not on the board", to)
	}

	if kingMove, rookMove, ok := TryCastle(g, p, to); ok {
		startTick := g.CurrentTick + 1
		kingMove.StartTick = startTick
		rookMove.StartTick = startTick
		kingMove.ExtraMove = &rookMove
		return kingMove, nil
	}

	path := geometry.ComputePath(g.Board, p, to)
	if path == nil {
		return board.Move{}, reject(ErrInvalidGeometry, "no legal path for %v to %v", pieceID, to)
	}

	clear := IsPathClear(g, player, path)
	if p.Type == board.Knight {
		clear = IsKnightDestinationValid(g, player, path)
	}
	if !clear {
		return board.Move{}, reject(ErrBlocked, "path to %v is blocked", to)
	}

	return board.Move{
		PieceID:   pieceID,
		StartTick: g.CurrentTick + 1,
		Path:      path,
		Promotion: promotionType(g.Board, p, to),
	}, nil
}

func promotionType(b *board.Board, p *board.Piece, to board.Square) board.PieceType {
	if geometry.ShouldPromote(b, p, to) {
		return board.Queen
	}
	return board.NoPieceType
}
