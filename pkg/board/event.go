package board

import "fmt"

// EventKind discriminates the Event sum type. The reference implementation
// carries events as untyped dictionaries; this is the typed replacement.
type EventKind uint8

const (
	MoveStartedEvent EventKind = iota
	MoveCompletedEvent
	CaptureEvent
	CooldownStartedEvent
	PromotionEvent
	GameOverEvent
	DrawEvent
)

func (k EventKind) String() string {
	switch k {
	case MoveStartedEvent:
		return "MOVE_STARTED"
	case MoveCompletedEvent:
		return "MOVE_COMPLETED"
	case CaptureEvent:
		return "CAPTURE"
	case CooldownStartedEvent:
		return "COOLDOWN_STARTED"
	case PromotionEvent:
		return "PROMOTION"
	case GameOverEvent:
		return "GAME_OVER"
	case DrawEvent:
		return "DRAW"
	default:
		return "?"
	}
}

// Event is a discriminated sum over the tick simulator's observable outputs.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	MoveStarted   *MoveStartedPayload
	MoveCompleted *MoveCompletedPayload
	Capture       *CapturePayload
	CooldownStart *CooldownStartedPayload
	Promotion     *PromotionPayload
	GameOver      *GameOverPayload
	Draw          *DrawPayload
}

type MoveStartedPayload struct {
	PieceID   string
	StartTick int64
	To        Square
}

type MoveCompletedPayload struct {
	PieceID string
	At      Square
}

// CapturePayload reports a capture. CapturingPieceID is empty for mutual
// destruction, where both colliders die with no surviving attacker.
type CapturePayload struct {
	CapturingPieceID string
	CapturedPieceID  string
	At               Pos
}

type CooldownStartedPayload struct {
	PieceID       string
	DurationTicks int
}

type PromotionPayload struct {
	PieceID string
	To      PieceType
}

type GameOverPayload struct {
	Winner Player // NoPlayer for draw
	Reason string
}

type DrawPayload struct {
	Reason string
}

func NewMoveStartedEvent(pieceID string, startTick int64, to Square) Event {
	return Event{Kind: MoveStartedEvent, MoveStarted: &MoveStartedPayload{PieceID: pieceID, StartTick: startTick, To: to}}
}

func NewMoveCompletedEvent(pieceID string, at Square) Event {
	return Event{Kind: MoveCompletedEvent, MoveCompleted: &MoveCompletedPayload{PieceID: pieceID, At: at}}
}

func NewCaptureEvent(capturingID, capturedID string, at Pos) Event {
	return Event{Kind: CaptureEvent, Capture: &CapturePayload{CapturingPieceID: capturingID, CapturedPieceID: capturedID, At: at}}
}

func NewCooldownStartedEvent(pieceID string, durationTicks int) Event {
	return Event{Kind: CooldownStartedEvent, CooldownStart: &CooldownStartedPayload{PieceID: pieceID, DurationTicks: durationTicks}}
}

func NewPromotionEvent(pieceID string, to PieceType) Event {
	return Event{Kind: PromotionEvent, Promotion: &PromotionPayload{PieceID: pieceID, To: to}}
}

func NewGameOverEvent(winner Player, reason string) Event {
	return Event{Kind: GameOverEvent, GameOver: &GameOverPayload{Winner: winner, Reason: reason}}
}

func NewDrawEvent(reason string) Event {
	return Event{Kind: DrawEvent, Draw: &DrawPayload{Reason: reason}}
}

func (e Event) String() string {
	switch e.Kind {
	case MoveStartedEvent:
		return fmt.Sprintf("MOVE_STARTED %+v", *e.MoveStarted)
	case MoveCompletedEvent:
		return fmt.Sprintf("MOVE_COMPLETED %+v", *e.MoveCompleted)
	case CaptureEvent:
		return fmt.Sprintf("CAPTURE %+v", *e.Capture)
	case CooldownStartedEvent:
		return fmt.Sprintf("COOLDOWN_STARTED %+v", *e.CooldownStart)
	case PromotionEvent:
		return fmt.Sprintf("PROMOTION %+v", *e.Promotion)
	case GameOverEvent:
		return fmt.Sprintf("GAME_OVER %+v", *e.GameOver)
	case DrawEvent:
		return fmt.Sprintf("DRAW %+v", *e.Draw)
	default:
		return "?"
	}
}
