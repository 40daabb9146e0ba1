package board

import "fmt"

// SpeedProfile is the tuple of tick-denominated constants selected at game
// creation: how fast pieces travel, how long they rest afterward, and the
// thresholds governing a stalemate-by-inactivity draw.
type SpeedProfile struct {
	Name               string
	TicksPerSquare     int
	CooldownTicks      int
	MinDrawTicks       int64
	DrawNoMoveTicks    int64
	DrawNoCaptureTicks int64
}

func (s SpeedProfile) String() string {
	return fmt.Sprintf("%v(sq=%dt,cd=%dt)", s.Name, s.TicksPerSquare, s.CooldownTicks)
}

// Standard is the default pace: one square every 10 ticks (a third of a
// second at the default 30 ticks/sec).
var Standard = SpeedProfile{
	Name:               "standard",
	TicksPerSquare:     10,
	CooldownTicks:      50,
	MinDrawTicks:       3000,
	DrawNoMoveTicks:    600,
	DrawNoCaptureTicks: 600,
}

// Lightning is roughly 5x faster than Standard, same tick rate.
var Lightning = SpeedProfile{
	Name:               "lightning",
	TicksPerSquare:     2,
	CooldownTicks:      10,
	MinDrawTicks:       600,
	DrawNoMoveTicks:    120,
	DrawNoCaptureTicks: 120,
}

func ParseSpeedProfile(name string) (SpeedProfile, bool) {
	switch name {
	case "standard", "":
		return Standard, true
	case "lightning":
		return Lightning, true
	default:
		return SpeedProfile{}, false
	}
}
