// Package config holds globally available tunable constants — sensible
// compiled-in defaults, optionally overlaid from a TOML file — the way
// frankkopp-FrankyGo's internal/config package does for its search and eval
// knobs.
package config

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/seekerror/logw"
)

// Settings is the global configuration: init fills in the defaults and Load
// may overlay a TOML file on top of them.
var Settings conf

var initialized = false

type conf struct {
	Engine    engineConfiguration
	Collision collisionConfiguration
	AI        aiConfiguration
}

type engineConfiguration struct {
	// TickRateHz is the wall-clock rate at which a hosted game's simulation
	// loop calls Engine.Tick.
	TickRateHz int
}

type collisionConfiguration struct {
	// KnightAirborneFraction is the fraction of a knight's travel spent
	// invisible mid-leap, shared by visibility and capture-gating (§4.4).
	KnightAirborneFraction float64
}

type aiConfiguration struct {
	// MaxPieces and MaxCandidatesPerPiece bound candidate generation cost per
	// level (1-3); ThinkDelaySeconds holds each level's [min, max] think
	// delay in seconds, keyed by speed profile name.
	MaxPieces             map[int]int
	MaxCandidatesPerPiece map[int]int
	ThinkDelaySeconds     map[int]map[string][2]float64
}

func init() {
	Settings.Engine.TickRateHz = 30
	Settings.Collision.KnightAirborneFraction = 0.85

	Settings.AI.MaxPieces = map[int]int{1: 2, 2: 4, 3: 16}
	Settings.AI.MaxCandidatesPerPiece = map[int]int{1: 4, 2: 8, 3: 12}
	Settings.AI.ThinkDelaySeconds = map[int]map[string][2]float64{
		1: {"standard": {0.5, 5.0}, "lightning": {0.3, 2.5}},
		2: {"standard": {0.3, 2.0}, "lightning": {0.15, 1.0}},
		3: {"standard": {0.1, 1.0}, "lightning": {0.05, 0.5}},
	}
}

// Load overlays path's TOML contents onto the compiled-in defaults. The
// defaults set by init (Load never called, empty path, or file missing)
// still produce a playable game; a missing or unreadable file is logged, not
// fatal.
func Load(ctx context.Context, path string) {
	if initialized {
		return
	}
	initialized = true

	if path == "" {
		return
	}
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		logw.Infof(ctx, "config: %v not loaded, using defaults (%v)", path, err)
	}
}
