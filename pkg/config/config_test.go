package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clutchchess/kfcore/pkg/config"
)

func TestDefaultsArePopulatedWithoutLoad(t *testing.T) {
	assert.Equal(t, 30, config.Settings.Engine.TickRateHz)
	assert.InDelta(t, 0.85, config.Settings.Collision.KnightAirborneFraction, 1e-9)

	assert.Equal(t, 2, config.Settings.AI.MaxPieces[1])
	assert.Equal(t, 4, config.Settings.AI.MaxPieces[2])
	assert.Equal(t, 16, config.Settings.AI.MaxPieces[3])

	rng, ok := config.Settings.AI.ThinkDelaySeconds[3]["lightning"]
	assert.True(t, ok)
	assert.Equal(t, [2]float64{0.05, 0.5}, rng)
}

func TestLoadIsIdempotentAndFallsBackOnMissingFile(t *testing.T) {
	ctx := context.Background()
	before := config.Settings.Engine.TickRateHz

	config.Load(ctx, "/nonexistent/path/to/config.toml")
	assert.Equal(t, before, config.Settings.Engine.TickRateHz, "a missing overlay file must not touch the defaults")

	// A second Load call is a no-op even with a different path: config is
	// loaded exactly once per process.
	config.Load(ctx, "/another/nonexistent/config.toml")
	assert.Equal(t, before, config.Settings.Engine.TickRateHz)
}
