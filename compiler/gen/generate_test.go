package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cfg := testConfig(t, WithViews(true))
	arts, err := Generate(context.Background(), sampleModel(t), cfg)
	require.NoError(t, err)
	for _, name := range arts.Files() {
		assert.FileExists(t, filepath.Join(cfg.Target, name))
	}
}

func TestGeneratorPhases(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		g, err := NewGenerator(testConfig(t))
		require.NoError(t, err)
		assert.Equal(t, PhaseNotStarted, g.Phase())
		_, err = g.Run(context.Background(), sampleModel(t))
		require.NoError(t, err)
		assert.Equal(t, PhaseDone, g.Phase())
	})
	t.Run("failed", func(t *testing.T) {
		cfg := testConfig(t, WithPlugin(true))
		g, err := NewGenerator(cfg)
		require.NoError(t, err)
		_, err = g.Run(context.Background(), sampleModel(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Equal(t, PhaseFailed, g.Phase())

		entries, err := os.ReadDir(cfg.Target)
		require.NoError(t, err)
		assert.Empty(t, entries, "nothing is written when emission fails")
	})
	t.Run("canceled", func(t *testing.T) {
		g, err := NewGenerator(testConfig(t))
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = g.Run(ctx, sampleModel(t))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, PhaseFailed, g.Phase())
	})
}

func TestNewGeneratorRequiresTarget(t *testing.T) {
	_, err := NewGenerator(MustNewConfig(WithLogger(discard)))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = Generate(context.Background(), sampleModel(t), nil)
	assert.True(t, IsConfigError(err))
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseNotStarted:              "NOT_STARTED",
		PhaseCollecting:              "PASS_1_COLLECTING",
		PhaseEmittingClasses:         "PASS_2_EMITTING_CLASSES",
		PhaseEmittingArchetypes:      "EMITTING_GLOBAL_ARCHETYPES",
		PhaseEmittingIndexesAndViews: "EMITTING_INDEXES_AND_VIEWS",
		PhaseEmittingProperties:      "EMITTING_CONFIG_PROPERTIES",
		PhaseWriting:                 "WRITING_ARTIFACTS",
		PhaseDone:                    "DONE",
		PhaseFailed:                  "FAILED",
		Phase(200):                   "UNKNOWN",
	}
	for p, want := range tests {
		assert.Equal(t, want, p.String())
	}
}
