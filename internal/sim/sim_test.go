package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Metrics.Enabled = false // keep the default prometheus registry quiet in tests
	return cfg
}

func testOptions() Options {
	return Options{
		Waves:         5,
		SpawnsPerWave: 20,
		ReleaseRatio:  0.5,
		Seed:          42,
		Templates:     []string{"enemy/grunt", "enemy/boss", "pickup/health"},
	}
}

func TestRun_Counts(t *testing.T) {
	report, err := Run(testConfig(), testOptions(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 5, report.Waves)
	assert.Equal(t, 100, report.Spawned)
	assert.Greater(t, report.Released, 0)
	assert.LessOrEqual(t, report.Released, report.Spawned)
	assert.GreaterOrEqual(t, report.PeakActive, report.Spawned/5)
}

func TestRun_PoolStatsConsistent(t *testing.T) {
	report, err := Run(testConfig(), testOptions(), zaptest.NewLogger(t))
	require.NoError(t, err)

	totalCreated := int64(0)
	for name, stats := range report.Pools {
		assert.Equal(t, name, stats.Name)
		assert.GreaterOrEqual(t, stats.Created, int64(1))
		assert.Equal(t, int(stats.Created), stats.Free+stats.Active)
		totalCreated += stats.Created
	}
	// Reuse must keep creation well below one instance per spawn.
	assert.Less(t, totalCreated, int64(report.Spawned))
}

func TestRun_Deterministic(t *testing.T) {
	a, err := Run(testConfig(), testOptions(), zaptest.NewLogger(t))
	require.NoError(t, err)
	b, err := Run(testConfig(), testOptions(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, a.Spawned, b.Spawned)
	assert.Equal(t, a.Released, b.Released)
	assert.Equal(t, a.PeakActive, b.PeakActive)
	require.Len(t, b.Pools, len(a.Pools))
	for name, stats := range a.Pools {
		assert.Equal(t, stats.Created, b.Pools[name].Created, "pool %s", name)
	}
}

func TestRun_Prewarm(t *testing.T) {
	cfg := testConfig()
	cfg.Prewarm["enemy/grunt"] = 32

	opts := testOptions()
	opts.Templates = []string{"enemy/grunt"}
	opts.Waves = 1
	opts.SpawnsPerWave = 10

	report, err := Run(cfg, opts, zaptest.NewLogger(t))
	require.NoError(t, err)

	// Prewarmed pool never needed to grow.
	assert.Equal(t, int64(32), report.Pools["enemy/grunt"].Created)
}

func TestRun_DefaultStartingSize(t *testing.T) {
	cfg := testConfig()
	cfg.Pools.DefaultStartingSize = 8

	opts := testOptions()
	opts.Templates = []string{"enemy/grunt"}
	opts.Waves = 1
	opts.SpawnsPerWave = 4

	report, err := Run(cfg, opts, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, int64(8), report.Pools["enemy/grunt"].Created)
}

func TestRun_OptionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero waves", func(o *Options) { o.Waves = 0 }},
		{"negative spawns", func(o *Options) { o.SpawnsPerWave = -1 }},
		{"ratio above one", func(o *Options) { o.ReleaseRatio = 1.5 }},
		{"no templates", func(o *Options) { o.Templates = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)

			_, err := Run(testConfig(), opts, zaptest.NewLogger(t))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}
