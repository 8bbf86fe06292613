package predictor

import (
	"context"

	"github.com/rs/zerolog"

	"cardiod/internal/artifacts"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultECGCacheSize = 256
	defaultECGThreads   = 1
)

// Recorder stores served predictions. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e types.HistoryEntry) (types.HistoryEntry, error)
	Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error)
}

// Config encapsulates all tunables for Service construction.
type Config struct {
	ArtifactsDir string
	Files        artifacts.Files
	// ECG runtime settings; ModelPath is filled from the located artifact.
	ECG ecg.RuntimeConfig
	// ECGCacheSize bounds the ECG result cache. Negative disables it, zero
	// selects the default.
	ECGCacheSize int
	// NewRuntime builds the ECG runtime; defaults to ecg.NewRuntime.
	NewRuntime func(ecg.RuntimeConfig) (ecg.Runtime, error)
	// History, when set, receives every successful prediction.
	History Recorder
	Logger  zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.ArtifactsDir == "" {
		c.ArtifactsDir = "."
	}
	if c.ECGCacheSize == 0 {
		c.ECGCacheSize = defaultECGCacheSize
	}
	if c.ECG.Threads <= 0 {
		c.ECG.Threads = defaultECGThreads
	}
	if c.NewRuntime == nil {
		c.NewRuntime = ecg.NewRuntime
	}
	return c
}

// New constructs a Service and performs the initial artifact load. Missing or
// broken artifacts do not fail construction; they are reported through Ready
// and Status. Only an unusable artifacts directory is an error.
func New(cfg Config) (*Service, error) {
	s := newService(cfg.withDefaults())
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}
