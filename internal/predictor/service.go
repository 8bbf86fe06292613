package predictor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"cardiod/internal/artifacts"
	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
)

// State represents the serving state of the service.
type State string

const (
	// StateReady means both models are loaded.
	StateReady State = "ready"
	// StateDegraded means the clinical model is loaded but the ECG model is not.
	StateDegraded State = "degraded"
	// StateUnavailable means the clinical model is not loaded.
	StateUnavailable State = "unavailable"
)

// models is one consistent generation of loaded artifacts. It is never
// mutated after Reload publishes it.
type models struct {
	set       artifacts.Set
	clinical  *clinical.Classifier
	ecg       *ecg.Classifier
	mlpErr    error
	scalerErr error
	ecgErr    error
}

func (m *models) state() State {
	switch {
	case m == nil || m.clinical == nil:
		return StateUnavailable
	case m.ecg == nil:
		return StateDegraded
	default:
		return StateReady
	}
}

// Service serves predictions from the currently loaded models.
type Service struct {
	// mu is held for reading for the whole of a prediction so Reload can
	// close a replaced runtime only after in-flight work has finished.
	mu  sync.RWMutex
	cur *models

	cfg       Config
	log       zerolog.Logger
	startTime time.Time

	reloads     atomic.Uint64
	predictions atomic.Uint64
}

func newService(cfg Config) *Service {
	return &Service{cfg: cfg, log: cfg.Logger, startTime: time.Now()}
}

// Reload locates and loads every artifact, then swaps the new generation in.
// Per-artifact failures are recorded, not returned; the error result is
// reserved for an unusable artifacts directory, in which case the current
// generation is kept.
func (s *Service) Reload() error {
	set, err := artifacts.Locate(s.cfg.ArtifactsDir, s.cfg.Files)
	if err != nil {
		return err
	}
	next := s.load(set)

	s.mu.Lock()
	old := s.cur
	s.cur = next
	s.mu.Unlock()
	s.reloads.Add(1)

	if old != nil && old.ecg != nil {
		if err := old.ecg.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close replaced ecg runtime")
		}
	}
	ev := s.log.Info().Str("state", string(next.state())).Str("dir", set.Dir)
	if next.mlpErr != nil {
		ev = ev.AnErr("mlp_error", next.mlpErr)
	}
	if next.ecgErr != nil {
		ev = ev.AnErr("ecg_error", next.ecgErr)
	}
	ev.Msg("artifacts loaded")
	return nil
}

func (s *Service) load(set artifacts.Set) *models {
	m := &models{set: set}

	var mlp *clinical.MLP
	if !set.MLP.Present() {
		m.mlpErr = fmt.Errorf("clinical weights: %w", set.MLP.Err)
	} else if mlp, m.mlpErr = clinical.LoadMLP(set.MLP.Path); m.mlpErr != nil {
		m.mlpErr = fmt.Errorf("clinical weights: %w", m.mlpErr)
	}

	var scaler *clinical.Scaler
	if !set.Scaler.Present() {
		m.scalerErr = fmt.Errorf("scaler: %w", set.Scaler.Err)
	} else if scaler, m.scalerErr = clinical.LoadScaler(set.Scaler.Path); m.scalerErr != nil {
		m.scalerErr = fmt.Errorf("scaler: %w", m.scalerErr)
	}
	if m.scalerErr != nil {
		s.log.Warn().Err(m.scalerErr).Msg("scaler unavailable; standardising on the request row")
	}

	if mlp != nil {
		m.clinical = clinical.NewClassifier(mlp, scaler)
	}

	if !set.ECG.Present() {
		m.ecgErr = fmt.Errorf("ecg model: %w", set.ECG.Err)
		return m
	}
	rcfg := s.cfg.ECG
	rcfg.ModelPath = set.ECG.Path
	rt, err := s.cfg.NewRuntime(rcfg)
	if err != nil {
		m.ecgErr = fmt.Errorf("ecg model: %w", err)
		return m
	}
	cls, err := ecg.NewClassifier(rt, s.cfg.ECGCacheSize)
	if err != nil {
		_ = rt.Close()
		m.ecgErr = fmt.Errorf("ecg model: %w", err)
		return m
	}
	m.ecg = cls
	return m
}

// acquire returns the current generation with the read lock held; callers
// must invoke the release func when done.
func (s *Service) acquire() (*models, func()) {
	s.mu.RLock()
	return s.cur, s.mu.RUnlock
}

// Ready reports whether the clinical model is loaded. The ECG model may be
// missing; that is reported through Status.
func (s *Service) Ready() bool {
	m, release := s.acquire()
	defer release()
	return m.state() != StateUnavailable
}

// Close releases the ECG runtime. The service answers 503 afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	old := s.cur
	s.cur = nil
	s.mu.Unlock()
	if old != nil && old.ecg != nil {
		return old.ecg.Close()
	}
	return nil
}
