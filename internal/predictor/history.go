package predictor

import (
	"context"

	"cardiod/pkg/types"
)

// Endpoint labels used for metrics and history.
const (
	EndpointMLP      = "mlp"
	EndpointECG      = "ecg"
	EndpointCombined = "combined"
)

// served counts a prediction and hands it to the history store. A failure to
// record is logged and never fails the prediction.
func (s *Service) served(ctx context.Context, e types.HistoryEntry) {
	s.predictions.Add(1)
	predictionsTotal.WithLabelValues(e.Endpoint, e.Verdict).Inc()
	if s.cfg.History == nil {
		return
	}
	// The request may already be finishing; the audit row should still land.
	if _, err := s.cfg.History.Record(context.WithoutCancel(ctx), e); err != nil {
		s.log.Warn().Err(err).Str("endpoint", e.Endpoint).Msg("record prediction")
	}
}

// Recent returns recorded predictions, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if s.cfg.History == nil {
		return nil, errHistoryDisabled
	}
	return s.cfg.History.Recent(ctx, limit)
}

// HistoryEnabled reports whether predictions are recorded.
func (s *Service) HistoryEnabled() bool { return s.cfg.History != nil }
