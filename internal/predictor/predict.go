package predictor

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

func unavailable(what string, cause error) error {
	if cause == nil {
		return ErrDependencyUnavailable(what + " not loaded")
	}
	return ErrDependencyUnavailable(what + " not loaded: " + cause.Error())
}

func (m *models) clinicalOrErr() (*clinical.Classifier, error) {
	if m == nil {
		return nil, unavailable("clinical model", nil)
	}
	if m.clinical == nil {
		return nil, unavailable("clinical model", m.mlpErr)
	}
	return m.clinical, nil
}

func (m *models) ecgOrErr() (*ecg.Classifier, error) {
	if m == nil {
		return nil, unavailable("ECG model", nil)
	}
	if m.ecg == nil {
		return nil, unavailable("ECG model", m.ecgErr)
	}
	return m.ecg, nil
}

func runClinical(c *clinical.Classifier, d types.ClinicalData) (clinical.Result, error) {
	start := time.Now()
	r, err := c.Predict(d)
	if err == nil {
		observeInference(EndpointMLP, start)
	}
	return r, err
}

func runECG(ctx context.Context, c *ecg.Classifier, img []byte) (ecg.Result, error) {
	start := time.Now()
	r, err := c.Predict(ctx, img)
	if err != nil {
		return r, err
	}
	if r.Cached {
		ecgCacheHits.Inc()
	} else {
		observeInference(EndpointECG, start)
	}
	return r, nil
}

// PredictClinical classifies a clinical payload.
func (s *Service) PredictClinical(ctx context.Context, d types.ClinicalData) (types.MLPResponse, error) {
	m, release := s.acquire()
	defer release()
	c, err := m.clinicalOrErr()
	if err != nil {
		return types.MLPResponse{}, err
	}
	r, err := runClinical(c, d)
	if err != nil {
		return types.MLPResponse{}, err
	}
	resp := clinicalResponse(r)
	s.served(ctx, types.HistoryEntry{
		Endpoint:    EndpointMLP,
		Verdict:     resp.Prediction,
		Probability: r.Probability,
		Confidence:  r.Confidence(),
	})
	return resp, nil
}

// PredictECG classifies raw ECG image bytes.
func (s *Service) PredictECG(ctx context.Context, img []byte) (types.ECGResponse, error) {
	m, release := s.acquire()
	defer release()
	c, err := m.ecgOrErr()
	if err != nil {
		return types.ECGResponse{}, err
	}
	r, err := runECG(ctx, c, img)
	if err != nil {
		return types.ECGResponse{}, err
	}
	resp := ecgResponse(r)
	s.served(ctx, types.HistoryEntry{
		Endpoint:    EndpointECG,
		Verdict:     resp.Prediction,
		Probability: r.Probability,
		Confidence:  r.Confidence(),
	})
	return resp, nil
}

// PredictCombined runs both models concurrently and reports the verdict of
// the more confident one.
func (s *Service) PredictCombined(ctx context.Context, d types.ClinicalData, img []byte) (types.CombinedResponse, error) {
	m, release := s.acquire()
	defer release()
	cc, err := m.clinicalOrErr()
	if err != nil {
		return types.CombinedResponse{}, err
	}
	ec, err := m.ecgOrErr()
	if err != nil {
		return types.CombinedResponse{}, err
	}
	// Validate before fan-out so a bad payload always wins over image errors.
	if err := clinical.Validate(d); err != nil {
		return types.CombinedResponse{}, err
	}

	var (
		cr clinical.Result
		er ecg.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cr, err = runClinical(cc, d)
		return err
	})
	g.Go(func() error {
		var err error
		er, err = runECG(gctx, ec, img)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.CombinedResponse{}, err
	}

	resp := arbitrate(cr, er)
	e := types.HistoryEntry{
		Endpoint: EndpointCombined,
		Verdict:  resp.FinalDiagnosis,
		Driver:   resp.PrimaryDriver,
	}
	if resp.PrimaryDriver == DriverECG {
		e.Probability, e.Confidence = er.Probability, ecgHybridConfidence(er.Probability)
	} else {
		e.Probability, e.Confidence = cr.Probability, cr.Confidence()
	}
	s.served(ctx, e)
	return resp, nil
}
