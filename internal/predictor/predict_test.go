package predictor

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

func TestPredictClinical(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.5))})
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues(EndpointMLP, DiseasePresent))

	resp, err := s.PredictClinical(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := types.MLPResponse{Model: ModelMLP, Prediction: DiseasePresent, Confidence: "70.00%", RawProbability: "0.7000"}
	if resp != want {
		t.Fatalf("got %+v want %+v", resp, want)
	}
	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues(EndpointMLP, DiseasePresent)); got != before+1 {
		t.Fatalf("predictions counter=%v want %v", got, before+1)
	}
	if s.Status().PredictionsTotal != 1 {
		t.Fatalf("status counter not updated")
	}
}

func TestPredictClinical_NotPresent(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.25), NewRuntime: fixedRuntime(runtimeFor(0.5))})
	resp, err := s.PredictClinical(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.Prediction != DiseaseNotPresent || resp.Confidence != "75.00%" || resp.RawProbability != "0.2500" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPredictClinical_ValidationIsBadInput(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.5))})
	d := validPayload()
	d.APLo = f64(140)
	_, err := s.PredictClinical(context.Background(), d)
	if !IsBadInput(err) || !clinical.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if IsDependencyUnavailable(err) {
		t.Fatalf("validation must not look like 503")
	}
}

func TestPredictECG_AndCache(t *testing.T) {
	rt := runtimeFor(0.9)
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(rt)})
	img := pngBytes(t, 40, 20)
	hits := testutil.ToFloat64(ecgCacheHits)

	resp, err := s.PredictECG(context.Background(), img)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := types.ECGResponse{Model: ModelECG, Prediction: ECGAbnormal, Confidence: "90.00%", RawProbability: "0.9000"}
	if resp != want {
		t.Fatalf("got %+v want %+v", resp, want)
	}
	again, err := s.PredictECG(context.Background(), img)
	if err != nil || again != want {
		t.Fatalf("cached answer differs: %+v err=%v", again, err)
	}
	if rt.calls.Load() != 1 {
		t.Fatalf("runtime called %d times, want 1", rt.calls.Load())
	}
	if got := testutil.ToFloat64(ecgCacheHits); got != hits+1 {
		t.Fatalf("cache hits=%v want %v", got, hits+1)
	}
	if s.Status().ECGCacheEntries != 1 {
		t.Fatalf("cache entries not reported")
	}
}

func TestPredictECG_CacheDisabled(t *testing.T) {
	rt := runtimeFor(0.1)
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(rt), ECGCacheSize: -1})
	img := pngBytes(t, 8, 8)
	for i := 0; i < 2; i++ {
		resp, err := s.PredictECG(context.Background(), img)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if resp.Prediction != ECGNormal || resp.Confidence != "90.00%" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	}
	if rt.calls.Load() != 2 {
		t.Fatalf("runtime called %d times, want 2", rt.calls.Load())
	}
}

func TestPredictECG_BadImage(t *testing.T) {
	rt := runtimeFor(0.9)
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(rt)})
	_, err := s.PredictECG(context.Background(), []byte("not an image"))
	if !IsBadInput(err) || !ecg.IsImageError(err) {
		t.Fatalf("expected image error, got %v", err)
	}
	if rt.calls.Load() != 0 {
		t.Fatalf("runtime must not run on undecodable input")
	}
}

func TestPredictECG_RuntimeError(t *testing.T) {
	rt := runtimeFor(0.9)
	rt.err = errors.New("session failed")
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(rt)})
	_, err := s.PredictECG(context.Background(), pngBytes(t, 4, 4))
	if err == nil || IsBadInput(err) || IsDependencyUnavailable(err) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

func TestPredictCombined_ECGDrives(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.9))})
	resp, err := s.PredictCombined(context.Background(), validPayload(), pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := types.CombinedResponse{
		Model:             ModelCombined,
		FinalDiagnosis:    HighRisk,
		PrimaryDriver:     DriverECG,
		OverallConfidence: "92.86%",
		Details: types.CombinedDetails{
			MLPContribution: HighRisk,
			MLPConfidence:   "70.00%",
			CNNContribution: Abnormal,
			CNNConfidence:   "92.86%",
		},
	}
	if resp != want {
		t.Fatalf("got %+v want %+v", resp, want)
	}
}

func TestPredictCombined_ClinicalDrives(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.2))})
	resp, err := s.PredictCombined(context.Background(), validPayload(), pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.PrimaryDriver != DriverClinical || resp.FinalDiagnosis != HighRisk || resp.OverallConfidence != "70.00%" {
		t.Fatalf("unexpected verdict: %+v", resp)
	}
	if resp.Details.CNNContribution != Normal || resp.Details.CNNConfidence != "66.67%" {
		t.Fatalf("unexpected ecg details: %+v", resp.Details)
	}
}

func TestPredictCombined_ValidationBeforeImage(t *testing.T) {
	rt := runtimeFor(0.9)
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(rt)})
	d := validPayload()
	d.Age = nil
	_, err := s.PredictCombined(context.Background(), d, []byte("garbage"))
	if !clinical.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = s.PredictCombined(context.Background(), validPayload(), []byte("garbage"))
	if !ecg.IsImageError(err) {
		t.Fatalf("expected image error, got %v", err)
	}
}

func TestPredictCombined_NeedsBothModels(t *testing.T) {
	cfg := Config{
		ArtifactsDir: artifactDir(t, 0.7),
		NewRuntime: func(ecg.RuntimeConfig) (ecg.Runtime, error) {
			return nil, errors.New("no runtime")
		},
	}
	s := newTestService(t, cfg)
	if _, err := s.PredictCombined(context.Background(), validPayload(), pngBytes(t, 4, 4)); !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestArbitrate_TieGoesToECG(t *testing.T) {
	// Both confidences are exactly 50.
	c := clinical.Result{Probability: 0.5, Abnormal: true}
	e := ecg.Result{Probability: 0.3, Abnormal: false}
	resp := arbitrate(c, e)
	if resp.PrimaryDriver != DriverECG || resp.FinalDiagnosis != Normal || resp.OverallConfidence != "50.00%" {
		t.Fatalf("tie not resolved towards ECG: %+v", resp)
	}
	if resp.Details.MLPContribution != HighRisk || resp.Details.MLPConfidence != "50.00%" {
		t.Fatalf("details: %+v", resp.Details)
	}
}

func TestECGHybridConfidence(t *testing.T) {
	cases := []struct {
		p, want float64
	}{
		{0, 100},
		{0.15, 75},
		{0.3, 50},
		{1, 100},
	}
	for _, c := range cases {
		if got := ecgHybridConfidence(c.p); got < c.want-1e-9 || got > c.want+1e-9 {
			t.Fatalf("p=%v: got %v want %v", c.p, got, c.want)
		}
	}
}

func TestHistory_RecordsAndLists(t *testing.T) {
	rec := &memRecorder{}
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.9)), History: rec})
	if _, err := s.PredictClinical(context.Background(), validPayload()); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := s.PredictCombined(context.Background(), validPayload(), pngBytes(t, 4, 4)); err != nil {
		t.Fatalf("combined: %v", err)
	}
	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries=%d", len(got))
	}
	if got[0].Endpoint != EndpointMLP || got[0].Verdict != DiseasePresent {
		t.Fatalf("mlp entry: %+v", got[0])
	}
	if c := got[1]; c.Endpoint != EndpointCombined || c.Driver != DriverECG || c.Verdict != HighRisk || c.Confidence < 92.8 || c.Confidence > 92.9 {
		t.Fatalf("combined entry: %+v", c)
	}
	if !s.Status().HistoryEnabled {
		t.Fatalf("history should be reported enabled")
	}
}

func TestHistory_RecordFailureDoesNotFailPrediction(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.9)), History: rec})
	if _, err := s.PredictClinical(context.Background(), validPayload()); err != nil {
		t.Fatalf("predict: %v", err)
	}
}

func TestHistory_Disabled(t *testing.T) {
	s := newTestService(t, Config{ArtifactsDir: artifactDir(t, 0.7), NewRuntime: fixedRuntime(runtimeFor(0.9))})
	if _, err := s.Recent(context.Background(), 5); !IsHistoryDisabled(err) {
		t.Fatalf("expected history disabled, got %v", err)
	}
}
