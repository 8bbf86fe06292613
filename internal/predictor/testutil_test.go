package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"cardiod/internal/artifacts"
	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

func f64(v float64) *float64 { return &v }

func validPayload() types.ClinicalData {
	return types.ClinicalData{
		Age: f64(52), Gender: f64(1), Height: f64(170), Weight: f64(72),
		APHi: f64(130), APLo: f64(85), Cholesterol: f64(1), Gluc: f64(1),
		Smoke: f64(0), Alco: f64(0), Active: f64(1),
	}
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// constantNetwork returns a state dict whose positive-class probability is
// always p.
func constantNetwork(p float64) clinical.StateDict {
	sd := clinical.StateDict{}
	for _, l := range []struct {
		prefix string
		n      int
	}{{"net.1", 128}, {"net.5", 64}} {
		sd[l.prefix+".weight"] = clinical.Tensor{Shape: []int{l.n}, Data: fill(l.n, 1)}
		sd[l.prefix+".bias"] = clinical.Tensor{Shape: []int{l.n}, Data: fill(l.n, 0)}
		sd[l.prefix+".running_mean"] = clinical.Tensor{Shape: []int{l.n}, Data: fill(l.n, 0)}
		sd[l.prefix+".running_var"] = clinical.Tensor{Shape: []int{l.n}, Data: fill(l.n, 1)}
	}
	n := clinical.NumFeatures
	sd["net.0.weight"] = clinical.Tensor{Shape: []int{128, n}, Data: fill(128*n, 0)}
	sd["net.0.bias"] = clinical.Tensor{Shape: []int{128}, Data: fill(128, 0)}
	sd["net.4.weight"] = clinical.Tensor{Shape: []int{64, 128}, Data: fill(64*128, 0)}
	sd["net.4.bias"] = clinical.Tensor{Shape: []int{64}, Data: fill(64, 0)}
	sd["net.8.weight"] = clinical.Tensor{Shape: []int{2, 64}, Data: fill(2*64, 0)}
	sd["net.8.bias"] = clinical.Tensor{Shape: []int{2}, Data: []float64{0, math.Log(p / (1 - p))}}
	return sd
}

func identityScaler() map[string]any {
	return map[string]any{
		"mean":             fill(clinical.NumFeatures, 0),
		"scale":            fill(clinical.NumFeatures, 1),
		"feature_names_in": clinical.FeatureColumns,
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// artifactDir writes a full artifact set: a clinical network answering pMLP,
// an identity scaler and a placeholder ECG graph.
func artifactDir(t *testing.T, pMLP float64) string {
	t.Helper()
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, artifacts.DefaultFiles.MLP), constantNetwork(pMLP))
	writeJSON(t, filepath.Join(dir, artifacts.DefaultFiles.Scaler), identityScaler())
	if err := os.WriteFile(filepath.Join(dir, artifacts.DefaultFiles.ECG), []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write ecg: %v", err)
	}
	return dir
}

// fakeRuntime returns a fixed logit for the ECG network.
type fakeRuntime struct {
	logit  float32
	err    error
	calls  atomic.Int32
	closed atomic.Bool
}

func runtimeFor(p float64) *fakeRuntime {
	return &fakeRuntime{logit: float32(math.Log(p / (1 - p)))}
}

func (f *fakeRuntime) Classify(ctx context.Context, input []float32) (float32, error) {
	f.calls.Add(1)
	if len(input) != 3*ecg.ImageSize*ecg.ImageSize {
		return 0, errors.New("bad tensor length")
	}
	return f.logit, f.err
}

func (f *fakeRuntime) Close() error {
	f.closed.Store(true)
	return nil
}

func fixedRuntime(rt ecg.Runtime) func(ecg.RuntimeConfig) (ecg.Runtime, error) {
	return func(ecg.RuntimeConfig) (ecg.Runtime, error) { return rt, nil }
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	cfg.Logger = zerolog.Nop()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// memRecorder is an in-memory Recorder.
type memRecorder struct {
	mu      sync.Mutex
	entries []types.HistoryEntry
	err     error
}

func (r *memRecorder) Record(ctx context.Context, e types.HistoryEntry) (types.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return types.HistoryEntry{}, r.err
	}
	e.ID = "id"
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *memRecorder) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}
