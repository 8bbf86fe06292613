package clinical

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cardiod/pkg/types"
)

func f64(v float64) *float64 { return &v }

// validPayload returns a payload that passes every rule.
func validPayload() types.ClinicalData {
	return types.ClinicalData{
		Age: f64(52), Gender: f64(1), Height: f64(170), Weight: f64(72.25),
		APHi: f64(130), APLo: f64(85), Cholesterol: f64(2), Gluc: f64(3),
		Smoke: f64(1), Alco: f64(0), Active: f64(1),
	}
}

func zeros(n int) []float64 { return make([]float64, n) }

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// constantStateDict builds a network whose logits are always (b0, b1).
func constantStateDict(b0, b1 float64) StateDict {
	sd := identityBN()
	sd["net.0.weight"] = Tensor{Shape: []int{128, NumFeatures}, Data: zeros(128 * NumFeatures)}
	sd["net.0.bias"] = Tensor{Shape: []int{128}, Data: zeros(128)}
	sd["net.4.weight"] = Tensor{Shape: []int{64, 128}, Data: zeros(64 * 128)}
	sd["net.4.bias"] = Tensor{Shape: []int{64}, Data: zeros(64)}
	sd["net.8.weight"] = Tensor{Shape: []int{2, 64}, Data: zeros(2 * 64)}
	sd["net.8.bias"] = Tensor{Shape: []int{2}, Data: []float64{b0, b1}}
	return sd
}

// passthroughStateDict routes input column col to the positive logit
// through both hidden layers, so logits are (0, relu(x[col])).
func passthroughStateDict(col int) StateDict {
	sd := constantStateDict(0, 0)
	w1 := zeros(128 * NumFeatures)
	w1[col] = 1
	sd["net.0.weight"] = Tensor{Shape: []int{128, NumFeatures}, Data: w1}
	w2 := zeros(64 * 128)
	w2[0] = 1
	sd["net.4.weight"] = Tensor{Shape: []int{64, 128}, Data: w2}
	w3 := zeros(2 * 64)
	w3[64] = 1 // row 1, column 0
	sd["net.8.weight"] = Tensor{Shape: []int{2, 64}, Data: w3}
	return sd
}

// identityBN returns batch-norm layers that leave their input unchanged.
func identityBN() StateDict {
	sd := StateDict{}
	for _, l := range []struct {
		prefix string
		n      int
	}{{"net.1", 128}, {"net.5", 64}} {
		sd[l.prefix+".weight"] = Tensor{Shape: []int{l.n}, Data: filled(l.n, 1)}
		sd[l.prefix+".bias"] = Tensor{Shape: []int{l.n}, Data: zeros(l.n)}
		sd[l.prefix+".running_mean"] = Tensor{Shape: []int{l.n}, Data: zeros(l.n)}
		sd[l.prefix+".running_var"] = Tensor{Shape: []int{l.n}, Data: filled(l.n, 1-bnEps)}
	}
	return sd
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}
