package clinical

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

// bnEps matches torch.nn.BatchNorm1d's default epsilon.
const bnEps = 1e-5

// Tensor is one entry of an exported state dict, row-major.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// StateDict maps PyTorch parameter names (net.0.weight, net.1.running_mean, ...)
// to tensors. Unknown keys such as num_batches_tracked are ignored.
type StateDict map[string]Tensor

type linear struct {
	w *mat.Dense
	b *mat.VecDense
}

type batchNorm struct {
	mean, variance, gamma, beta []float64
}

// MLP is the clinical network in eval mode:
// Linear(in,128) BN ReLU Linear(128,64) BN ReLU Linear(64,2).
// Dropout layers are identities at inference time and hold no parameters.
type MLP struct {
	fc1, fc2, fc3 linear
	bn1, bn2      batchNorm
}

// LoadMLP reads a JSON state dict export.
func LoadMLP(path string) (*MLP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var sd StateDict
	if err := json.NewDecoder(f).Decode(&sd); err != nil {
		return nil, fmt.Errorf("decode state dict: %w", err)
	}
	return NewMLP(sd)
}

// NewMLP builds the network from a state dict, checking every shape.
func NewMLP(sd StateDict) (*MLP, error) {
	var m MLP
	var err error
	if m.fc1, err = sd.linear("net.0", 128, NumFeatures); err != nil {
		return nil, err
	}
	if m.bn1, err = sd.batchNorm("net.1", 128); err != nil {
		return nil, err
	}
	if m.fc2, err = sd.linear("net.4", 64, 128); err != nil {
		return nil, err
	}
	if m.bn2, err = sd.batchNorm("net.5", 64); err != nil {
		return nil, err
	}
	if m.fc3, err = sd.linear("net.8", 2, 64); err != nil {
		return nil, err
	}
	return &m, nil
}

func (sd StateDict) get(name string, shape ...int) ([]float64, error) {
	t, ok := sd[name]
	if !ok {
		return nil, fmt.Errorf("state dict: missing %s", name)
	}
	if len(t.Shape) != len(shape) {
		return nil, fmt.Errorf("state dict: %s has shape %v, want %v", name, t.Shape, shape)
	}
	n := 1
	for i, d := range shape {
		if t.Shape[i] != d {
			return nil, fmt.Errorf("state dict: %s has shape %v, want %v", name, t.Shape, shape)
		}
		n *= d
	}
	if len(t.Data) != n {
		return nil, fmt.Errorf("state dict: %s has %d values, want %d", name, len(t.Data), n)
	}
	return t.Data, nil
}

func (sd StateDict) linear(prefix string, out, in int) (linear, error) {
	w, err := sd.get(prefix+".weight", out, in)
	if err != nil {
		return linear{}, err
	}
	b, err := sd.get(prefix+".bias", out)
	if err != nil {
		return linear{}, err
	}
	return linear{
		w: mat.NewDense(out, in, append([]float64(nil), w...)),
		b: mat.NewVecDense(out, append([]float64(nil), b...)),
	}, nil
}

func (sd StateDict) batchNorm(prefix string, n int) (batchNorm, error) {
	var bn batchNorm
	var err error
	if bn.gamma, err = sd.get(prefix+".weight", n); err != nil {
		return bn, err
	}
	if bn.beta, err = sd.get(prefix+".bias", n); err != nil {
		return bn, err
	}
	if bn.mean, err = sd.get(prefix+".running_mean", n); err != nil {
		return bn, err
	}
	if bn.variance, err = sd.get(prefix+".running_var", n); err != nil {
		return bn, err
	}
	return bn, nil
}

func (l linear) apply(x *mat.VecDense) *mat.VecDense {
	r, _ := l.w.Dims()
	y := mat.NewVecDense(r, nil)
	y.MulVec(l.w, x)
	y.AddVec(y, l.b)
	return y
}

// applyReLU normalises with running statistics then clamps at zero.
func (bn batchNorm) applyReLU(x *mat.VecDense) {
	for i := 0; i < x.Len(); i++ {
		v := (x.AtVec(i)-bn.mean[i])/math.Sqrt(bn.variance[i]+bnEps)*bn.gamma[i] + bn.beta[i]
		if v < 0 {
			v = 0
		}
		x.SetVec(i, v)
	}
}

// Forward returns the two class logits for one standardised row.
func (m *MLP) Forward(x []float64) ([2]float64, error) {
	if len(x) != NumFeatures {
		return [2]float64{}, fmt.Errorf("mlp: want %d inputs, got %d", NumFeatures, len(x))
	}
	h := m.fc1.apply(mat.NewVecDense(NumFeatures, append([]float64(nil), x...)))
	m.bn1.applyReLU(h)
	h = m.fc2.apply(h)
	m.bn2.applyReLU(h)
	out := m.fc3.apply(h)
	return [2]float64{out.AtVec(0), out.AtVec(1)}, nil
}

// positiveProbability is softmax(logits)[1].
func positiveProbability(logits [2]float64) float64 {
	return 1 / (1 + math.Exp(logits[0]-logits[1]))
}
