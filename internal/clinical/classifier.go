// Package clinical turns a clinical measurement payload into a heart-disease
// probability: validation, feature engineering, standardisation and an MLP
// forward pass.
package clinical

import (
	"errors"

	"cardiod/pkg/types"
)

// Threshold is the positive-class probability at or above which a payload is
// classified as heart disease present.
const Threshold = 0.5

// Result is the outcome of one clinical prediction.
type Result struct {
	Probability float64
	Abnormal    bool
}

// Confidence is the probability of the reported class, in percent.
func (r Result) Confidence() float64 {
	if r.Abnormal {
		return r.Probability * 100
	}
	return (1 - r.Probability) * 100
}

// Classifier bundles a network with the scaler it was trained behind.
type Classifier struct {
	model  *MLP
	scaler *Scaler
}

// NewClassifier returns a classifier. A nil scaler selects the single-row
// fallback, which standardises every feature to zero.
func NewClassifier(model *MLP, scaler *Scaler) *Classifier {
	return &Classifier{model: model, scaler: scaler}
}

// HasScaler reports whether a fitted scaler is in use.
func (c *Classifier) HasScaler() bool { return c.scaler != nil }

// Predict validates d and runs it through the network.
func (c *Classifier) Predict(d types.ClinicalData) (Result, error) {
	if c == nil || c.model == nil {
		return Result{}, errors.New("clinical model not loaded")
	}
	if err := Validate(d); err != nil {
		return Result{}, err
	}
	f := Engineer(d)
	var x []float64
	if c.scaler != nil {
		x = c.scaler.Transform(f)
	} else {
		x = fitTransform(f)
	}
	logits, err := c.model.Forward(x)
	if err != nil {
		return Result{}, err
	}
	p := positiveProbability(logits)
	return Result{Probability: p, Abnormal: p >= Threshold}, nil
}
