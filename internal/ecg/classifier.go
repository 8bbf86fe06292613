// Package ecg classifies ECG images: decoding, square padding, resizing,
// normalisation, and a forward pass through an image-model runtime.
//
// Runtimes:
//
//   - ONNX Runtime (standard): enabled with `-tags=onnx`, loads an exported
//     EfficientNet-B3 graph. File: runtime_onnx.go.
//   - Without the tag, runtime_stub.go refuses to load so binaries never serve
//     made-up ECG verdicts.
package ecg

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Threshold is the probability above which an ECG is reported abnormal.
const Threshold = 0.3

// Runtime runs the image network on one preprocessed tensor and returns the
// single output logit.
type Runtime interface {
	Classify(ctx context.Context, input []float32) (float32, error)
	Close() error
}

// RuntimeConfig locates the exported graph and its native library.
type RuntimeConfig struct {
	ModelPath string
	// Path to libonnxruntime; empty uses the platform default.
	SharedLibraryPath string
	InputName         string
	OutputName        string
	Threads           int
}

// Result is the outcome of one ECG prediction.
type Result struct {
	Probability float64
	Abnormal    bool
	// Cached is set when the probability came from the result cache.
	Cached bool
}

// Confidence is the probability of the reported class, in percent.
func (r Result) Confidence() float64 {
	if r.Abnormal {
		return r.Probability * 100
	}
	return (1 - r.Probability) * 100
}

// Classifier wraps a runtime with preprocessing and a content-addressed
// result cache.
type Classifier struct {
	rt    Runtime
	cache *lru.Cache[[sha256.Size]byte, float64]
}

// NewClassifier returns a classifier over rt. cacheSize <= 0 disables caching.
func NewClassifier(rt Runtime, cacheSize int) (*Classifier, error) {
	if rt == nil {
		return nil, errors.New("ecg: nil runtime")
	}
	c := &Classifier{rt: rt}
	if cacheSize > 0 {
		cache, err := lru.New[[sha256.Size]byte, float64](cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Predict classifies raw image bytes.
func (c *Classifier) Predict(ctx context.Context, img []byte) (Result, error) {
	key := sha256.Sum256(img)
	if c.cache != nil {
		if p, ok := c.cache.Get(key); ok {
			return Result{Probability: p, Abnormal: p > Threshold, Cached: true}, nil
		}
	}
	input, err := Preprocess(bytes.NewReader(img))
	if err != nil {
		return Result{}, err
	}
	logit, err := c.rt.Classify(ctx, input)
	if err != nil {
		return Result{}, err
	}
	p := sigmoid(float64(logit))
	if c.cache != nil {
		c.cache.Add(key, p)
	}
	return Result{Probability: p, Abnormal: p > Threshold}, nil
}

// CacheLen is the number of cached results.
func (c *Classifier) CacheLen() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Close releases the runtime.
func (c *Classifier) Close() error {
	if c == nil || c.rt == nil {
		return nil
	}
	return c.rt.Close()
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
