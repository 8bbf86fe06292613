//go:build onnx

package ecg

import (
	"context"
	"fmt"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// RuntimeBuilt reports whether this binary carries a real image runtime.
const RuntimeBuilt = true

// The ONNX Runtime environment is process-wide and initialised once.
var (
	envOnce sync.Once
	envErr  error
)

type onnxRuntime struct {
	sess *ort.DynamicAdvancedSession
}

// NewRuntime opens an ONNX session over cfg.ModelPath.
func NewRuntime(cfg RuntimeConfig) (Runtime, error) {
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, runtimeUnavailableError{msg: "ECG model path is empty"}
	}
	envOnce.Do(func() {
		if cfg.SharedLibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
		}
		envErr = ort.InitializeEnvironment()
	})
	if envErr != nil {
		return nil, runtimeUnavailableError{msg: "onnxruntime init: " + envErr.Error()}
	}
	in, out := cfg.InputName, cfg.OutputName
	if in == "" {
		in = "input"
	}
	if out == "" {
		out = "output"
	}
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if cfg.Threads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.Threads); err != nil {
			return nil, fmt.Errorf("set threads: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, []string{in}, []string{out}, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.ModelPath, err)
	}
	return &onnxRuntime{sess: sess}, nil
}

func (r *onnxRuntime) Classify(ctx context.Context, input []float32) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(input) != 3*ImageSize*ImageSize {
		return 0, fmt.Errorf("ecg: want %d inputs, got %d", 3*ImageSize*ImageSize, len(input))
	}
	inT, err := ort.NewTensor(ort.NewShape(1, 3, ImageSize, ImageSize), input)
	if err != nil {
		return 0, err
	}
	defer inT.Destroy()
	outT, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, err
	}
	defer outT.Destroy()
	if err := r.sess.Run([]ort.Value{inT}, []ort.Value{outT}); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}
	return outT.GetData()[0], nil
}

func (r *onnxRuntime) Close() error {
	if r.sess == nil {
		return nil
	}
	err := r.sess.Destroy()
	r.sess = nil
	return err
}
