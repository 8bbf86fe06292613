//go:build !onnx

package ecg

// RuntimeBuilt reports whether this binary carries a real image runtime.
const RuntimeBuilt = false

// NewRuntime fails fast: no image runtime is available in this build.
func NewRuntime(cfg RuntimeConfig) (Runtime, error) {
	return nil, runtimeUnavailableError{msg: "ECG runtime not built (missing 'onnx' build tag)"}
}
