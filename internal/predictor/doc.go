// Package predictor coordinates artifact loading, inference and verdicts for
// the clinical and ECG models. It is structured into small files by concern:
//
//   - config.go: Config and package defaults; New applies defaults and loads.
//   - service.go: core Service type, Reload, Ready, Close.
//   - errors.go: error types and helpers (IsDependencyUnavailable, IsBadInput).
//   - predict.go: PredictClinical, PredictECG and the hybrid PredictCombined.
//   - verdict.go: thresholds, confidence rules and response formatting.
//   - status_report.go: Status and SanityCheck reporting.
//   - metrics.go: Prometheus counters for predictions and inference latency.
//   - history.go: optional prediction audit log.
//   - watch.go: fsnotify watcher that reloads artifacts on change.
//
// Runtimes:
//
//   - The clinical network always runs in-process (pure Go).
//   - The ECG network needs ONNX Runtime, enabled with `-tags=onnx`. Without
//     the tag the service still starts and reports the ECG model as
//     unavailable; ECG endpoints answer 503.
//
// External packages should use public methods only (New, Ready, Status,
// Predict*, Recent, Watch, Close).
package predictor
