package types

// MLPResponse is returned by POST /api/predict/mlp.
type MLPResponse struct {
	// example: MLP (Clinical Data)
	Model string `json:"model" example:"MLP (Clinical Data)"`
	// Heart Disease Present or Heart Disease Not Present.
	// example: Heart Disease Not Present
	Prediction string `json:"prediction" example:"Heart Disease Not Present"`
	// Confidence in the reported class, percent with two decimals.
	// example: 71.42%
	Confidence string `json:"confidence" example:"71.42%"`
	// Probability of the positive class, four decimals.
	// example: 0.2858
	RawProbability string `json:"raw_probability" example:"0.2858"`
}

// ECGResponse is returned by POST /api/predict/ecg.
type ECGResponse struct {
	// example: EfficientNet-B3 (CNN)
	Model string `json:"model" example:"EfficientNet-B3 (CNN)"`
	// Abnormal ECG Detected or Normal ECG.
	// example: Normal ECG
	Prediction string `json:"prediction" example:"Normal ECG"`
	// example: 88.10%
	Confidence string `json:"confidence" example:"88.10%"`
	// example: 0.1190
	RawProbability string `json:"raw_probability" example:"0.1190"`
}

// CombinedDetails breaks a hybrid verdict down per model.
type CombinedDetails struct {
	// High Risk or Normal.
	MLPContribution string `json:"mlp_contribution" example:"Normal"`
	MLPConfidence   string `json:"mlp_confidence" example:"71.42%"`
	// Abnormal or Normal.
	CNNContribution string `json:"cnn_contribution" example:"Normal"`
	CNNConfidence   string `json:"cnn_confidence" example:"80.17%"`
}

// CombinedResponse is returned by POST /api/predict/combined.
type CombinedResponse struct {
	// example: Hybrid Analysis
	Model string `json:"model" example:"Hybrid Analysis"`
	// High Risk or Normal, taken from the more confident model.
	// example: Normal
	FinalDiagnosis string `json:"final_diagnosis" example:"Normal"`
	// ECG Image Analysis or Clinical Data (MLP).
	// example: ECG Image Analysis
	PrimaryDriver string `json:"primary_driver" example:"ECG Image Analysis"`
	// example: 80.17%
	OverallConfidence string          `json:"overall_confidence" example:"80.17%"`
	Details           CombinedDetails `json:"details"`
}

// FieldError names one failed validation rule.
type FieldError struct {
	// example: ap_hi
	Field string `json:"field" example:"ap_hi"`
	// example: lte=250
	Rule string `json:"rule" example:"lte=250"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
	// Per-field violations for validation errors.
	Fields []FieldError `json:"fields,omitempty"`
}

// ArtifactStatus describes one model artifact on disk.
type ArtifactStatus struct {
	// example: mlp
	Name string `json:"name" example:"mlp"`
	// example: /srv/cardiod/artifacts/global_model.json
	Path string `json:"path" example:"/srv/cardiod/artifacts/global_model.json"`
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Hex SHA-256 of the file contents.
	SHA256 string `json:"sha256,omitempty"`
	// example: 74211
	SizeBytes int64 `json:"size_bytes,omitempty" example:"74211"`
	// Last load error, if any.
	Error string `json:"error,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// ready when the clinical model is loaded, degraded when only the ECG model is missing.
	// example: ready
	State     string           `json:"state" example:"ready"`
	Artifacts []ArtifactStatus `json:"artifacts"`
	// Whether this binary carries an image-model runtime.
	// example: true
	ECGRuntime bool `json:"ecg_runtime" example:"true"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// example: 2
	ReloadsTotal uint64 `json:"reloads_total" example:"2"`
	// example: 42
	PredictionsTotal uint64 `json:"predictions_total" example:"42"`
	// example: 7
	ECGCacheEntries int `json:"ecg_cache_entries" example:"7"`
	// Whether prediction history is recorded.
	// example: false
	HistoryEnabled bool `json:"history_enabled" example:"false"`
}

// HistoryEntry is one recorded prediction.
type HistoryEntry struct {
	// example: 3f1e7c1a-8f7e-4d7b-9a55-0d7fb1f1b6a2
	ID string `json:"id" example:"3f1e7c1a-8f7e-4d7b-9a55-0d7fb1f1b6a2"`
	// mlp, ecg or combined.
	// example: mlp
	Endpoint string `json:"endpoint" example:"mlp"`
	// example: Heart Disease Not Present
	Verdict string `json:"verdict" example:"Heart Disease Not Present"`
	// Positive-class probability; for combined, that of the primary driver.
	// example: 0.2858
	Probability float64 `json:"probability" example:"0.2858"`
	// example: 71.42
	Confidence float64 `json:"confidence" example:"71.42"`
	// Primary driver for combined predictions.
	Driver string `json:"driver,omitempty"`
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}

// HistoryResponse wraps GET /api/predictions.
type HistoryResponse struct {
	Predictions []HistoryEntry `json:"predictions"`
}
