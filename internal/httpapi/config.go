package httpapi

import "time"

const (
	defaultMaxBodyBytes   int64 = 1 << 20
	defaultMaxUploadBytes int64 = 20 << 20
)

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes = defaultMaxBodyBytes

// SetMaxBodyBytes allows configuring the maximum JSON request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
		return
	}
	maxBodyBytes = n
}

// maxUploadBytes bounds multipart requests carrying an ECG image.
var maxUploadBytes = defaultMaxUploadBytes

// SetMaxUploadBytes configures the maximum multipart request size.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
		return
	}
	maxUploadBytes = n
}

// predictTimeout caps a single prediction. Zero means no additional timeout
// beyond server/connection timeouts.
var predictTimeout time.Duration

// SetPredictTimeout sets the prediction timeout (<= 0 disables).
func SetPredictTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	predictTimeout = d
}

// CORS configuration. Browsers call the API from a separately served
// frontend, so every origin is allowed unless configured otherwise.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"*"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty lists
// keep the allow-all defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = orDefault(origins, []string{"*"})
	corsAllowedMethods = orDefault(methods, []string{"GET", "POST", "OPTIONS"})
	corsAllowedHeaders = orDefault(headers, []string{"*"})
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return append([]string(nil), v...)
}
