package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardiod/internal/clinical"
	"cardiod/internal/predictor"
	"cardiod/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// requestError is a malformed request detected before inference.
type requestError struct {
	status int
	msg    string
	reason string
	fields []types.FieldError
}

func (e *requestError) Error() string   { return e.msg }
func (e *requestError) StatusCode() int { return e.status }

func unprocessable(reason, msg string, fields ...types.FieldError) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, msg: msg, reason: reason, fields: fields}
}

// errorPrefix is prepended to unexpected failures, per endpoint.
var errorPrefix = map[string]string{
	predictor.EndpointMLP:      "MLP Error: ",
	predictor.EndpointCombined: "Combined Model Error: ",
}

// mapError picks the status and payload for a failed prediction.
func mapError(endpoint string, err error) types.ErrorResponse {
	var re *requestError
	if errors.As(err, &re) {
		return types.ErrorResponse{Error: re.msg, Code: re.status, Fields: re.fields}
	}
	if v, ok := clinical.AsValidation(err); ok {
		return types.ErrorResponse{Error: v.Msg, Code: http.StatusUnprocessableEntity, Fields: v.Fields}
	}
	if predictor.IsDependencyUnavailable(err) {
		return types.ErrorResponse{Error: err.Error(), Code: http.StatusServiceUnavailable}
	}
	var he HTTPError
	if errors.As(err, &he) {
		return types.ErrorResponse{Error: he.Error(), Code: he.StatusCode()}
	}
	return types.ErrorResponse{Error: errorPrefix[endpoint] + err.Error(), Code: http.StatusInternalServerError}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeErrorResponse(w, types.ErrorResponse{Error: msg, Code: status})
}

func writeErrorResponse(w http.ResponseWriter, resp types.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(resp)
}
