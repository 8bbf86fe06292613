package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cardiod/pkg/types"
)

// Form field names of the multipart endpoints.
const (
	fieldImage    = "ecg_image"
	fieldClinical = "clinical_data"
)

// multipartMemory is how much of an upload is held in memory before the
// rest spools to a temp file.
const multipartMemory = 8 << 20

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || (err != nil && strings.Contains(err.Error(), "request body too large"))
}

func errTooLarge() *requestError {
	return &requestError{status: http.StatusRequestEntityTooLarge, msg: "request body too large", reason: "too_large"}
}

// decodeClinical reads a ClinicalData document. Only JSON numbers (or null)
// are accepted for fields; range rules are checked later by validation.
func decodeClinical(r io.Reader, what string) (types.ClinicalData, error) {
	var d types.ClinicalData
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		if tooLarge(err) {
			return d, errTooLarge()
		}
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return d, unprocessable("invalid_json",
				fmt.Sprintf("%s: %s must be a number", what, ute.Field),
				types.FieldError{Field: ute.Field, Rule: "number"})
		}
		return d, unprocessable("invalid_json", fmt.Sprintf("%s: invalid JSON: %v", what, err))
	}
	return d, nil
}

// isJSON accepts application/json and a missing Content-Type, which is read
// as JSON.
func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(strings.ToLower(ct), "application/json")
}

// parseUpload parses a size-limited multipart body. Callers must call
// r.MultipartForm.RemoveAll when it returns nil.
func parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if tooLarge(err) {
			return errTooLarge()
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return unprocessable("not_multipart", "expected a multipart/form-data body")
		}
		return unprocessable("bad_multipart", "invalid multipart body: "+err.Error())
	}
	return nil
}

func readImage(r *http.Request) ([]byte, error) {
	f, _, err := r.FormFile(fieldImage)
	if err != nil {
		return nil, unprocessable("missing_field", fieldImage+": field required",
			types.FieldError{Field: fieldImage, Rule: "required"})
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fieldImage, err)
	}
	return b, nil
}

func readClinicalField(r *http.Request) (types.ClinicalData, error) {
	vals := r.MultipartForm.Value[fieldClinical]
	if len(vals) == 0 {
		return types.ClinicalData{}, unprocessable("missing_field", fieldClinical+": field required",
			types.FieldError{Field: fieldClinical, Rule: "required"})
	}
	return decodeClinical(strings.NewReader(vals[0]), fieldClinical)
}
