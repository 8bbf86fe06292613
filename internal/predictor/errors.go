package predictor

import (
	"errors"

	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
)

// dependencyUnavailableError signals a model that is not loaded or a runtime
// that is not built, so the HTTP layer can return 503 instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing model or runtime.
func IsDependencyUnavailable(err error) bool {
	var d dependencyUnavailableError
	return errors.As(err, &d)
}

// errHistoryDisabled is returned by Recent when no history store is configured.
var errHistoryDisabled = errors.New("prediction history is disabled")

// IsHistoryDisabled reports whether err comes from Recent without a store.
func IsHistoryDisabled(err error) bool { return errors.Is(err, errHistoryDisabled) }

// IsBadInput reports whether err was caused by the request payload: a clinical
// validation failure or an undecodable image.
func IsBadInput(err error) bool {
	return clinical.IsValidation(err) || ecg.IsImageError(err)
}
