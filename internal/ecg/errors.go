package ecg

import "errors"

// ImageError reports an upload that could not be decoded as an image or
// whose declared size exceeds the pixel limit.
type ImageError struct {
	err      error
	tooLarge bool
}

func (e ImageError) Error() string {
	if e.tooLarge {
		return e.err.Error()
	}
	return "cannot identify image file: " + e.err.Error()
}

func (e ImageError) Unwrap() error { return e.err }

// IsImageError reports whether err stems from an undecodable upload.
func IsImageError(err error) bool {
	var ie ImageError
	return errors.As(err, &ie)
}

// runtimeUnavailableError signals that no image-model runtime is compiled in
// or that it failed to initialise.
type runtimeUnavailableError struct{ msg string }

func (e runtimeUnavailableError) Error() string { return e.msg }

// IsRuntimeUnavailable reports whether err indicates a missing runtime.
func IsRuntimeUnavailable(err error) bool {
	var re runtimeUnavailableError
	return errors.As(err, &re)
}
