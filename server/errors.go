package server

import (
	"errors"
	"net/http"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/encoding"
)

// Sentinel errors for request handling.
var (
	ErrInvalidFormat    = errors.New("server: invalid parameter format")
	ErrSignatureInvalid = errors.New("server: signature verification failed")
	ErrDecryptFailed    = errors.New("server: parameter decryption failed")
	ErrBadRequest       = errors.New("server: bad request")
)

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// wrapEncodingError maps encoding package errors to server sentinels.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	default:
		return ErrInvalidFormat
	}
}

// StatusFor maps an error to the HTTP status the viewer responds with.
// Widget contract violations are the caller's fault and map to 422.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsDecryptionError(err), errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	}
	switch imagediff.KindOf(err) {
	case imagediff.KindInvalidMode, imagediff.KindOutOfRange,
		imagediff.KindModeMismatch, imagediff.KindNotTunable:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
