package internalerr

import "errors"

// Sentinel errors for common cases.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrMalformedPage = errors.New("malformed page record")
	ErrDecode        = errors.New("undecodable text")
	ErrNotFitted     = errors.New("vectorizer not fitted")
	ErrAlreadyFitted = errors.New("vectorizer already fitted")
)
