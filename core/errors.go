package core

import "github.com/pkg/errors"

// ErrKeyNotFound is returned by a Store when nothing is stored under the requested key.
var ErrKeyNotFound = errors.New("key not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// StorageWriteError reports a Store that failed to persist a namespace.
// The namespace is left in whatever state the Store had before the write.
type StorageWriteError struct {
	Key string
	Err error
}

func NewStorageWriteError(key string, err error) error {
	return &StorageWriteError{Key: key, Err: err}
}

func (err StorageWriteError) Error() string {
	return "storage write failed (" + err.Key + "): " + err.Err.Error()
}

func (err StorageWriteError) Cause() error { return err.Err }

func (err StorageWriteError) Unwrap() error { return err.Err }

// IsStorageWriteFailed reports whether err, or any error it wraps, is a StorageWriteError.
func IsStorageWriteFailed(err error) bool {
	var swErr *StorageWriteError
	return errors.As(err, &swErr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
