package core

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound         = stderrors.New("record not found")
	ErrDuplicateKey     = stderrors.New("a record with this key already exists")
	ErrMalformedKey     = stderrors.New("malformed record key")
	ErrMissingReference = stderrors.New("student ID or course ID does not exist")
)

// ErrorKind classifies the errors returned by record managers.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindDuplicateKey
	KindNotFound
	KindMalformedKey
	KindMissingReference
	KindInvalid
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDuplicateKey:
		return "duplicate key"
	case KindNotFound:
		return "not found"
	case KindMalformedKey:
		return "malformed key"
	case KindMissingReference:
		return "missing reference"
	case KindInvalid:
		return "invalid"
	default:
		return "storage"
	}
}

// KindOf maps err to its ErrorKind. Any error that is not part of the record taxonomy is a storage failure.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	switch cause := errors.Cause(err).(type) {
	case validator.ValidationErrors, *ValidationError:
		return KindInvalid
	default:
		switch cause {
		case ErrDuplicateKey:
			return KindDuplicateKey
		case ErrNotFound:
			return KindNotFound
		case ErrMalformedKey:
			return KindMalformedKey
		case ErrMissingReference:
			return KindMissingReference
		}
	}
	return KindStorage
}

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
