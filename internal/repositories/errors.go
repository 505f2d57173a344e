package repositories

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrorKind classifies store failures the services know how to translate.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindDuplicateKey
	KindMalformedID
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDuplicateKey:
		return "duplicate key"
	case KindMalformedID:
		return "malformed id"
	case KindValidation:
		return "validation failed"
	default:
		return "unknown"
	}
}

// StoreError is a classified store failure.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the StoreError in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return KindUnknown
}

// classify converts a GORM or schema error into a StoreError when it recognizes it.
func classify(op string, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &StoreError{Kind: KindNotFound, Op: op, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &StoreError{Kind: KindDuplicateKey, Op: op, Err: err}
	case errors.As(err, &verrs):
		return &StoreError{Kind: KindValidation, Op: op, Err: err}
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func notFound(op string) error {
	return &StoreError{Kind: KindNotFound, Op: op}
}

// checkID rejects identifiers that cannot name any record.
func checkID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &StoreError{Kind: KindMalformedID, Op: op, Err: err}
	}
	return nil
}
