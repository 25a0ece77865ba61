package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indica ausencia de un registro. Los handlers lo traducen a
// un payload found:false, nunca a un status de error.
var ErrNotFound = errors.New("record not found")

// ValidationError describe un payload de respuestas malformado; se expone
// al cliente como 4xx.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError construye un ValidationError para el campo dado.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError envuelve fallas de lectura/escritura del backing store. La
// operación aborta pero la persistencia es best-effort respecto a la
// respuesta de scoring: el caller loguea y sigue.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError envuelve err con la operación que fallo.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
