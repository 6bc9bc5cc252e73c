// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidTrade    = errors.New("invalid trade")
	ErrTradeNotFound   = errors.New("trade not found")
	ErrNoteNotFound    = errors.New("journal entry not found")
	ErrDataNotFound    = errors.New("data not found")
	ErrDatabaseError   = errors.New("database error")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrImportFailed    = errors.New("import failed")
	ErrExportFailed    = errors.New("export failed")
	ErrEmptyDataset    = errors.New("no trades match the given filter")
	ErrInputValidation = errors.New("input validation failed")
)

// TradeError represents an error tied to a specific trade record.
type TradeError struct {
	TradeID string
	Symbol  string
	Action  string
	Reason  string
	Err     error
}

func (e *TradeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trade error [%s] %s %s: %s: %v", e.TradeID, e.Action, e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("trade error [%s] %s %s: %s", e.TradeID, e.Action, e.Symbol, e.Reason)
}

func (e *TradeError) Unwrap() error {
	return e.Err
}

// NewTradeError creates a new TradeError.
func NewTradeError(tradeID, symbol, action, reason string, err error) *TradeError {
	return &TradeError{
		TradeID: tradeID,
		Symbol:  symbol,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// ValidationError represents a validation error. It matches
// ErrInvalidTrade under errors.Is.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTrade
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ImportError represents an error while importing external trade data.
type ImportError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import error [%s:%d]: %s: %v", e.File, e.Line, e.Message, e.Err)
	}
	return fmt.Sprintf("import error [%s:%d]: %s", e.File, e.Line, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(file string, line int, message string, err error) *ImportError {
	return &ImportError{
		File:    file,
		Line:    line,
		Message: message,
		Err:     err,
	}
}

// ExportError represents an error while writing reports or data files.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(format, path string, err error) *ExportError {
	return &ExportError{
		Format: format,
		Path:   path,
		Err:    err,
	}
}

// DataError represents a data-related error.
type DataError struct {
	DataType string
	Symbol   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, symbol, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Symbol:   symbol,
		Message:  message,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
