package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Shelf error code.
type ErrorCode string

const (
	ErrUnknownCommand     ErrorCode = "UNKNOWN_COMMAND"     // first token names no command
	ErrMalformedArguments ErrorCode = "MALFORMED_ARGUMENTS" // known command, arguments did not match
	ErrNotFound           ErrorCode = "NOT_FOUND"           // id absent from the expected table
	ErrValidation         ErrorCode = "VALIDATION"          // value out of range or unparsable
	ErrStorageFault       ErrorCode = "STORAGE_FAULT"       // backend I/O failure
)

// ShelfError represents a structured error with code and details.
type ShelfError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ShelfError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnknownCommand creates an error for input whose first word is not a command.
func NewUnknownCommand(word, input string) *ShelfError {
	return &ShelfError{
		Code:    ErrUnknownCommand,
		Message: fmt.Sprintf("unknown command %q", word),
		Details: map[string]any{"command": word, "input": input},
	}
}

// NewMalformedArguments creates an error for a known command whose arguments
// did not match its pattern.
func NewMalformedArguments(word, input string) *ShelfError {
	return &ShelfError{
		Code:    ErrMalformedArguments,
		Message: fmt.Sprintf("malformed arguments for %q", word),
		Details: map[string]any{"command": word, "input": input},
	}
}

// NewNotFound creates an error for an id missing from table.
func NewNotFound(table string, id int64) *ShelfError {
	return &ShelfError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("item %d not found in %s", id, table),
		Details: map[string]any{"table": table, "id": id},
	}
}

// NewValidation creates an error for a rejected value.
func NewValidation(msg string) *ShelfError {
	return &ShelfError{
		Code:    ErrValidation,
		Message: msg,
	}
}

// NewStorageFault wraps a backend failure.
func NewStorageFault(err error) *ShelfError {
	msg := "storage fault"
	if err != nil {
		msg = err.Error()
	}
	return &ShelfError{
		Code:    ErrStorageFault,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a ShelfError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *ShelfError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// As returns the ShelfError carried by err. Errors that are not ShelfErrors
// are reported as storage faults, since every other failure is classified
// before it leaves the package that produced it.
func As(err error) *ShelfError {
	if err == nil {
		return nil
	}
	var sErr *ShelfError
	if stderrors.As(err, &sErr) {
		return sErr
	}
	return NewStorageFault(err)
}
