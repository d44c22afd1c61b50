package sheetfilter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates a file format that cannot be read or written.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrNoSheets indicates a workbook without any sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrNoSheetLoaded indicates an operation on a session before a workbook was opened.
var ErrNoSheetLoaded = errors.New("no sheet loaded")

// ErrTooLarge indicates a source bigger than Options.MaxBytes.
var ErrTooLarge = errors.New("workbook exceeds size limit")

// MissingInputMessage is shown when the primary or operation columns are blank.
const MissingInputMessage = "Please enter the primary column and columns to operate on."

// LoadError represents an error while loading a workbook.
type LoadError struct {
	Source string
	Stage  string // "fetch", "read", "parse"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error for %q (%s): %v", e.Source, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(source, stage string, err error) *LoadError {
	return &LoadError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}

// ValidationError reports filter input that cannot be applied. Message is
// meant for the end user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// unknownColumnsError lists columns absent from the active sheet.
func unknownColumnsError(cols []string) *ValidationError {
	return NewValidationError("columns",
		fmt.Sprintf("Unknown column(s): %s", strings.Join(cols, ", ")))
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
