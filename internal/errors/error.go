package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryHost     Category = "host"
	CategoryConfig   Category = "config"
	CategoryScenario Category = "scenario"
	CategoryCLI      Category = "cli"
)

// Location represents a source location in a config or scenario file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ModalError is a structured error with an optional location and hints.
type ModalError struct {
	// Code is a unique error identifier (e.g., "M002").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the error occurred, if it came from a file.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ModalError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + e.Message
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ModalError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *ModalError) WithLocation(file string, line, column int) *ModalError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ModalError) WithSuggestion(s string) *ModalError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *ModalError) WithExample(ex string) *ModalError {
	e.Example = ex
	return e
}

// WithDetail replaces the detailed explanation.
func (e *ModalError) WithDetail(d string) *ModalError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ModalError) Wrap(err error) *ModalError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around targetLine from filename.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a ModalError from a registered error code.
func New(code string) *ModalError {
	template, ok := registry[code]
	if !ok {
		return &ModalError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ModalError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ModalError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ModalError {
	return &ModalError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether any error in err's chain is a ModalError with code.
func HasCode(err error, code string) bool {
	var me *ModalError
	for err != nil {
		if !stderrors.As(err, &me) {
			return false
		}
		if me.Code == code {
			return true
		}
		err = me.Wrapped
	}
	return false
}
