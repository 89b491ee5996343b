package errors

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// Location represents a position in a configuration file.
type Location struct {
	File   string
	Line   int
	Column int
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

// MelbaError is a structured error with file location, suggestions, and
// documentation links.
type MelbaError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position where the error occurred.
	Location *Location

	// Context contains surrounding file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a snippet showing the correct form.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MelbaError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MelbaError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location to the error.
func (e *MelbaError) WithLocation(file string, line, column int) *MelbaError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithLocationFromYAML extracts the first "line N" marker that yaml.v3
// embeds in its error strings and points the error at that line of
// file. Errors without a marker leave the location unset.
func (e *MelbaError) WithLocationFromYAML(file string, err error) *MelbaError {
	if err == nil {
		return e
	}
	msg := err.Error()
	idx := strings.Index(msg, "line ")
	if idx < 0 {
		return e
	}
	var line int
	fmt.Sscanf(msg[idx:], "line %d", &line)
	if line > 0 {
		e.Location = &Location{File: file, Line: line}
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MelbaError) WithSuggestion(s string) *MelbaError {
	e.Suggestion = s
	return e
}

// WithExample adds an example snippet to the error.
func (e *MelbaError) WithExample(ex string) *MelbaError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *MelbaError) WithDetail(d string) *MelbaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *MelbaError) Wrap(err error) *MelbaError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
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

// New creates a MelbaError from a registered error code.
func New(code string) *MelbaError {
	template, ok := registry[code]
	if !ok {
		return &MelbaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MelbaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new MelbaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *MelbaError {
	return &MelbaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a MelbaError.
func FromError(err error, code string) *MelbaError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MelbaError); ok {
		return me
	}
	return New(code).Wrap(err)
}
