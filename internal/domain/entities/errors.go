package entities

import "fmt"

// ParseError means the block structure of a file (or a diff) could not be understood.
// It is fatal for the file it names; a malformed diff makes it fatal for the whole run.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %q at line %d: %s", e.Path, e.Line, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %q: %s", e.Path, e.Message)
	}
	return "failed to parse: " + e.Message
}

// NewParseError builds a ParseError for the given file and line.
func NewParseError(path string, line int, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Line: line, Message: fmt.Sprintf(format, args...)}
}

// ConfigError is returned before any file is processed when the run configuration is invalid.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Message
}

// NewConfigError builds a ConfigError.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ExecutionError means a validator could not reach a verdict for a block: a malformed
// attribute, a failing external call, a timeout or a crashing script.
type ExecutionError struct {
	Validator string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Validator, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError wraps err as an ExecutionError raised by the named validator.
func NewExecutionError(validator string, err error) *ExecutionError {
	return &ExecutionError{Validator: validator, Err: err}
}
