package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	codeParseError = "parse"
	dataKind       = "kind"
)

// Report accumulates the findings of a run in a deterministic order.
type Report struct {
	results     []Result
	parseErrors []*ParseError
	Warnings    []string
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends results. Passing results are dropped.
func (r *Report) Add(results ...Result) {
	for _, result := range results {
		if result.Outcome == OutcomePass {
			continue
		}
		r.results = append(r.results, result)
	}
}

// AddParseError records a file that had to be abandoned.
func (r *Report) AddParseError(err *ParseError) {
	r.parseErrors = append(r.parseErrors, err)
}

// Results returns the non-passing results in insertion order.
func (r *Report) Results() []Result {
	return append([]Result(nil), r.results...)
}

// ParseErrors returns the files that could not be parsed.
func (r *Report) ParseErrors() []*ParseError {
	return append([]*ParseError(nil), r.parseErrors...)
}

// Violations flattens every violation in the report.
func (r *Report) Violations() []Violation {
	var violations []Violation
	for _, result := range r.results {
		violations = append(violations, result.Violations...)
	}
	return violations
}

// ExecutionErrors returns the results that could not reach a verdict.
func (r *Report) ExecutionErrors() []Result {
	var failed []Result
	for _, result := range r.results {
		if result.Outcome == OutcomeExecutionError {
			failed = append(failed, result)
		}
	}
	return failed
}

// IsEmpty reports whether there is nothing to print.
func (r *Report) IsEmpty() bool {
	return len(r.results) == 0 && len(r.parseErrors) == 0
}

// HasFailures reports whether the run must exit with a non-zero status: any error
// severity violation, execution error or abandoned file.
func (r *Report) HasFailures() bool {
	if len(r.parseErrors) > 0 {
		return true
	}
	for _, result := range r.results {
		if result.Outcome == OutcomeExecutionError {
			return true
		}
		for _, violation := range result.Violations {
			if violation.Severity != SeverityWarning {
				return true
			}
		}
	}
	return false
}

// Diagnostics groups every finding by file, keeping the first-seen file order.
func (r *Report) Diagnostics() ([]string, map[string][]Violation) {
	var order []string
	grouped := make(map[string][]Violation)
	add := func(path string, violation Violation) {
		if _, ok := grouped[path]; !ok {
			order = append(order, path)
		}
		grouped[path] = append(grouped[path], violation)
	}

	for _, err := range r.parseErrors {
		add(err.Path, Violation{
			Range:    ViolationRange{Start: Position{Line: err.Line, Character: 1}, End: Position{Line: err.Line, Character: 1}},
			Code:     codeParseError,
			Message:  err.Error(),
			Severity: SeverityError,
			Data:     map[string]any{dataKind: "parse_error"},
		})
	}
	for _, result := range r.results {
		if result.Outcome == OutcomeExecutionError {
			add(result.Path, Violation{
				Range:    BlockRange(result.Block),
				Code:     result.Validator,
				Message:  fmt.Sprintf("Block %s:%s defined at line %d could not be validated: %v", result.Path, result.Block.DisplayName(), result.Block.StartLine, result.Err),
				Severity: SeverityError,
				Data:     map[string]any{dataKind: string(OutcomeExecutionError)},
			})
			continue
		}
		for _, violation := range result.Violations {
			add(result.Path, violation)
		}
	}
	return order, grouped
}

// MarshalJSON renders `{file: [diagnostic, ...]}` with files in report order.
func (r *Report) MarshalJSON() ([]byte, error) {
	order, grouped := r.Diagnostics()
	return marshalOrdered(order, func(key string) any { return grouped[key] })
}

// marshalOrdered writes a JSON object whose keys keep the given order.
func marshalOrdered(keys []string, value func(key string) any) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to encode key %q: %w", key, err)
		}
		encodedValue, err := json.Marshal(value(key))
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of %q: %w", key, err)
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
