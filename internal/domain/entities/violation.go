package entities

import "unicode/utf8"

// Severity of a finding. Only error findings fail a run.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Position is a 1-based line and character.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// ViolationRange is the source range a violation points at.
type ViolationRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// BlockRange covers a block from its open tag to its close tag.
func BlockRange(block *Block) ViolationRange {
	return ViolationRange{
		Start: Position{Line: block.StartLine, Character: block.Column},
		End:   Position{Line: block.EndLine, Character: 1},
	}
}

// LineRangeOf covers a single content line.
func LineRangeOf(line ContentLine) ViolationRange {
	return ViolationRange{
		Start: Position{Line: line.Number, Character: 1},
		End:   Position{Line: line.Number, Character: utf8.RuneCountInString(line.Text) + 1},
	}
}

// Violation is a rule failure found in a block.
type Violation struct {
	Range    ViolationRange `json:"range"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Data     map[string]any `json:"data,omitempty"`
}

// Outcome of evaluating one validator against one block.
type Outcome string

const (
	OutcomePass           Outcome = "pass"
	OutcomeViolation      Outcome = "violation"
	OutcomeExecutionError Outcome = "execution_error"
)

// Result is the verdict of one validator for one block.
type Result struct {
	Path      string
	Block     *Block
	Validator string
	Outcome   Outcome
	// Violations is set when Outcome is OutcomeViolation.
	Violations []Violation
	// Err is set when Outcome is OutcomeExecutionError.
	Err error
}

// NewResult classifies the return values of a validator.
func NewResult(block *Block, validator string, violations []Violation, err error) Result {
	result := Result{Path: block.Path, Block: block, Validator: validator, Outcome: OutcomePass}
	switch {
	case err != nil:
		result.Outcome = OutcomeExecutionError
		result.Err = err
	case len(violations) > 0:
		result.Outcome = OutcomeViolation
		result.Violations = violations
	}
	return result
}
