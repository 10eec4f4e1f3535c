package validators

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const LineCountName = "line-count"

// two-character operators first so "<=" is not read as "<"
var lineCountOperators = []string{"<=", ">=", "==", "<", ">"} //nolint:gochecknoglobals // fixed lookup table

// LineCountValidator compares the number of non-blank lines with a bound.
type LineCountValidator struct{}

var _ repositories.ValidatorRepository = (*LineCountValidator)(nil)

// NewLineCountValidator creates a LineCountValidator.
func NewLineCountValidator() *LineCountValidator {
	return &LineCountValidator{}
}

func (it *LineCountValidator) Name() string { return LineCountName }

func (it *LineCountValidator) External() bool { return false }

func (it *LineCountValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(LineCountName)
}

func (it *LineCountValidator) Validate(_ context.Context, block *entities.Block) ([]entities.Violation, error) {
	operator, expected, err := parseLineCount(block.Attributes[LineCountName])
	if err != nil {
		return nil, err
	}

	actual := len(block.Lines)
	if compareCount(operator, actual, expected) {
		return nil, nil
	}
	return []entities.Violation{blockViolation(block, LineCountName,
		fmt.Sprintf("%s has %d lines, which does not satisfy %s%d", blockLabel(block), actual, operator, expected),
		map[string]any{"actual": actual, "operator": operator, "expected": expected},
	)}, nil
}

func parseLineCount(value string) (string, int, error) {
	value = strings.TrimSpace(value)
	for _, operator := range lineCountOperators {
		if !strings.HasPrefix(value, operator) {
			continue
		}
		expected, err := strconv.Atoi(strings.TrimSpace(value[len(operator):]))
		if err != nil || expected < 0 {
			return "", 0, fmt.Errorf("invalid line count %q, expected a non-negative integer after %q", value, operator)
		}
		return operator, expected, nil
	}
	return "", 0, fmt.Errorf("invalid line count %q, expected one of %v followed by an integer", value, lineCountOperators)
}

func compareCount(operator string, actual, expected int) bool {
	switch operator {
	case "<=":
		return actual <= expected
	case ">=":
		return actual >= expected
	case "==":
		return actual == expected
	case "<":
		return actual < expected
	default:
		return actual > expected
	}
}
