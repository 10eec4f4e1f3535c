package validators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const LinePatternName = "line-pattern"

// LinePatternValidator requires every non-blank line to match a regular expression.
type LinePatternValidator struct{}

var _ repositories.ValidatorRepository = (*LinePatternValidator)(nil)

// NewLinePatternValidator creates a LinePatternValidator.
func NewLinePatternValidator() *LinePatternValidator {
	return &LinePatternValidator{}
}

func (it *LinePatternValidator) Name() string { return LinePatternName }

func (it *LinePatternValidator) External() bool { return false }

func (it *LinePatternValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(LinePatternName)
}

func (it *LinePatternValidator) Validate(_ context.Context, block *entities.Block) ([]entities.Violation, error) {
	raw := block.Attributes[LinePatternName]
	if raw == "" {
		return nil, errors.New("pattern is empty")
	}
	pattern, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", raw, err)
	}

	var violations []entities.Violation
	for _, line := range block.Lines {
		if pattern.MatchString(strings.TrimSpace(line.Text)) {
			continue
		}
		violations = append(violations, lineViolation(block, LinePatternName, line,
			fmt.Sprintf("%s has a non-matching line %d (pattern: /%s/)", blockLabel(block), line.Number, raw),
			map[string]any{"pattern": raw},
		))
	}
	return violations, nil
}
