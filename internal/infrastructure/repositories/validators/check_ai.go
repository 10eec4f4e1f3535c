package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const (
	CheckAIName        = "check-ai"
	checkAIPatternAttr = "check-ai-pattern"
)

// CheckAIValidator asks a language model whether the block satisfies a condition
// written in natural language.
type CheckAIValidator struct {
	client   repositories.AIRepository
	settings *entities.Settings
}

var (
	_ repositories.ValidatorRepository = (*CheckAIValidator)(nil)
	_ repositories.ExternalLimits      = (*CheckAIValidator)(nil)
)

// NewCheckAIValidator creates a CheckAIValidator backed by client.
func NewCheckAIValidator(client repositories.AIRepository, settings *entities.Settings) *CheckAIValidator {
	return &CheckAIValidator{client: client, settings: settings}
}

func (it *CheckAIValidator) Name() string { return CheckAIName }

func (it *CheckAIValidator) External() bool { return true }

func (it *CheckAIValidator) Limits() (int, time.Duration) {
	return it.settings.AI.Concurrency, it.settings.AI.Timeout
}

func (it *CheckAIValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(CheckAIName)
}

func (it *CheckAIValidator) Validate(ctx context.Context, block *entities.Block) ([]entities.Violation, error) {
	condition := strings.TrimSpace(block.Attributes[CheckAIName])
	if condition == "" {
		return nil, errors.New("condition is empty")
	}
	extractor, err := entities.NewKeyExtractor(block.Attributes[checkAIPatternAttr])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", checkAIPatternAttr, err)
	}

	var content strings.Builder
	for i, line := range extractor.Filter(block.Lines) {
		if i > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(line.Text)
	}

	message, err := it.client.Check(ctx, condition, content.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check condition: %w", err)
	}
	if message == "" {
		return nil, nil
	}
	return []entities.Violation{blockViolation(block, CheckAIName,
		fmt.Sprintf("%s: %s", blockLabel(block), message),
		map[string]any{"condition": condition},
	)}, nil
}
