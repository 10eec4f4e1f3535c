package validators

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const CheckScriptName = "check-script"

// CheckScriptValidator delegates the verdict to a user script referenced by the block.
type CheckScriptValidator struct {
	runner   repositories.ScriptRepository
	settings *entities.Settings
}

var (
	_ repositories.ValidatorRepository = (*CheckScriptValidator)(nil)
	_ repositories.ExternalLimits      = (*CheckScriptValidator)(nil)
)

// NewCheckScriptValidator creates a CheckScriptValidator backed by runner.
func NewCheckScriptValidator(runner repositories.ScriptRepository, settings *entities.Settings) *CheckScriptValidator {
	return &CheckScriptValidator{runner: runner, settings: settings}
}

func (it *CheckScriptValidator) Name() string { return CheckScriptName }

func (it *CheckScriptValidator) External() bool { return true }

func (it *CheckScriptValidator) Limits() (int, time.Duration) {
	return it.settings.Script.Concurrency, it.settings.Script.Timeout
}

func (it *CheckScriptValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(CheckScriptName)
}

func (it *CheckScriptValidator) Validate(ctx context.Context, block *entities.Block) ([]entities.Violation, error) {
	script := strings.TrimSpace(block.Attributes[CheckScriptName])
	if script == "" {
		return nil, errors.New("script path is empty")
	}

	// scripts get a copy so they cannot alter the shared block
	message, err := it.runner.Run(ctx, script, maps.Clone(block.Attributes), block.Content())
	if err != nil {
		return nil, fmt.Errorf("script %q failed: %w", script, err)
	}
	if strings.TrimSpace(message) == "" {
		return nil, nil
	}
	return []entities.Violation{blockViolation(block, CheckScriptName,
		fmt.Sprintf("%s: %s", blockLabel(block), message),
		map[string]any{"script": script},
	)}, nil
}
