package validators

import (
	"context"
	"fmt"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const KeepUniqueName = "keep-unique"

// KeepUniqueValidator reports lines whose key already appeared earlier in the block.
type KeepUniqueValidator struct{}

var _ repositories.ValidatorRepository = (*KeepUniqueValidator)(nil)

// NewKeepUniqueValidator creates a KeepUniqueValidator.
func NewKeepUniqueValidator() *KeepUniqueValidator {
	return &KeepUniqueValidator{}
}

func (it *KeepUniqueValidator) Name() string { return KeepUniqueName }

func (it *KeepUniqueValidator) External() bool { return false }

func (it *KeepUniqueValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(KeepUniqueName)
}

func (it *KeepUniqueValidator) Validate(_ context.Context, block *entities.Block) ([]entities.Violation, error) {
	extractor, err := entities.NewKeyExtractor(block.Attributes[KeepUniqueName])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeepUniqueName, err)
	}

	var violations []entities.Violation
	firstSeen := make(map[string]int)
	for _, keyed := range extractor.Extract(block.Lines) {
		first, duplicated := firstSeen[keyed.Key]
		if !duplicated {
			firstSeen[keyed.Key] = keyed.Line.Number
			continue
		}
		violations = append(violations, lineViolation(block, KeepUniqueName, keyed.Line,
			fmt.Sprintf("%s has a non-unique line %d (duplicates line %d: %q)",
				blockLabel(block), keyed.Line.Number, first, keyed.Key),
			map[string]any{"duplicate_of": first, "key": keyed.Key},
		))
	}
	return violations, nil
}
