//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// SpyValidatorRepository implements repositories.ValidatorRepository. It triggers
// on the attribute named like the validator and records the blocks it validated.
type SpyValidatorRepository struct {
	ValidatorName string
	IsExternal    bool
	Violations    []entities.Violation
	Err           error
	Panic         any

	mu        sync.Mutex
	Validated []*entities.Block
}

var _ repositories.ValidatorRepository = (*SpyValidatorRepository)(nil)

// NewSpyValidatorRepository creates a spy that passes every block.
func NewSpyValidatorRepository(name string) *SpyValidatorRepository {
	return &SpyValidatorRepository{ValidatorName: name}
}

func (s *SpyValidatorRepository) Name() string { return s.ValidatorName }

func (s *SpyValidatorRepository) External() bool { return s.IsExternal }

func (s *SpyValidatorRepository) Detect(block *entities.Block) bool {
	return block.HasAttribute(s.ValidatorName)
}

func (s *SpyValidatorRepository) Validate(_ context.Context, block *entities.Block) ([]entities.Violation, error) {
	s.mu.Lock()
	s.Validated = append(s.Validated, block)
	s.mu.Unlock()

	if s.Panic != nil {
		panic(s.Panic)
	}
	return s.Violations, s.Err
}

// CallCount returns how many blocks were validated.
func (s *SpyValidatorRepository) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Validated)
}
