//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// StubDiffRepository implements repositories.DiffRepository with canned lines.
type StubDiffRepository struct {
	Modified  *entities.ModifiedLines
	Err       error
	CallCount int
}

var _ repositories.DiffRepository = (*StubDiffRepository)(nil)

// NewStubDiffRepository creates a stub whose diff touches the given path -> lines.
func NewStubDiffRepository(files map[string][]int) *StubDiffRepository {
	modified := entities.NewModifiedLines()
	for path, lines := range files {
		set := modified.For(path)
		for _, line := range lines {
			set.Add(line)
		}
	}
	return &StubDiffRepository{Modified: modified}
}

func (s *StubDiffRepository) ModifiedLines(_ []byte) (*entities.ModifiedLines, error) {
	s.CallCount++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Modified, nil
}
