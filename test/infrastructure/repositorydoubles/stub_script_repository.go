//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// StubScriptRepository implements repositories.ScriptRepository with a fixed outcome.
type StubScriptRepository struct {
	Message string
	Err     error

	mu         sync.Mutex
	Paths      []string
	Attributes []map[string]string
	Contents   []string
}

var _ repositories.ScriptRepository = (*StubScriptRepository)(nil)

func (s *StubScriptRepository) Run(
	_ context.Context,
	path string,
	attributes map[string]string,
	content string,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Paths = append(s.Paths, path)
	s.Attributes = append(s.Attributes, attributes)
	s.Contents = append(s.Contents, content)
	return s.Message, s.Err
}
