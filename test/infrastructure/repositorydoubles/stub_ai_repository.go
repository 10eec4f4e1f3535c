//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// StubAIRepository implements repositories.AIRepository with a fixed verdict.
type StubAIRepository struct {
	Message string
	Err     error
	// Block waits for the context to end before answering, to exercise timeouts.
	Block bool

	mu         sync.Mutex
	Conditions []string
	Contents   []string
}

var _ repositories.AIRepository = (*StubAIRepository)(nil)

func (s *StubAIRepository) Check(ctx context.Context, condition, content string) (string, error) {
	s.mu.Lock()
	s.Conditions = append(s.Conditions, condition)
	s.Contents = append(s.Contents, content)
	s.mu.Unlock()

	if s.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.Message, s.Err
}

// CallCount returns how many checks were requested.
func (s *StubAIRepository) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Conditions)
}
