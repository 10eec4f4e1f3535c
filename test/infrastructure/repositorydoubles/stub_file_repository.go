//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// StubFileRepository implements repositories.FileRepository over in-memory files.
type StubFileRepository struct {
	RootPath    string
	Files       map[string]string
	DiscoverErr error

	mu sync.Mutex
	// spy: number of reads per path
	Reads map[string]int
}

var _ repositories.FileRepository = (*StubFileRepository)(nil)

// ReadCount returns how many times path was read.
func (s *StubFileRepository) ReadCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reads[path]
}

// NewStubFileRepository creates a stub holding the given path -> content files.
func NewStubFileRepository(files map[string]string) *StubFileRepository {
	return &StubFileRepository{RootPath: "/repo", Files: files, Reads: map[string]int{}}
}

func (s *StubFileRepository) Root() (string, error) {
	return s.RootPath, nil
}

func (s *StubFileRepository) Discover(_ context.Context, patterns, ignore []string) ([]string, error) {
	if s.DiscoverErr != nil {
		return nil, s.DiscoverErr
	}
	var paths []string
	for path := range s.Files {
		if s.IsIgnored(path, ignore) {
			continue
		}
		if len(patterns) == 0 || matchesAny(patterns, path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *StubFileRepository) IsIgnored(path string, ignore []string) bool {
	return matchesAny(ignore, path)
}

func (s *StubFileRepository) Exists(path string) bool {
	_, ok := s.Files[path]
	return ok
}

func (s *StubFileRepository) Read(path string) ([]byte, error) {
	content, ok := s.Files[path]
	if !ok {
		return nil, fmt.Errorf("file %q not found", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Reads == nil {
		s.Reads = map[string]int{}
	}
	s.Reads[path]++
	return []byte(content), nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
