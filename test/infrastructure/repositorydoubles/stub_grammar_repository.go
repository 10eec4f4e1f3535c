//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// StubGrammarRepository treats every line whose first non-blank characters are
// "//" or "#" as a one-line comment.
type StubGrammarRepository struct {
	GrammarName string
	Exts        []string
	CommentsErr error
}

var _ repositories.GrammarRepository = (*StubGrammarRepository)(nil)

// NewStubGrammarRepository creates a line-comment grammar for the given extensions.
func NewStubGrammarRepository(extensions ...string) *StubGrammarRepository {
	return &StubGrammarRepository{GrammarName: "stub", Exts: extensions}
}

func (s *StubGrammarRepository) Name() string { return s.GrammarName }

func (s *StubGrammarRepository) Extensions() []string { return s.Exts }

func (s *StubGrammarRepository) Comments(_ context.Context, source []byte) ([]entities.Comment, error) {
	if s.CommentsErr != nil {
		return nil, s.CommentsErr
	}
	var comments []entities.Comment
	for i, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			column := len(line) - len(trimmed) + 1
			comments = append(comments, entities.Comment{Line: i + 1, Column: column, Text: trimmed})
		}
	}
	return comments, nil
}
