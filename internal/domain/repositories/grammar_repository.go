package repositories

import (
	"context"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

// GrammarRepository locates the comments of a source file written in one language.
type GrammarRepository interface {
	// Name returns the grammar identifier (e.g. "go", "markdown").
	Name() string

	// Extensions returns the file extensions (or exact file names such as "Makefile")
	// handled by this grammar.
	Extensions() []string

	// Comments returns the comment spans of source ordered by position.
	Comments(ctx context.Context, source []byte) ([]entities.Comment, error)
}
