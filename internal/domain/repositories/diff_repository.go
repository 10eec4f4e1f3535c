package repositories

import "github.com/rios0rios0/blockwatch/internal/domain/entities"

// DiffRepository turns a unified diff into the modified lines of every changed file.
type DiffRepository interface {
	// ModifiedLines returns, per post-change file path, the lines the diff touched.
	// A malformed diff is reported as an *entities.ParseError.
	ModifiedLines(diff []byte) (*entities.ModifiedLines, error)
}
