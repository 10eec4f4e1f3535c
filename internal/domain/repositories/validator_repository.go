package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

// ValidatorRepository is a content rule evaluated against a single block.
// Implementations must not keep state between calls: blocks are validated concurrently.
type ValidatorRepository interface {
	// Name returns the validator identifier, which is also its trigger attribute (e.g. "keep-sorted").
	Name() string

	// Detect returns true if the block carries the attribute that triggers this validator.
	Detect(block *entities.Block) bool

	// External returns true if validation performs I/O and must run under the
	// bounded concurrency and timeout of external calls.
	External() bool

	// Validate returns the violations found in the block. A returned error means no
	// verdict could be reached and is reported as an execution error.
	Validate(ctx context.Context, block *entities.Block) ([]entities.Violation, error)
}

// ExternalLimits is implemented by external validators to bound how many calls run
// at once and how long each call may take.
type ExternalLimits interface {
	Limits() (concurrency int, timeout time.Duration)
}
