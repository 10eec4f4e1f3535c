package repositories

import "context"

// AIRepository asks a language model whether content satisfies a condition.
type AIRepository interface {
	// Check returns an empty message when content satisfies condition, otherwise the
	// model's explanation of the violation.
	Check(ctx context.Context, condition, content string) (string, error)
}
