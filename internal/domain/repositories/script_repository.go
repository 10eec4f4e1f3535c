package repositories

import "context"

// ScriptRepository runs user-provided validation scripts.
type ScriptRepository interface {
	// Run executes the script at path with the block's attributes and content. An
	// empty message means the block is valid. An error means the script itself failed.
	Run(ctx context.Context, path string, attributes map[string]string, content string) (string, error)
}
