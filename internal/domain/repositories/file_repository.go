package repositories

import "context"

// FileRepository gives access to the files of the repository being checked.
// Every path it accepts or returns is slash-separated and relative to Root.
type FileRepository interface {
	// Root returns the absolute path of the repository root.
	Root() (string, error)

	// Discover returns the files matching any of patterns (all files when empty),
	// minus ignored ones, in lexical order.
	Discover(ctx context.Context, patterns, ignore []string) ([]string, error)

	// IsIgnored reports whether path matches an ignore pattern or the repository's .gitignore.
	IsIgnored(path string, ignore []string) bool

	// Exists reports whether path is a regular file.
	Exists(path string) bool

	// Read returns the content of path.
	Read(path string) ([]byte, error)
}
