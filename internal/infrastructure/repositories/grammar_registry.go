package repositories

import (
	"fmt"
	"path"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// GrammarRegistry maps file extensions (or exact file names) to the grammar that
// extracts their comments.
type GrammarRegistry struct {
	grammars map[string]domainRepos.GrammarRepository
}

// NewGrammarRegistry creates an empty grammar registry.
func NewGrammarRegistry() *GrammarRegistry {
	return &GrammarRegistry{
		grammars: make(map[string]domainRepos.GrammarRepository),
	}
}

// Register adds a grammar under every extension it handles.
func (r *GrammarRegistry) Register(grammar domainRepos.GrammarRepository) {
	for _, extension := range grammar.Extensions() {
		r.grammars[extension] = grammar
	}
}

// Get returns the grammar registered for an extension, or nil.
func (r *GrammarRegistry) Get(extension string) domainRepos.GrammarRepository {
	return r.grammars[extension]
}

// Resolve finds the grammar of a file. The exact file name is tried first, then
// compound extensions from the longest ("d.ts") to the shortest ("ts"). The
// remapping turns an otherwise unknown key into a supported one.
func (r *GrammarRegistry) Resolve(filePath string, remap map[string]string) (domainRepos.GrammarRepository, error) {
	for _, key := range lookupKeys(path.Base(filePath)) {
		if target, ok := remap[key]; ok {
			if grammar, found := r.grammars[target]; found {
				return grammar, nil
			}
		}
		if grammar, ok := r.grammars[key]; ok {
			return grammar, nil
		}
	}
	return nil, fmt.Errorf("no grammar registered for %q", filePath)
}

// Extensions returns every registered key, sorted.
func (r *GrammarRegistry) Extensions() []string {
	keys := make([]string, 0, len(r.grammars))
	for key := range r.grammars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func lookupKeys(base string) []string {
	keys := []string{base}
	trimmed := strings.TrimLeft(base, ".")
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] == '.' && i+1 < len(trimmed) {
			keys = append(keys, trimmed[i+1:])
		}
	}
	return keys
}
