package makefile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// GrammarRepository finds `#` comments in Makefiles. Recipe lines (tab-indented)
// are shell commands and are skipped, as is a `#` escaped with a backslash.
type GrammarRepository struct{}

var _ repositories.GrammarRepository = (*GrammarRepository)(nil)

// NewGrammarRepository creates the Makefile grammar.
func NewGrammarRepository() *GrammarRepository {
	return &GrammarRepository{}
}

func (it *GrammarRepository) Name() string { return "makefile" }

func (it *GrammarRepository) Extensions() []string {
	return []string{"Makefile", "makefile", "GNUmakefile", "mk"}
}

func (it *GrammarRepository) Comments(_ context.Context, source []byte) ([]entities.Comment, error) {
	var comments []entities.Comment
	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(source)+1)
	for number := 1; scanner.Scan(); number++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.HasPrefix(line, "\t") {
			continue
		}
		if column := commentStart(line); column >= 0 {
			comments = append(comments, entities.Comment{Line: number, Column: column + 1, Text: line[column:]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan Makefile: %w", err)
	}
	return comments, nil
}

func commentStart(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}
	return -1
}
