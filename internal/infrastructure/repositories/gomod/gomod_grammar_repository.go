package gomod

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"golang.org/x/mod/modfile"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const (
	goModFile  = "go.mod"
	goWorkFile = "go.work"
)

// GrammarRepository finds `//` comments in go.mod and go.work files using the
// module file parser.
type GrammarRepository struct {
	file string
}

var _ repositories.GrammarRepository = (*GrammarRepository)(nil)

// NewModGrammarRepository creates the go.mod grammar.
func NewModGrammarRepository() *GrammarRepository {
	return &GrammarRepository{file: goModFile}
}

// NewWorkGrammarRepository creates the go.work grammar.
func NewWorkGrammarRepository() *GrammarRepository {
	return &GrammarRepository{file: goWorkFile}
}

func (it *GrammarRepository) Name() string { return it.file }

func (it *GrammarRepository) Extensions() []string {
	return []string{it.file}
}

func (it *GrammarRepository) Comments(_ context.Context, source []byte) ([]entities.Comment, error) {
	var syntax *modfile.FileSyntax
	if it.file == goWorkFile {
		work, err := modfile.ParseWork(it.file, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", it.file, err)
		}
		syntax = work.Syntax
	} else {
		mod, err := modfile.ParseLax(it.file, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", it.file, err)
		}
		syntax = mod.Syntax
	}

	seen := make(map[int]bool)
	var collected []modfile.Comment
	collect := func(comments *modfile.Comments) {
		if comments == nil {
			return
		}
		for _, group := range [][]modfile.Comment{comments.Before, comments.Suffix, comments.After} {
			for _, comment := range group {
				if !seen[comment.Start.Byte] {
					seen[comment.Start.Byte] = true
					collected = append(collected, comment)
				}
			}
		}
	}

	collect(&syntax.Comments)
	for _, stmt := range syntax.Stmt {
		collect(stmt.Comment())
		if block, ok := stmt.(*modfile.LineBlock); ok {
			collect(&block.LParen.Comments)
			for _, line := range block.Line {
				collect(&line.Comments)
			}
			collect(&block.RParen.Comments)
		}
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].Start.Byte < collected[j].Start.Byte })

	comments := make([]entities.Comment, 0, len(collected))
	for _, comment := range collected {
		lineStart := bytes.LastIndexByte(source[:comment.Start.Byte], '\n') + 1
		comments = append(comments, entities.Comment{
			Line:   comment.Start.Line,
			Column: comment.Start.Byte - lineStart + 1,
			Text:   comment.Token,
		})
	}
	return comments, nil
}
