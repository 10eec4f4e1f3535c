package treesitter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// GrammarRepository finds comments with a tree-sitter grammar. Any node whose type
// mentions "comment" (comment, line_comment, block_comment, ...) is a comment.
type GrammarRepository struct {
	name       string
	extensions []string
	language   func() *sitter.Language
}

var _ repositories.GrammarRepository = (*GrammarRepository)(nil)

// NewGrammarRepository creates a grammar for the given language.
func NewGrammarRepository(name string, language func() *sitter.Language, extensions ...string) *GrammarRepository {
	return &GrammarRepository{name: name, extensions: extensions, language: language}
}

func (it *GrammarRepository) Name() string { return it.name }

func (it *GrammarRepository) Extensions() []string {
	return append([]string(nil), it.extensions...)
}

// Comments parses source and returns its comment nodes in document order.
func (it *GrammarRepository) Comments(ctx context.Context, source []byte) ([]entities.Comment, error) {
	// a parser is not safe for concurrent use, so each call gets its own
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(it.language())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", it.name, err)
	}
	defer tree.Close()

	var comments []entities.Comment
	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if strings.Contains(node.Type(), "comment") {
			start := node.StartPoint()
			comments = append(comments, entities.Comment{
				Line:   int(start.Row) + 1,
				Column: int(start.Column) + 1,
				Text:   string(source[node.StartByte():node.EndByte()]),
			})
			continue
		}
		// children pushed in reverse so they pop in document order
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return comments, nil
}
