package markdown

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

var (
	commentOpen  = []byte("<!--") //nolint:gochecknoglobals // constant byte markers
	commentClose = []byte("-->")  //nolint:gochecknoglobals // constant byte markers
)

// GrammarRepository finds `<!-- -->` comments in Markdown. Only raw HTML counts, so
// comments shown inside code spans or fenced code are not blocks.
type GrammarRepository struct {
	markdown goldmark.Markdown
}

var _ repositories.GrammarRepository = (*GrammarRepository)(nil)

// NewGrammarRepository creates the Markdown grammar.
func NewGrammarRepository() *GrammarRepository {
	return &GrammarRepository{markdown: goldmark.New()}
}

func (it *GrammarRepository) Name() string { return "markdown" }

func (it *GrammarRepository) Extensions() []string {
	return []string{"md", "markdown"}
}

type byteRange struct{ start, stop int }

func (it *GrammarRepository) Comments(_ context.Context, source []byte) ([]entities.Comment, error) {
	document := it.markdown.Parser().Parse(text.NewReader(source))

	var ranges []byteRange
	err := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.HTMLBlock:
			lines := n.Lines()
			if lines.Len() == 0 {
				return ast.WalkSkipChildren, nil
			}
			r := byteRange{start: lines.At(0).Start, stop: lines.At(lines.Len() - 1).Stop}
			if n.HasClosure() && n.ClosureLine.Stop > r.stop {
				r.stop = n.ClosureLine.Stop
			}
			ranges = append(ranges, r)
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			if n.Segments.Len() > 0 {
				ranges = append(ranges, byteRange{
					start: n.Segments.At(0).Start,
					stop:  n.Segments.At(n.Segments.Len() - 1).Stop,
				})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	var comments []entities.Comment
	for _, r := range ranges {
		comments = append(comments, htmlComments(source, r)...)
	}
	return comments, nil
}

// htmlComments cuts the `<!-- ... -->` spans out of a raw HTML range. An unterminated
// comment runs to the end of the range.
func htmlComments(source []byte, r byteRange) []entities.Comment {
	var comments []entities.Comment
	for offset := r.start; offset < r.stop; {
		open := bytes.Index(source[offset:r.stop], commentOpen)
		if open < 0 {
			break
		}
		start := offset + open
		end := r.stop
		if closing := bytes.Index(source[start+len(commentOpen):r.stop], commentClose); closing >= 0 {
			end = start + len(commentOpen) + closing + len(commentClose)
		}
		lineStart := bytes.LastIndexByte(source[:start], '\n') + 1
		comments = append(comments, entities.Comment{
			Line:   bytes.Count(source[:start], []byte{'\n'}) + 1,
			Column: start - lineStart + 1,
			Text:   string(source[start:end]),
		})
		offset = end
	}
	return comments
}
