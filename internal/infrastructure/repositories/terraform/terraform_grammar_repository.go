package terraform

import (
	"bytes"
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// GrammarRepository finds `#`, `//` and `/* */` comments in HCL and Terraform files
// with the HCL native syntax lexer.
type GrammarRepository struct{}

var _ repositories.GrammarRepository = (*GrammarRepository)(nil)

// NewGrammarRepository creates the HCL grammar.
func NewGrammarRepository() *GrammarRepository {
	return &GrammarRepository{}
}

func (it *GrammarRepository) Name() string { return "hcl" }

func (it *GrammarRepository) Extensions() []string {
	return []string{"hcl", "tf", "tfvars"}
}

// Comments lexes source and keeps the comment tokens. Lexer diagnostics do not stop
// the scan: comments before and after a bad token are still returned.
func (it *GrammarRepository) Comments(_ context.Context, source []byte) ([]entities.Comment, error) {
	tokens, diags := hclsyntax.LexConfig(source, "", hcl.InitialPos)
	if diags.HasErrors() {
		logger.Debugf("HCL lexer reported: %s", diags.Error())
	}

	var comments []entities.Comment
	for _, token := range tokens {
		if token.Type != hclsyntax.TokenComment {
			continue
		}
		start := token.Range.Start
		lineStart := bytes.LastIndexByte(source[:start.Byte], '\n') + 1
		comments = append(comments, entities.Comment{
			Line:   start.Line,
			Column: start.Byte - lineStart + 1,
			Text:   string(bytes.TrimRight(token.Bytes, "\r\n")),
		})
	}
	return comments, nil
}
