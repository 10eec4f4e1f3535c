//go:build unit

package makefile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/makefile"
)

func TestGrammarRepository_Comments(t *testing.T) {
	t.Parallel()

	t.Run("should skip recipes and escaped hashes", func(t *testing.T) {
		t.Parallel()

		// given
		source := "# <block name=\"targets\">\n" +
			"build: ## compile\n" +
			"\techo \"# not a comment\"\n" +
			"HASH := \\#literal\n" +
			"# </block>\n"

		// when
		comments, err := makefile.NewGrammarRepository().Comments(context.Background(), []byte(source))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Comment{
			{Line: 1, Column: 1, Text: "# <block name=\"targets\">"},
			{Line: 2, Column: 8, Text: "## compile"},
			{Line: 5, Column: 1, Text: "# </block>"},
		}, comments)
	})
}
