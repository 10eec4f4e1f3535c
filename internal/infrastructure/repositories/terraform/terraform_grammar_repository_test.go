//go:build unit

package terraform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/terraform"
)

func TestGrammarRepository_Comments(t *testing.T) {
	t.Parallel()

	t.Run("should find every comment style and skip strings", func(t *testing.T) {
		t.Parallel()

		// given
		source := "# <block name=\"vars\" keep-sorted>\n" +
			"variable \"a\" {\n" +
			"  default = \"# not a comment\" // trailing\n" +
			"}\n" +
			"/* </block> */\n"

		// when
		comments, err := terraform.NewGrammarRepository().Comments(context.Background(), []byte(source))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Comment{
			{Line: 1, Column: 1, Text: "# <block name=\"vars\" keep-sorted>"},
			{Line: 3, Column: 31, Text: "// trailing"},
			{Line: 5, Column: 1, Text: "/* </block> */"},
		}, comments)
	})
}
