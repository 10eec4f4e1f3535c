//go:build unit

package validators_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/validators"
	"github.com/rios0rios0/blockwatch/test/domain/entitybuilders"
)

func TestLinePatternValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should report each line that does not match", func(t *testing.T) {
		t.Parallel()

		// given
		block := entitybuilders.NewBlockBuilder().WithName("slugs").
			WithAttribute("line-pattern", "^[a-z-]+$").WithLines("ok-one", "Not OK", "  indented-ok  ").BuildBlock()

		// when
		violations, err := validators.NewLinePatternValidator().Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Block main.go:slugs defined at line 1 has a non-matching line 3 (pattern: /^[a-z-]+$/)", violations[0].Message)
		assert.Equal(t, entities.Position{Line: 3, Character: 7}, violations[0].Range.End)
	})

	t.Run("should fail on an empty or invalid pattern", func(t *testing.T) {
		t.Parallel()

		validator := validators.NewLinePatternValidator()
		for _, pattern := range []string{"", "("} {
			block := entitybuilders.NewBlockBuilder().WithAttribute("line-pattern", pattern).WithLines("a").BuildBlock()
			_, err := validator.Validate(context.Background(), block)
			assert.Error(t, err, pattern)
		}
	})
}

func TestLineCountValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should compare the number of lines with the bound", func(t *testing.T) {
		t.Parallel()

		validator := validators.NewLineCountValidator()
		for expression, passes := range map[string]bool{
			"<=3": true, "<3": false, "==3": true, ">= 4": false, ">2": true, "== 2": false,
		} {
			// given
			block := entitybuilders.NewBlockBuilder().WithName("three").
				WithAttribute("line-count", expression).WithLines("a", "b", "c").BuildBlock()

			// when
			violations, err := validator.Validate(context.Background(), block)

			// then
			require.NoError(t, err, expression)
			assert.Equal(t, passes, len(violations) == 0, expression)
		}
	})

	t.Run("should describe the failed bound", func(t *testing.T) {
		t.Parallel()

		// given
		block := entitybuilders.NewBlockBuilder().WithName("three").
			WithAttribute("line-count", "<3").WithLines("a", "b", "c").BuildBlock()

		// when
		violations, err := validators.NewLineCountValidator().Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Block main.go:three defined at line 1 has 3 lines, which does not satisfy <3", violations[0].Message)
	})
}

func TestParseLineCount(t *testing.T) {
	t.Parallel()

	t.Run("should read the longest operator first", func(t *testing.T) {
		t.Parallel()

		// when
		operator, expected, err := validators.ParseLineCount(" <= 10 ")

		// then
		require.NoError(t, err)
		assert.Equal(t, "<=", operator)
		assert.Equal(t, 10, expected)
	})

	t.Run("should reject malformed expressions", func(t *testing.T) {
		t.Parallel()

		for _, value := range []string{"", "10", "<=", "<-1", "~5", "<=x"} {
			_, _, err := validators.ParseLineCount(value)
			assert.Error(t, err, value)
		}
	})
}
