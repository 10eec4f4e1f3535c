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

func TestKeepSortedValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should report the first out-of-order line", func(t *testing.T) {
		t.Parallel()

		// given
		block := entitybuilders.NewBlockBuilder().WithName("letters").
			WithAttribute("keep-sorted", "").WithLines("b", "a", "c").BuildBlock()

		// when
		violations, err := validators.NewKeepSortedValidator().Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "keep-sorted", violations[0].Code)
		assert.Equal(t, 3, violations[0].Range.Start.Line)
		assert.Equal(t, "Block main.go:letters defined at line 1 has an out-of-order line 3 (asc)", violations[0].Message)
	})

	t.Run("should pass sorted lines in both orders", func(t *testing.T) {
		t.Parallel()

		// given
		ascending := entitybuilders.NewBlockBuilder().
			WithAttribute("keep-sorted", "asc").WithLines("a", "b", "b", "c").BuildBlock()
		descending := entitybuilders.NewBlockBuilder().
			WithAttribute("keep-sorted", "DESC").WithLines("c", "b", "a").BuildBlock()
		validator := validators.NewKeepSortedValidator()

		// when
		ascViolations, ascErr := validator.Validate(context.Background(), ascending)
		descViolations, descErr := validator.Validate(context.Background(), descending)

		// then
		require.NoError(t, ascErr)
		require.NoError(t, descErr)
		assert.Empty(t, ascViolations)
		assert.Empty(t, descViolations)
	})

	t.Run("should compare extracted keys numerically when asked", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewBlockBuilder().
			WithAttribute("keep-sorted", "asc").
			WithAttribute("keep-sorted-pattern", `id: (?P<value>\d+)`).
			WithLines("id: 9", "skipped", "id: 10")
		lexicographic := builder.BuildBlock()
		numeric := builder.WithAttribute("keep-sorted-format", "numeric").BuildBlock()
		validator := validators.NewKeepSortedValidator()

		// when
		lexViolations, lexErr := validator.Validate(context.Background(), lexicographic)
		numViolations, numErr := validator.Validate(context.Background(), numeric)

		// then
		require.NoError(t, lexErr)
		require.NoError(t, numErr)
		require.Len(t, lexViolations, 1)
		assert.Equal(t, 4, lexViolations[0].Range.Start.Line)
		assert.Empty(t, numViolations)
	})

	t.Run("should order semantic versions", func(t *testing.T) {
		t.Parallel()

		// given
		block := entitybuilders.NewBlockBuilder().
			WithAttribute("keep-sorted", "").
			WithAttribute("keep-sorted-format", "semver").
			WithLines("1.2.0", "v1.10.0", "2.0.0-rc.1", "2.0.0").BuildBlock()

		// when
		violations, err := validators.NewKeepSortedValidator().Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("should fail on unknown orders, formats and unparsable keys", func(t *testing.T) {
		t.Parallel()

		validator := validators.NewKeepSortedValidator()
		for name, block := range map[string]*entities.Block{
			"order":  entitybuilders.NewBlockBuilder().WithAttribute("keep-sorted", "sideways").WithLines("a").BuildBlock(),
			"format": entitybuilders.NewBlockBuilder().WithAttribute("keep-sorted", "").WithAttribute("keep-sorted-format", "roman").WithLines("a").BuildBlock(),
			"number": entitybuilders.NewBlockBuilder().WithAttribute("keep-sorted", "").WithAttribute("keep-sorted-format", "numeric").WithLines("1", "x").BuildBlock(),
			"regex":  entitybuilders.NewBlockBuilder().WithAttribute("keep-sorted", "").WithAttribute("keep-sorted-pattern", "(").WithLines("a").BuildBlock(),
		} {
			_, err := validator.Validate(context.Background(), block)
			assert.Error(t, err, name)
		}
	})
}

func TestCompareSemver(t *testing.T) {
	t.Parallel()

	t.Run("should accept versions with or without the v prefix", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := validators.CompareSemver("1.9.0", "v1.10.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, -1, result)
	})

	t.Run("should reject non-versions", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := validators.CompareSemver("latest", "1.0.0")

		// then
		assert.Error(t, err)
	})
}
