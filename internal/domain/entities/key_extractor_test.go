//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

func contentLines(texts ...string) []entities.ContentLine {
	lines := make([]entities.ContentLine, len(texts))
	for i, text := range texts {
		lines[i] = entities.ContentLine{Number: i + 1, Text: text}
	}
	return lines
}

func TestKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("should use the trimmed line without a pattern", func(t *testing.T) {
		t.Parallel()

		// given
		extractor, err := entities.NewKeyExtractor("")
		require.NoError(t, err)

		// when
		keyed := extractor.Extract(contentLines("  b  ", "a"))

		// then
		require.Len(t, keyed, 2)
		assert.Equal(t, "b", keyed[0].Key)
		assert.Equal(t, 1, keyed[0].Line.Number)
		assert.Equal(t, "a", keyed[1].Key)
	})

	t.Run("should prefer the value group and drop non-matching lines", func(t *testing.T) {
		t.Parallel()

		// given
		extractor, err := entities.NewKeyExtractor(`id: (?P<value>\d+)`)
		require.NoError(t, err)

		// when
		keyed := extractor.Extract(contentLines("id: 10", "no id here", "  id: 2 # two"))

		// then
		require.Len(t, keyed, 2)
		assert.Equal(t, "10", keyed[0].Key)
		assert.Equal(t, "2", keyed[1].Key)
		assert.Equal(t, 3, keyed[1].Line.Number)
	})

	t.Run("should use the whole match without a value group", func(t *testing.T) {
		t.Parallel()

		// given
		extractor, err := entities.NewKeyExtractor(`[a-z]+`)
		require.NoError(t, err)

		// when
		filtered := extractor.Filter(contentLines("123 abc 456"))

		// then
		require.Len(t, filtered, 1)
		assert.Equal(t, "abc", filtered[0].Text)
	})

	t.Run("should reject an invalid pattern", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewKeyExtractor(`(`)

		// then
		assert.Error(t, err)
	})
}

func TestValidatorSelection(t *testing.T) {
	t.Parallel()

	known := []string{"affects", "keep-sorted", "keep-unique"}

	t.Run("should reject enable together with disable", func(t *testing.T) {
		t.Parallel()

		// given
		selection := entities.ValidatorSelection{Enable: []string{"affects"}, Disable: []string{"keep-sorted"}}

		// when
		err := selection.Validate(known)

		// then
		var configErr *entities.ConfigError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		t.Parallel()

		// when
		err := entities.ValidatorSelection{Disable: []string{"keep-sortd"}}.Validate(known)

		// then
		assert.ErrorContains(t, err, "keep-sortd")
	})

	t.Run("should allow only enabled validators", func(t *testing.T) {
		t.Parallel()

		// given
		selection := entities.ValidatorSelection{Enable: []string{"keep-unique"}}

		// then
		assert.NoError(t, selection.Validate(known))
		assert.True(t, selection.Allows("keep-unique"))
		assert.False(t, selection.Allows("affects"))
	})

	t.Run("should allow everything not disabled", func(t *testing.T) {
		t.Parallel()

		// given
		selection := entities.ValidatorSelection{Disable: []string{"affects"}}

		// then
		assert.False(t, selection.Allows("affects"))
		assert.True(t, selection.Allows("keep-sorted"))
		assert.True(t, entities.ValidatorSelection{}.Allows("anything"))
	})
}
