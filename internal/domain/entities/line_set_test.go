//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

func TestLineSet(t *testing.T) {
	t.Parallel()

	t.Run("should merge overlapping and adjacent ranges", func(t *testing.T) {
		t.Parallel()

		// given
		set := entities.NewLineSet(5, 1, 2)

		// when
		set.AddRange(3, 3)
		set.AddRange(10, 12)
		set.AddRange(11, 15)

		// then
		assert.Equal(t, []entities.LineRange{{Start: 1, End: 3}, {Start: 5, End: 5}, {Start: 10, End: 15}}, set.Ranges())
		assert.Equal(t, 10, set.Len())
	})

	t.Run("should detect intersections with closed intervals", func(t *testing.T) {
		t.Parallel()

		// given
		set := entities.NewLineSet()
		set.AddRange(1, 2)
		set.AddRange(5, 6)
		set.AddRange(10, 16)

		// then
		assert.False(t, set.Intersects(3, 4))
		assert.False(t, set.Intersects(7, 9))
		assert.True(t, set.Intersects(2, 3))
		assert.True(t, set.Intersects(4, 5))
		assert.True(t, set.Intersects(16, 20))
		assert.True(t, set.Intersects(0, 100))
		assert.True(t, set.Contains(11))
		assert.False(t, set.Contains(17))
	})

	t.Run("should treat a nil set as empty", func(t *testing.T) {
		t.Parallel()

		// given
		var set *entities.LineSet

		// then
		assert.False(t, set.Intersects(1, 10))
		assert.Zero(t, set.Len())
	})
}

func TestModifiedLines(t *testing.T) {
	t.Parallel()

	t.Run("should keep paths in the order they were first seen", func(t *testing.T) {
		t.Parallel()

		// given
		modified := entities.NewModifiedLines()

		// when
		modified.For("b.go").Add(1)
		modified.For("a.go").Add(2)
		modified.For("b.go").Add(3)

		// then
		assert.Equal(t, []string{"b.go", "a.go"}, modified.Paths())
		lines, ok := modified.Get("b.go")
		assert.True(t, ok)
		assert.Equal(t, 2, lines.Len())
		_, ok = modified.Get("c.go")
		assert.False(t, ok)
	})
}

func TestClassifyChanges(t *testing.T) {
	t.Parallel()

	source := "// <block name=\"outer\">\n// <block name=\"inner\">\nx\n// </block>\ny\n// </block>\n// <block name=\"other\">\nz\n// </block>\n"

	t.Run("should mark a block and its ancestors when a nested line changed", func(t *testing.T) {
		t.Parallel()

		// given
		tree, err := buildTree(t, source)
		assert.NoError(t, err)

		// when
		entities.ClassifyChanges(tree, entities.NewLineSet(3), false)

		// then
		assert.True(t, tree.Find("outer").IsContentModified)
		assert.True(t, tree.Find("inner").IsContentModified)
		assert.False(t, tree.Find("other").IsContentModified)
	})

	t.Run("should count a change on a tag line", func(t *testing.T) {
		t.Parallel()

		// given
		tree, err := buildTree(t, source)
		assert.NoError(t, err)

		// when
		entities.ClassifyChanges(tree, entities.NewLineSet(9), false)

		// then
		assert.True(t, tree.Find("other").IsContentModified)
		assert.False(t, tree.Find("outer").IsContentModified)
	})

	t.Run("should mark every block in full-scan mode", func(t *testing.T) {
		t.Parallel()

		// given
		tree, err := buildTree(t, source)
		assert.NoError(t, err)

		// when
		entities.ClassifyChanges(tree, nil, true)

		// then
		for _, block := range tree.All() {
			assert.True(t, block.IsContentModified, block.Name)
		}
	})
}
