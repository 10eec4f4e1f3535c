//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/commands"
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/test/infrastructure/repositorydoubles"
)

func newListCommand(files map[string]string, modified map[string][]int) *commands.ListCommand {
	grammars := newGrammars()
	loader := commands.NewBlockLoader(
		repositorydoubles.NewStubFileRepository(files),
		repositorydoubles.NewStubDiffRepository(modified),
		grammars,
	)
	return commands.NewListCommand(loader, grammars)
}

func TestListCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should list the blocks with their change status", func(t *testing.T) {
		t.Parallel()

		// given
		command := newListCommand(map[string]string{"x.go": pairSource}, map[string][]int{"x.go": {5}})

		// when
		listing, err := command.Execute(context.Background(), commands.ListOptions{
			Diff:     []byte("diff"),
			Settings: entities.NewSettings(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"x.go"}, listing.Files())
		blocks := listing.Blocks("x.go")
		require.Len(t, blocks, 2)
		assert.Equal(t, "A", blocks[0].Name)
		assert.False(t, blocks[0].IsContentModified)
		assert.Equal(t, ":B", blocks[0].Attributes["affects"])
		assert.Equal(t, 4, blocks[1].Line)
		assert.True(t, blocks[1].IsContentModified)
	})

	t.Run("should list the parsable files and report the others", func(t *testing.T) {
		t.Parallel()

		// given
		command := newListCommand(map[string]string{
			"good.go": pairSource,
			"bad.go":  "// </block>\n",
		}, nil)

		// when
		listing, err := command.Execute(context.Background(), commands.ListOptions{Settings: entities.NewSettings()})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.go")
		assert.Equal(t, []string{"good.go"}, listing.Files())
	})

	t.Run("should reject a mapping to an unsupported grammar", func(t *testing.T) {
		t.Parallel()

		// given
		command := newListCommand(map[string]string{"x.go": pairSource}, nil)
		settings := entities.NewSettings()
		settings.Extensions["tpl"] = "jinja"

		// when
		_, err := command.Execute(context.Background(), commands.ListOptions{Settings: settings})

		// then
		var configErr *entities.ConfigError
		assert.ErrorAs(t, err, &configErr)
	})
}
