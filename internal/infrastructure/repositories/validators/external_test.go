//go:build unit

package validators_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/validators"
	"github.com/rios0rios0/blockwatch/test/domain/entitybuilders"
	"github.com/rios0rios0/blockwatch/test/infrastructure/repositorydoubles"
)

func TestCheckAIValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should pass when the model approves", func(t *testing.T) {
		t.Parallel()

		// given
		client := &repositorydoubles.StubAIRepository{}
		block := entitybuilders.NewBlockBuilder().
			WithAttribute("check-ai", "mentions a colour").WithLines("red", "green").BuildBlock()

		// when
		violations, err := validators.NewCheckAIValidator(client, entities.NewSettings()).Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		assert.Empty(t, violations)
		assert.Equal(t, []string{"mentions a colour"}, client.Conditions)
		assert.Equal(t, []string{"red\ngreen"}, client.Contents)
	})

	t.Run("should turn the model reply into a block violation", func(t *testing.T) {
		t.Parallel()

		// given
		client := &repositorydoubles.StubAIRepository{Message: "no colour found"}
		block := entitybuilders.NewBlockBuilder().WithName("colours").
			WithAttribute("check-ai", "mentions a colour").
			WithAttribute("check-ai-pattern", `name=(?P<value>\w+)`).
			WithLines("name=sky size=1", "other", "name=sea size=2").BuildBlock()

		// when
		violations, err := validators.NewCheckAIValidator(client, entities.NewSettings()).Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Block main.go:colours defined at line 1: no colour found", violations[0].Message)
		assert.Equal(t, entities.BlockRange(block), violations[0].Range)
		assert.Equal(t, []string{"sky\nsea"}, client.Contents)
	})

	t.Run("should fail without calling the model on an empty condition", func(t *testing.T) {
		t.Parallel()

		// given
		client := &repositorydoubles.StubAIRepository{}
		block := entitybuilders.NewBlockBuilder().WithAttribute("check-ai", "  ").WithLines("a").BuildBlock()

		// when
		_, err := validators.NewCheckAIValidator(client, entities.NewSettings()).Validate(context.Background(), block)

		// then
		assert.Error(t, err)
		assert.Zero(t, client.CallCount())
	})

	t.Run("should wrap client failures", func(t *testing.T) {
		t.Parallel()

		// given
		client := &repositorydoubles.StubAIRepository{Err: errors.New("status 500")}
		block := entitybuilders.NewBlockBuilder().WithAttribute("check-ai", "x").WithLines("a").BuildBlock()

		// when
		_, err := validators.NewCheckAIValidator(client, entities.NewSettings()).Validate(context.Background(), block)

		// then
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("should expose the configured limits", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewSettings()
		settings.AI.Concurrency = 2
		settings.AI.Timeout = 5 * time.Second

		// when
		concurrency, timeout := validators.NewCheckAIValidator(nil, settings).Limits()

		// then
		assert.Equal(t, 2, concurrency)
		assert.Equal(t, 5*time.Second, timeout)
	})
}

func TestCheckScriptValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should hand the script a copy of the attributes and the content", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &repositorydoubles.StubScriptRepository{}
		block := entitybuilders.NewBlockBuilder().WithName("s").
			WithAttribute("check-script", "scripts/check.go").WithLines("a", "b").BuildBlock()

		// when
		violations, err := validators.NewCheckScriptValidator(runner, entities.NewSettings()).Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		assert.Empty(t, violations)
		assert.Equal(t, []string{"scripts/check.go"}, runner.Paths)
		assert.Equal(t, "s", runner.Attributes[0]["name"])
		assert.Equal(t, "a\nb", runner.Contents[0])
	})

	t.Run("should report a non-empty script message", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &repositorydoubles.StubScriptRepository{Message: "too short"}
		block := entitybuilders.NewBlockBuilder().WithName("s").
			WithAttribute("check-script", "check.go").WithAttribute("severity", "warning").
			WithLines("a").BuildBlock()

		// when
		violations, err := validators.NewCheckScriptValidator(runner, entities.NewSettings()).Validate(context.Background(), block)

		// then
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Block main.go:s defined at line 1: too short", violations[0].Message)
		assert.Equal(t, entities.SeverityWarning, violations[0].Severity)
	})

	t.Run("should fail when the script fails", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &repositorydoubles.StubScriptRepository{Err: errors.New("panic: boom")}
		block := entitybuilders.NewBlockBuilder().WithAttribute("check-script", "check.go").WithLines("a").BuildBlock()

		// when
		_, err := validators.NewCheckScriptValidator(runner, entities.NewSettings()).Validate(context.Background(), block)

		// then
		assert.ErrorContains(t, err, "boom")
	})
}
