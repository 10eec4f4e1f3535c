//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/blockwatch/internal/domain/commands"
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/validators"
	"github.com/rios0rios0/blockwatch/test/domain/entitybuilders"
	"github.com/rios0rios0/blockwatch/test/infrastructure/repositorydoubles"
)

func TestValidatorPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("should validate modified blocks only, in file, block and registry order", func(t *testing.T) {
		t.Parallel()

		// given
		first := repositorydoubles.NewSpyValidatorRepository("first")
		second := repositorydoubles.NewSpyValidatorRepository("second")
		second.Violations = []entities.Violation{{Code: "second", Message: "bad", Severity: entities.SeverityError}}
		pipeline := commands.NewValidatorPipeline(infraRepos.NewValidatorRegistry(first, second))

		a := entitybuilders.NewBlockBuilder().WithPath("a.go").WithName("a").
			WithAttribute("first", "").WithAttribute("second", "").BuildBlock()
		skipped := entitybuilders.NewBlockBuilder().WithPath("a.go").WithName("skipped").WithStartLine(10).
			WithAttribute("first", "").WithModified(false).BuildBlock()
		b := entitybuilders.NewBlockBuilder().WithPath("b.go").WithName("b").
			WithAttribute("second", "").BuildBlock()
		files := []*entities.FileBlocks{
			{Path: "a.go", Blocks: []*entities.Block{a, skipped}},
			{Path: "b.go", Blocks: []*entities.Block{b}},
		}

		// when
		results := pipeline.Run(context.Background(), files, entities.ValidatorSelection{})

		// then
		require.Len(t, results, 3)
		assert.Equal(t, "first", results[0].Validator)
		assert.Same(t, a, results[0].Block)
		assert.Equal(t, entities.OutcomePass, results[0].Outcome)
		assert.Equal(t, "second", results[1].Validator)
		assert.Equal(t, entities.OutcomeViolation, results[1].Outcome)
		assert.Same(t, b, results[2].Block)
		assert.Equal(t, 1, first.CallCount())
	})

	t.Run("should honor the validator selection", func(t *testing.T) {
		t.Parallel()

		// given
		first := repositorydoubles.NewSpyValidatorRepository("first")
		second := repositorydoubles.NewSpyValidatorRepository("second")
		pipeline := commands.NewValidatorPipeline(infraRepos.NewValidatorRegistry(first, second))
		block := entitybuilders.NewBlockBuilder().WithAttribute("first", "").WithAttribute("second", "").BuildBlock()
		files := []*entities.FileBlocks{{Path: "main.go", Blocks: []*entities.Block{block}}}

		// when
		results := pipeline.Run(context.Background(), files, entities.ValidatorSelection{Disable: []string{"first"}})

		// then
		require.Len(t, results, 1)
		assert.Equal(t, "second", results[0].Validator)
		assert.Zero(t, first.CallCount())
	})

	t.Run("should turn errors and panics into execution errors", func(t *testing.T) {
		t.Parallel()

		// given
		failing := repositorydoubles.NewSpyValidatorRepository("failing")
		failing.Err = errors.New("bad attribute")
		crashing := repositorydoubles.NewSpyValidatorRepository("crashing")
		crashing.Panic = "index out of range"
		pipeline := commands.NewValidatorPipeline(infraRepos.NewValidatorRegistry(failing, crashing))
		block := entitybuilders.NewBlockBuilder().WithAttribute("failing", "").WithAttribute("crashing", "").BuildBlock()
		files := []*entities.FileBlocks{{Path: "main.go", Blocks: []*entities.Block{block}}}

		// when
		results := pipeline.Run(context.Background(), files, entities.ValidatorSelection{})

		// then
		require.Len(t, results, 2)
		for _, result := range results {
			assert.Equal(t, entities.OutcomeExecutionError, result.Outcome)
			var execErr *entities.ExecutionError
			require.ErrorAs(t, result.Err, &execErr)
			assert.Equal(t, result.Validator, execErr.Validator)
		}
		assert.ErrorContains(t, results[1].Err, "index out of range")
	})

	t.Run("should time out slow external validators", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewSettings()
		settings.AI.Timeout = 20 * time.Millisecond
		client := &repositorydoubles.StubAIRepository{Block: true}
		pipeline := commands.NewValidatorPipeline(infraRepos.NewValidatorRegistry(
			validators.NewCheckAIValidator(client, settings),
		))
		block := entitybuilders.NewBlockBuilder().WithAttribute("check-ai", "is fine").WithLines("x").BuildBlock()
		files := []*entities.FileBlocks{{Path: "main.go", Blocks: []*entities.Block{block}}}

		// when
		results := pipeline.Run(context.Background(), files, entities.ValidatorSelection{})

		// then
		require.Len(t, results, 1)
		assert.Equal(t, entities.OutcomeExecutionError, results[0].Outcome)
		assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	})

	t.Run("should run every external call of a large batch", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewSettings()
		settings.AI.Concurrency = 2
		client := &repositorydoubles.StubAIRepository{}
		pipeline := commands.NewValidatorPipeline(infraRepos.NewValidatorRegistry(
			validators.NewCheckAIValidator(client, settings),
		))
		var blocks []*entities.Block
		for i := range 10 {
			blocks = append(blocks, entitybuilders.NewBlockBuilder().WithStartLine(i*3+1).
				WithAttribute("check-ai", "is fine").WithLines("x").BuildBlock())
		}
		files := []*entities.FileBlocks{{Path: "main.go", Blocks: blocks}}

		// when
		results := pipeline.Run(context.Background(), files, entities.ValidatorSelection{})

		// then
		require.Len(t, results, 10)
		for i, result := range results {
			assert.Same(t, blocks[i], result.Block)
			assert.Equal(t, entities.OutcomePass, result.Outcome)
		}
		assert.Equal(t, 10, client.CallCount())
	})
}
