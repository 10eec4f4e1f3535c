//go:build unit

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/blockwatch/internal"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the application with every layer wired", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		var (
			app        *internal.AppInternal
			validators *repositories.ValidatorRegistry
			grammars   *repositories.GrammarRegistry
		)
		err := container.Invoke(func(
			appInternal *internal.AppInternal,
			validatorRegistry *repositories.ValidatorRegistry,
			grammarRegistry *repositories.GrammarRegistry,
		) {
			app, validators, grammars = appInternal, validatorRegistry, grammarRegistry
		})

		// then
		require.NoError(t, err)
		assert.Len(t, app.GetControllers(), 2)
		assert.Equal(t, "check [globs...]", app.GetRootController().GetBind().Use)
		assert.Len(t, validators.Names(), 6)
		for _, extension := range []string{"go", "py", "md", "tf", "go.mod", "Makefile", "d.ts"} {
			assert.Contains(t, grammars.Extensions(), extension)
		}
	})
}
