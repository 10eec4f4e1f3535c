package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	domainRepos "github.com/rios0rios0/blockwatch/internal/domain/repositories"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/gitdiff"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/gomod"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/makefile"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/markdown"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/openai"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/terraform"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/treesitter"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/validators"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/repositories/yaegi"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register grammar registry with every supported language
	if err := container.Provide(NewDefaultGrammarRegistry); err != nil {
		return err
	}

	// Register capability implementations bound to their domain interfaces
	if err := container.Provide(func() domainRepos.DiffRepository {
		return gitdiff.NewDiffRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.FileRepository {
		return filesystem.NewFileRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(settings *entities.Settings) domainRepos.AIRepository {
		return openai.NewAIRepository(settings)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(
		files domainRepos.FileRepository,
		settings *entities.Settings,
	) domainRepos.ScriptRepository {
		return yaegi.NewScriptRepository(files, settings)
	}); err != nil {
		return err
	}

	// Register validator registry in evaluation order
	if err := container.Provide(NewDefaultValidatorRegistry); err != nil {
		return err
	}

	return nil
}

// NewDefaultGrammarRegistry creates a registry holding every supported grammar.
func NewDefaultGrammarRegistry() *GrammarRegistry {
	reg := NewGrammarRegistry()
	for _, grammar := range treesitter.Grammars() {
		reg.Register(grammar)
	}
	reg.Register(terraform.NewGrammarRepository())
	reg.Register(gomod.NewModGrammarRepository())
	reg.Register(gomod.NewWorkGrammarRepository())
	reg.Register(makefile.NewGrammarRepository())
	reg.Register(markdown.NewGrammarRepository())
	return reg
}

// NewDefaultValidatorRegistry creates the validator table in evaluation order.
func NewDefaultValidatorRegistry(
	ai domainRepos.AIRepository,
	scripts domainRepos.ScriptRepository,
	settings *entities.Settings,
) *ValidatorRegistry {
	return NewValidatorRegistry(
		validators.NewKeepSortedValidator(),
		validators.NewKeepUniqueValidator(),
		validators.NewLinePatternValidator(),
		validators.NewLineCountValidator(),
		validators.NewCheckAIValidator(ai, settings),
		validators.NewCheckScriptValidator(scripts, settings),
	)
}
