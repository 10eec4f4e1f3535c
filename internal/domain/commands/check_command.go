package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
)

// Check is the interface for the check command (the default mode).
type Check interface {
	Execute(ctx context.Context, opts CheckOptions) (*entities.Report, error)
}

// CheckOptions holds runtime options for a check run.
type CheckOptions struct {
	Diff     []byte
	Patterns []string
	Settings *entities.Settings
}

// CheckCommand runs the dependency check and the content validators.
type CheckCommand struct {
	loader     *BlockLoader
	pipeline   *ValidatorPipeline
	validators *infraRepos.ValidatorRegistry
	grammars   *infraRepos.GrammarRegistry
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	loader *BlockLoader,
	pipeline *ValidatorPipeline,
	validators *infraRepos.ValidatorRegistry,
	grammars *infraRepos.GrammarRegistry,
) *CheckCommand {
	return &CheckCommand{
		loader:     loader,
		pipeline:   pipeline,
		validators: validators,
		grammars:   grammars,
	}
}

// Execute loads the blocks in scope, then checks `affects` edges and content rules.
// Only configuration errors and malformed diffs are returned as errors; everything
// else ends up in the report.
func (it *CheckCommand) Execute(ctx context.Context, opts CheckOptions) (*entities.Report, error) {
	if err := opts.Settings.Validate(it.CheckNames(), it.grammars.Extensions()); err != nil {
		return nil, err
	}
	selection := opts.Settings.Selection()

	loaded, err := it.loader.Load(ctx, LoadOptions{
		Diff:     opts.Diff,
		Patterns: opts.Patterns,
		Settings: opts.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	report := entities.NewReport()
	for _, parseErr := range loaded.ParseErrors {
		report.AddParseError(parseErr)
	}

	// every tree is built at this point, so cross-file edges can be resolved
	graph := entities.NewDependencyGraph(loaded.Files)
	for _, edge := range graph.Unresolved() {
		note := fmt.Sprintf("%s:%s references unknown block %s",
			edge.Source.Path, edge.Source.DisplayName(), edge.Target)
		logger.Debug(note)
		report.Warnings = append(report.Warnings, note)
	}

	var (
		dependencyResults []entities.Result
		validatorResults  []entities.Result
		group             errgroup.Group
	)
	if selection.Allows(entities.AffectsValidatorName) {
		group.Go(func() error {
			dependencyResults = graph.Check()
			return nil
		})
	}
	group.Go(func() error {
		validatorResults = it.pipeline.Run(ctx, loaded.Files, selection)
		return nil
	})
	_ = group.Wait() // both sides only produce results

	report.Add(dependencyResults...)
	report.Add(validatorResults...)
	logger.Infof("Checked %d file(s): %d violation(s), %d execution error(s)",
		len(loaded.Files), len(report.Violations()), len(report.ExecutionErrors()))
	return report, nil
}

// CheckNames returns every selectable check: `affects` followed by the registry.
func (it *CheckCommand) CheckNames() []string {
	return append([]string{entities.AffectsValidatorName}, it.validators.Names()...)
}
