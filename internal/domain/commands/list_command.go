package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, opts ListOptions) (*entities.Listing, error)
}

// ListOptions holds runtime options for listing blocks.
type ListOptions struct {
	Diff     []byte
	Patterns []string
	Settings *entities.Settings
}

// ListCommand lists the blocks in scope.
type ListCommand struct {
	loader   *BlockLoader
	grammars *infraRepos.GrammarRegistry
}

// NewListCommand creates a new ListCommand.
func NewListCommand(loader *BlockLoader, grammars *infraRepos.GrammarRegistry) *ListCommand {
	return &ListCommand{loader: loader, grammars: grammars}
}

// Execute returns the listing of every parsed file. Files that failed to parse are
// left out of the listing and reported through the returned error, together with
// the listing of the others.
func (it *ListCommand) Execute(ctx context.Context, opts ListOptions) (*entities.Listing, error) {
	if err := opts.Settings.ValidateExtensions(it.grammars.Extensions()); err != nil {
		return nil, err
	}

	loaded, err := it.loader.Load(ctx, LoadOptions{
		Diff:     opts.Diff,
		Patterns: opts.Patterns,
		Settings: opts.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	listing := entities.NewListing(loaded.Files)
	if len(loaded.ParseErrors) == 0 {
		return listing, nil
	}
	errs := make([]error, 0, len(loaded.ParseErrors))
	for _, parseErr := range loaded.ParseErrors {
		errs = append(errs, parseErr)
	}
	return listing, errors.Join(errs...)
}
