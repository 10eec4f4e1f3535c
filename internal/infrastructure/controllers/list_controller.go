package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/blockwatch/internal/domain/commands"
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command  commands.List
	settings *entities.Settings
}

// NewListController creates a new ListController.
func NewListController(command commands.List, settings *entities.Settings) *ListController {
	return &ListController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list [globs...]",
		Short: "List blocks as JSON",
		Long: `List the blocks of the files in scope as a JSON object mapping each file
to its blocks (name, line, column, is_content_modified, attributes).

The scope is chosen like for the check: a diff on standard input and/or globs.`,
	}
}

// AddFlags adds the list flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	addRunFlags(cmd)
}

// Execute prints the listing to standard output.
func (it *ListController) Execute(cmd *cobra.Command, args []string) error {
	if err := loadSettings(cmd, it.settings); err != nil {
		return err
	}
	diff, err := readDiff(cmd)
	if err != nil {
		return err
	}

	listing, listErr := it.command.Execute(contextOf(cmd), commands.ListOptions{
		Diff:     diff,
		Patterns: normalizeAll(args),
		Settings: it.settings,
	})
	if listing != nil {
		output, marshalErr := json.MarshalIndent(listing, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to encode listing: %w", marshalErr)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	}
	return listErr
}
