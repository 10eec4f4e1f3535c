package controllers

import (
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/blockwatch/internal/domain/commands"
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

// CheckController handles the root command: validate blocks of a diff and/or globs.
type CheckController struct {
	command  commands.Check
	settings *entities.Settings
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, settings *entities.Settings) *CheckController {
	return &CheckController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check [globs...]",
		Short: "Check blocks for dependency and content violations",
		Long: `Check the blocks touched by a unified diff read from standard input,
plus every file matching the given globs.

Without a diff and without globs, every file of the repository is checked.
Violations are printed to standard error as JSON and make the command fail.`,
	}
}

// AddFlags adds the check flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	addRunFlags(cmd)
}

// Execute runs a check and prints the findings.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) error {
	if err := loadSettings(cmd, it.settings); err != nil {
		return err
	}
	diff, err := readDiff(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(contextOf(cmd), commands.CheckOptions{
		Diff:     diff,
		Patterns: normalizeAll(args),
		Settings: it.settings,
	})
	if err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		logger.Debug(warning)
	}
	if !report.IsEmpty() {
		output, marshalErr := json.MarshalIndent(report, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to encode report: %w", marshalErr)
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), string(output))
	}
	if report.HasFailures() {
		return ErrViolations
	}
	return nil
}
