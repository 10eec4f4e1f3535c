package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/blockwatch/internal"
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/controllers"
)

func buildRootCommand(rootController entities.Controller) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "blockwatch [globs...]",
		Short: "Keep related blocks of code and docs in sync",
		Long: `Lint named blocks declared in source comments across languages.

Blocks are marked with <block name="..."> ... </block> tags inside comments.
A block can require other blocks to change with it (affects="file:name")
and opt into content rules: keep-sorted, keep-unique, line-pattern,
line-count, check-ai and check-script.

Usage modes:
  git diff --patch | blockwatch     Check the blocks touched by a diff
  blockwatch "src/**/*.go"          Check every block of the matching files
  blockwatch list                   List blocks as JSON`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return rootController.Execute(command, args)
		},
	}
	rootController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext.GetRootController())
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		if errors.Is(err, controllers.ErrViolations) {
			logger.Error("Found violations, see the report above")
			os.Exit(1)
		}
		logger.Fatalf("Error executing 'blockwatch': %s", err)
	}
}
