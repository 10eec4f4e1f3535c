package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

const (
	flagConfig    = "config"
	flagEnable    = "enable"
	flagDisable   = "disable"
	flagIgnore    = "ignore"
	flagExtension = "extension"

	envTerminalMode = "BLOCKWATCH_TERMINAL_MODE"
)

// ErrViolations is returned when a check finished but found problems.
var ErrViolations = errors.New("blocks have violations")

// addRunFlags adds the flags shared by every command that loads blocks.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagConfig, "c", "",
		"Path to config file (default: auto-detect .blockwatch.yaml)")
	cmd.Flags().StringSlice(flagEnable, nil,
		"Only run these validators (repeatable, cannot be combined with --disable)")
	cmd.Flags().StringSlice(flagDisable, nil,
		"Skip these validators (repeatable, cannot be combined with --enable)")
	cmd.Flags().StringArray(flagIgnore, nil,
		"Glob of files to ignore, relative to the repository root (repeatable)")
	cmd.Flags().StringArrayP(flagExtension, "E", nil,
		"Map an unsupported extension to a supported one, e.g. -E cxx=cpp (repeatable)")
}

// loadSettings reads the config file into settings and merges the flags on top.
// settings is shared with the repositories, so it is updated in place.
func loadSettings(cmd *cobra.Command, settings *entities.Settings) error {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
		loaded, err := entities.LoadSettings(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		*settings = *loaded
	}

	enable, _ := cmd.Flags().GetStringSlice(flagEnable)
	disable, _ := cmd.Flags().GetStringSlice(flagDisable)
	ignore, _ := cmd.Flags().GetStringArray(flagIgnore)
	rawExtensions, _ := cmd.Flags().GetStringArray(flagExtension)
	extensions, err := entities.ParseExtensionMappings(rawExtensions)
	if err != nil {
		return err
	}
	settings.Merge(trimAll(enable), trimAll(disable), normalizeAll(ignore), extensions)
	return nil
}

// readDiff reads the unified diff piped to the command. Nothing is read when the
// input is an interactive terminal.
func readDiff(cmd *cobra.Command) ([]byte, error) {
	if os.Getenv(envTerminalMode) == "true" {
		return nil, nil
	}
	input := cmd.InOrStdin()
	if file, ok := input.(*os.File); ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return nil, nil
	}
	diff, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff from stdin: %w", err)
	}
	return diff, nil
}

func trimAll(values []string) []string {
	var trimmed []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			trimmed = append(trimmed, value)
		}
	}
	return trimmed
}

func normalizeAll(patterns []string) []string {
	normalized := trimAll(patterns)
	for i, pattern := range normalized {
		normalized[i] = strings.TrimPrefix(pattern, "./")
	}
	return normalized
}

// contextOf returns the command context, which is unset when cobra did not start the command.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
