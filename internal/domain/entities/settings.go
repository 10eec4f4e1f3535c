package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultAIModel           = "gpt-4o-mini"
	defaultAIConcurrency     = 4
	defaultAITimeout         = 60 * time.Second
	defaultScriptConcurrency = 4
	defaultScriptTimeout     = 10 * time.Second

	envAIAPIKey = "BLOCKWATCH_AI_API_KEY"
	envAIAPIURL = "BLOCKWATCH_AI_API_URL"
	envAIModel  = "BLOCKWATCH_AI_MODEL"
)

// Settings is the configuration of a run: the optional `.blockwatch.yaml` file
// with the command-line flags merged on top.
type Settings struct {
	Enable     []string          `yaml:"enable"`
	Disable    []string          `yaml:"disable"`
	Ignore     []string          `yaml:"ignore"`
	Extensions map[string]string `yaml:"extensions"`
	AI         AISettings        `yaml:"ai"`
	Script     ScriptSettings    `yaml:"script"`
}

// AISettings configures the check-ai validator.
type AISettings struct {
	APIKey            string        `yaml:"api_key"`
	URL               string        `yaml:"url"`
	Model             string        `yaml:"model"`
	Concurrency       int           `yaml:"concurrency"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// ScriptSettings configures the check-script validator.
type ScriptSettings struct {
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	// Unrestricted lets scripts import any standard library package.
	Unrestricted bool `yaml:"unrestricted"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings returns the defaults, overlaid with the environment.
func NewSettings() *Settings {
	settings := &Settings{Extensions: make(map[string]string)}
	settings.applyDefaults()
	return settings
}

// LoadSettings reads and parses a settings file, expanding ${ENV} references.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	if settings.Extensions == nil {
		settings.Extensions = make(map[string]string)
	}

	settings.AI.APIKey = ExpandEnv(settings.AI.APIKey)
	settings.AI.URL = ExpandEnv(settings.AI.URL)
	settings.AI.Model = ExpandEnv(settings.AI.Model)
	settings.applyDefaults()
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".blockwatch.yaml",
		".blockwatch.yml",
		"blockwatch.yaml",
		"blockwatch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ExpandEnv expands ${VAR} references, warning about unset variables.
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// Merge lays the command-line selection on top of the file settings. Non-empty
// flag lists replace the configured ones; extension mappings are added.
func (it *Settings) Merge(enable, disable, ignore []string, extensions map[string]string) {
	if len(enable) > 0 {
		it.Enable = enable
	}
	if len(disable) > 0 {
		it.Disable = disable
	}
	it.Ignore = append(it.Ignore, ignore...)
	for key, value := range extensions {
		it.Extensions[key] = value
	}
}

// Selection returns the validator selection of the settings.
func (it *Settings) Selection() ValidatorSelection {
	return ValidatorSelection{Enable: it.Enable, Disable: it.Disable}
}

// Validate checks the settings against the known validator names and grammars.
func (it *Settings) Validate(validators, grammars []string) error {
	if err := it.Selection().Validate(validators); err != nil {
		return err
	}
	return it.ValidateExtensions(grammars)
}

// ValidateExtensions checks that every extension mapping targets a supported grammar key.
func (it *Settings) ValidateExtensions(grammars []string) error {
	for key, value := range it.Extensions {
		if strings.TrimSpace(key) == "" {
			return NewConfigError("extension mapping %q has an empty key", key+"="+value)
		}
		if !containsString(grammars, value) {
			return NewConfigError("extension mapping %s=%s targets an unsupported extension", key, value)
		}
	}
	return nil
}

// ParseExtensionMappings parses repeated "key=value" flag values.
func ParseExtensionMappings(values []string) (map[string]string, error) {
	mappings := make(map[string]string, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		key, value = strings.TrimPrefix(strings.TrimSpace(key), "."), strings.TrimPrefix(strings.TrimSpace(value), ".")
		if !ok || key == "" || value == "" {
			return nil, NewConfigError("invalid extension mapping %q, expected key=value", raw)
		}
		mappings[key] = value
	}
	return mappings, nil
}

func (it *Settings) applyDefaults() {
	if key := os.Getenv(envAIAPIKey); key != "" {
		it.AI.APIKey = key
	}
	if url := os.Getenv(envAIAPIURL); url != "" {
		it.AI.URL = url
	}
	if model := os.Getenv(envAIModel); model != "" {
		it.AI.Model = model
	}
	if it.AI.Model == "" {
		it.AI.Model = defaultAIModel
	}
	if it.AI.Concurrency <= 0 {
		it.AI.Concurrency = defaultAIConcurrency
	}
	if it.AI.Timeout <= 0 {
		it.AI.Timeout = defaultAITimeout
	}
	if it.Script.Concurrency <= 0 {
		it.Script.Concurrency = defaultScriptConcurrency
	}
	if it.Script.Timeout <= 0 {
		it.Script.Timeout = defaultScriptTimeout
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
