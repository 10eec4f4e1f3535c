package yaegi

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"golang.org/x/sync/semaphore"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// EntryPoint is the function every validation script must define:
//
//	func Validate(attributes map[string]string, content string) string
const EntryPoint = "main.Validate"

// scripts may only import these unless the settings lift the restriction
var sandboxedPackages = map[string]bool{ //nolint:gochecknoglobals // fixed allow-list
	"bytes":           true,
	"encoding/base64": true,
	"encoding/json":   true,
	"errors":          true,
	"fmt":             true,
	"math":            true,
	"path":            true,
	"regexp":          true,
	"sort":            true,
	"strconv":         true,
	"strings":         true,
	"time":            true,
	"unicode":         true,
	"unicode/utf8":    true,
}

type validateFunc = func(map[string]string, string) string

// ScriptRepository runs Go validation scripts with the yaegi interpreter. Every
// call gets a fresh interpreter, so scripts share no state.
//
// Interpreted calls cannot be interrupted. A script that outlives its context keeps
// running until it returns or the process exits, and it holds one of the
// `script.concurrency` slots for that whole time.
type ScriptRepository struct {
	files    repositories.FileRepository
	settings *entities.Settings

	slotsOnce sync.Once
	slots     *semaphore.Weighted
}

var _ repositories.ScriptRepository = (*ScriptRepository)(nil)

// NewScriptRepository creates a ScriptRepository reading scripts through files.
func NewScriptRepository(files repositories.FileRepository, settings *entities.Settings) *ScriptRepository {
	return &ScriptRepository{files: files, settings: settings}
}

// Run loads the script at path and calls its Validate function.
func (it *ScriptRepository) Run(
	ctx context.Context,
	path string,
	attributes map[string]string,
	content string,
) (string, error) {
	source, err := it.files.Read(entities.NormalizePath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return it.Eval(ctx, path, string(source), attributes, content)
}

// Eval interprets source and calls its Validate function.
func (it *ScriptRepository) Eval(
	ctx context.Context,
	name, source string,
	attributes map[string]string,
	content string,
) (string, error) {
	if !it.settings.Script.Unrestricted {
		if err := checkImports(name, source); err != nil {
			return "", err
		}
	}

	slots := it.scriptSlots()
	if err := slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("no free script slot: %w", err)
	}
	released := false
	defer func() {
		if !released {
			slots.Release(1)
		}
	}()

	//nolint:exhaustruct // default interpreter options
	interpreter := interp.New(interp.Options{})
	if err := interpreter.Use(stdlib.Symbols); err != nil {
		return "", fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if _, err := interpreter.EvalWithContext(ctx, source); err != nil {
		return "", fmt.Errorf("failed to evaluate script: %w", err)
	}
	value, err := interpreter.EvalWithContext(ctx, EntryPoint)
	if err != nil {
		return "", fmt.Errorf("script does not define Validate: %w", err)
	}
	validate, ok := value.Interface().(validateFunc)
	if !ok {
		return "", fmt.Errorf("function Validate has signature %s, expected func(map[string]string, string) string", value.Type())
	}

	type outcome struct {
		message string
		err     error
	}
	done := make(chan outcome, 1)
	released = true // the call below owns the slot now
	go func() {
		defer slots.Release(1)
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- outcome{err: fmt.Errorf("script panicked: %v", recovered)}
			}
		}()
		done <- outcome{message: validate(attributes, content)}
	}()

	select {
	case result := <-done:
		logger.Debugf("Script %q returned %q", name, result.message)
		return result.message, result.err
	case <-ctx.Done():
		return "", fmt.Errorf("script timed out: %w", ctx.Err())
	}
}

func (it *ScriptRepository) scriptSlots() *semaphore.Weighted {
	it.slotsOnce.Do(func() {
		limit := max(it.settings.Script.Concurrency, 1)
		it.slots = semaphore.NewWeighted(int64(limit))
	})
	return it.slots
}

func checkImports(name, source string) error {
	file, err := parser.ParseFile(token.NewFileSet(), name, source, parser.ImportsOnly)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}
	var forbidden []string
	for _, spec := range file.Imports {
		pkg, unquoteErr := strconv.Unquote(spec.Path.Value)
		if unquoteErr != nil || !sandboxedPackages[pkg] {
			forbidden = append(forbidden, spec.Path.Value)
		}
	}
	if len(forbidden) > 0 {
		allowed := make([]string, 0, len(sandboxedPackages))
		for pkg := range sandboxedPackages {
			allowed = append(allowed, pkg)
		}
		sort.Strings(allowed)
		return fmt.Errorf("forbidden imports %s (allowed: %s)",
			strings.Join(forbidden, ", "), strings.Join(allowed, ", "))
	}
	return nil
}
