package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
)

// LoadOptions describes which files a run covers.
type LoadOptions struct {
	// Diff is a unified diff; empty means there is none.
	Diff []byte
	// Patterns are globs of files that are always checked in full.
	Patterns []string
	Settings *entities.Settings
}

// LoadResult holds the parsed block trees in discovery order.
type LoadResult struct {
	Files       []*entities.FileBlocks
	ParseErrors []*entities.ParseError
}

type scopedFile struct {
	path     string
	modified *entities.LineSet
	fullScan bool
	explicit bool
}

// BlockLoader discovers the files of a run and builds their classified block trees.
type BlockLoader struct {
	files    repositories.FileRepository
	diffs    repositories.DiffRepository
	grammars *infraRepos.GrammarRegistry
}

// NewBlockLoader creates a new BlockLoader.
func NewBlockLoader(
	files repositories.FileRepository,
	diffs repositories.DiffRepository,
	grammars *infraRepos.GrammarRegistry,
) *BlockLoader {
	return &BlockLoader{files: files, diffs: diffs, grammars: grammars}
}

// Load parses every file in scope concurrently, then loads the files referenced by
// modified blocks that are not in scope yet so their blocks can be resolved. A file
// that fails to parse is recorded and skipped; a malformed diff fails the whole load.
func (it *BlockLoader) Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	scope, err := it.scope(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loading %d file(s)", len(scope))

	result := &LoadResult{}
	parsed, parseErrors := it.parseAll(ctx, scope, opts.Settings)
	result.Files = append(result.Files, parsed...)
	result.ParseErrors = append(result.ParseErrors, parseErrors...)

	var referenced []scopedFile
	for _, path := range entities.AffectedFiles(result.Files) {
		if !it.files.Exists(path) || it.files.IsIgnored(path, opts.Settings.Ignore) {
			continue
		}
		if _, grammarErr := it.grammars.Resolve(path, opts.Settings.Extensions); grammarErr != nil {
			continue
		}
		referenced = append(referenced, scopedFile{path: path})
	}
	if len(referenced) > 0 {
		logger.Debugf("Loading %d file(s) referenced by modified blocks", len(referenced))
		parsed, parseErrors = it.parseAll(ctx, referenced, opts.Settings)
		result.Files = append(result.Files, parsed...)
		result.ParseErrors = append(result.ParseErrors, parseErrors...)
	}
	return result, nil
}

func (it *BlockLoader) scope(ctx context.Context, opts LoadOptions) ([]scopedFile, error) {
	var (
		scope []scopedFile
		index = make(map[string]int)
	)
	add := func(file scopedFile) {
		if i, ok := index[file.path]; ok {
			scope[i].fullScan = scope[i].fullScan || file.fullScan
			scope[i].explicit = scope[i].explicit || file.explicit
			return
		}
		index[file.path] = len(scope)
		scope = append(scope, file)
	}

	hasDiff := len(bytes.TrimSpace(opts.Diff)) > 0
	if hasDiff {
		modified, err := it.diffs.ModifiedLines(opts.Diff)
		if err != nil {
			return nil, err
		}
		for _, path := range modified.Paths() {
			if it.files.IsIgnored(path, opts.Settings.Ignore) || !it.files.Exists(path) {
				logger.Debugf("Skipping %q from the diff", path)
				continue
			}
			if _, grammarErr := it.grammars.Resolve(path, opts.Settings.Extensions); grammarErr != nil {
				logger.Debugf("Skipping %q from the diff: %v", path, grammarErr)
				continue
			}
			lines, _ := modified.Get(path)
			add(scopedFile{path: path, modified: lines})
		}
	}

	if len(opts.Patterns) > 0 || !hasDiff {
		discovered, err := it.files.Discover(ctx, opts.Patterns, opts.Settings.Ignore)
		if err != nil {
			return nil, err
		}
		literals := literalPatterns(opts.Patterns)
		for _, path := range discovered {
			explicit := literals[path]
			if _, grammarErr := it.grammars.Resolve(path, opts.Settings.Extensions); grammarErr != nil && !explicit {
				continue
			}
			add(scopedFile{path: path, fullScan: true, explicit: explicit})
		}
	}
	return scope, nil
}

func (it *BlockLoader) parseAll(
	ctx context.Context,
	scope []scopedFile,
	settings *entities.Settings,
) ([]*entities.FileBlocks, []*entities.ParseError) {
	trees := make([]*entities.FileBlocks, len(scope))
	failures := make([]*entities.ParseError, len(scope))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range scope {
		group.Go(func() error {
			tree, err := it.parse(groupCtx, file, settings)
			if err != nil {
				var parseErr *entities.ParseError
				if !errors.As(err, &parseErr) {
					parseErr = entities.NewParseError(file.path, 0, "%v", err)
				}
				logger.Warnf("Skipping %q: %v", file.path, parseErr)
				failures[i] = parseErr
				return nil
			}
			trees[i] = tree
			return nil
		})
	}
	_ = group.Wait() // workers record failures per file instead of returning them

	var (
		files []*entities.FileBlocks
		errs  []*entities.ParseError
	)
	for i := range scope {
		if trees[i] != nil {
			files = append(files, trees[i])
		}
		if failures[i] != nil {
			errs = append(errs, failures[i])
		}
	}
	return files, errs
}

func (it *BlockLoader) parse(ctx context.Context, file scopedFile, settings *entities.Settings) (*entities.FileBlocks, error) {
	grammar, err := it.grammars.Resolve(file.path, settings.Extensions)
	if err != nil {
		return nil, entities.NewParseError(file.path, 0, "unknown grammar: %v", err)
	}
	source, err := it.files.Read(file.path)
	if err != nil {
		return nil, err
	}
	comments, err := grammar.Comments(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%s grammar: %w", grammar.Name(), err)
	}
	tree, err := entities.BuildBlockTree(file.path, source, comments)
	if err != nil {
		return nil, err
	}
	entities.ClassifyChanges(tree, file.modified, file.fullScan)
	logger.Debugf("Parsed %d top-level block(s) from %q", len(tree.Blocks), file.path)
	return tree, nil
}

// literalPatterns returns the patterns that name a single file rather than a glob.
func literalPatterns(patterns []string) map[string]bool {
	literals := make(map[string]bool)
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{\\") {
			literals[entities.NormalizePath(pattern)] = true
		}
	}
	return literals
}
