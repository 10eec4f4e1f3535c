package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const gitDir = ".git"

// FileRepository serves the files of the Git work tree that contains the working
// directory. Outside a work tree the working directory itself is the root.
type FileRepository struct {
	workDir string

	once    sync.Once
	root    string
	matcher gitignore.Matcher
	rootErr error
}

var _ repositories.FileRepository = (*FileRepository)(nil)

// NewFileRepository creates a FileRepository rooted at the current directory's work tree.
func NewFileRepository() *FileRepository {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	return NewFileRepositoryAt(workDir)
}

// NewFileRepositoryAt creates a FileRepository rooted at the work tree containing dir.
func NewFileRepositoryAt(dir string) *FileRepository {
	return &FileRepository{workDir: dir}
}

// Root returns the absolute repository root.
func (it *FileRepository) Root() (string, error) {
	it.once.Do(it.init)
	return it.root, it.rootErr
}

func (it *FileRepository) init() {
	abs, err := filepath.Abs(it.workDir)
	if err != nil {
		it.rootErr = fmt.Errorf("failed to resolve %q: %w", it.workDir, err)
		return
	}
	it.root = abs

	//nolint:exhaustruct // only DetectDotGit is relevant
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debugf("No Git repository found from %q, using it as root: %v", abs, err)
		return
	}
	worktree, err := repo.Worktree()
	if err != nil {
		logger.Debugf("Git repository has no work tree, using %q as root: %v", abs, err)
		return
	}
	it.root = worktree.Filesystem.Root()

	patterns, err := gitignore.ReadPatterns(osfs.New(it.root), nil)
	if err != nil {
		logger.Warnf("Failed to read .gitignore files: %v", err)
		return
	}
	it.matcher = gitignore.NewMatcher(patterns)
}

// Discover walks the repository and returns the files matching patterns.
func (it *FileRepository) Discover(ctx context.Context, patterns, ignore []string) ([]string, error) {
	root, err := it.Root()
	if err != nil {
		return nil, err
	}
	for _, pattern := range append(append([]string(nil), patterns...), ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, entities.NewConfigError("invalid glob pattern %q", pattern)
		}
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if entry.Name() == gitDir || it.isIgnored(rel, true, ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || it.isIgnored(rel, false, ignore) {
			return nil
		}
		if len(patterns) == 0 || matchesAny(patterns, rel) {
			files = append(files, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, walkErr)
	}
	return files, nil
}

// IsIgnored reports whether a file is excluded by the ignore globs or by .gitignore.
func (it *FileRepository) IsIgnored(path string, ignore []string) bool {
	if _, err := it.Root(); err != nil {
		return false
	}
	return it.isIgnored(entities.NormalizePath(path), false, ignore)
}

func (it *FileRepository) isIgnored(rel string, isDir bool, ignore []string) bool {
	if matchesAny(ignore, rel) {
		return true
	}
	return it.matcher != nil && it.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Exists reports whether path is a regular file under the root.
func (it *FileRepository) Exists(path string) bool {
	abs, err := it.abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the content of a repository file.
func (it *FileRepository) Read(path string) ([]byte, error) {
	abs, err := it.abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return data, nil
}

func (it *FileRepository) abs(path string) (string, error) {
	root, err := it.Root()
	if err != nil {
		return "", err
	}
	rel := entities.NormalizePath(path)
	if rel == ".." || strings.HasPrefix(rel, "../") || filepath.IsAbs(rel) {
		return "", errors.New("path " + path + " is outside of the repository")
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
