package gitdiff

import (
	"bytes"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/sourcegraph/go-diff/diff"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const devNull = "/dev/null"

// DiffRepository reads unified diffs such as the output of `git diff`.
type DiffRepository struct{}

var _ repositories.DiffRepository = (*DiffRepository)(nil)

// NewDiffRepository creates a DiffRepository.
func NewDiffRepository() *DiffRepository {
	return &DiffRepository{}
}

// ModifiedLines maps every post-change file of the diff to its touched lines. Added
// lines count as modified. A deletion that is not replaced by an addition marks the
// surviving context lines right around it, so a zero-context diff of a pure deletion
// contributes nothing.
func (it *DiffRepository) ModifiedLines(raw []byte) (*entities.ModifiedLines, error) {
	modified := entities.NewModifiedLines()
	if len(bytes.TrimSpace(raw)) == 0 {
		return modified, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, entities.NewParseError("", 0, "malformed diff: %v", err)
	}

	for _, fileDiff := range fileDiffs {
		path := newFilePath(fileDiff)
		if path == "" {
			logger.Debugf("Skipping deleted file %q", fileDiff.OrigName)
			continue
		}
		set := modified.For(path)
		for _, hunk := range fileDiff.Hunks {
			markHunk(set, int(hunk.NewStartLine), hunk.Body)
		}
		logger.Debugf("Diff touches %d line(s) of %q", set.Len(), path)
	}
	return modified, nil
}

func newFilePath(fileDiff *diff.FileDiff) string {
	name := strings.TrimSpace(fileDiff.NewName)
	if name == "" || name == devNull {
		return ""
	}
	return entities.NormalizePath(strings.TrimPrefix(name, "b/"))
}

func markHunk(set *entities.LineSet, newLine int, body []byte) {
	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		switch kindOf(lines[i]) {
		case '+':
			set.Add(newLine)
			newLine++
		case '-':
			end := i
			for end < len(lines) && (kindOf(lines[end]) == '-' || kindOf(lines[end]) == '\\') {
				end++
			}
			if end < len(lines) && kindOf(lines[end]) == '+' {
				// replaced lines are reported through the additions
				i = end - 1
				continue
			}
			if i > 0 && kindOf(lines[i-1]) == ' ' {
				set.Add(newLine - 1)
			}
			if end < len(lines) && kindOf(lines[end]) == ' ' {
				set.Add(newLine)
			}
			i = end - 1
		case '\\':
		default:
			newLine++
		}
	}
}

// kindOf returns the marker of a hunk line. Editors sometimes strip the single space
// of empty context lines, so an empty line is context too.
func kindOf(line string) byte {
	if line == "" {
		return ' '
	}
	switch line[0] {
	case '+', '-', '\\':
		return line[0]
	default:
		return ' '
	}
}
