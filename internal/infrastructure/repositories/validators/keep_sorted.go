package validators

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const (
	KeepSortedName          = "keep-sorted"
	keepSortedPatternAttr   = "keep-sorted-pattern"
	keepSortedFormatAttr    = "keep-sorted-format"
	sortOrderAsc            = "asc"
	sortOrderDesc           = "desc"
	sortFormatLexicographic = "lexicographic"
	sortFormatNumeric       = "numeric"
	sortFormatSemver        = "semver"
)

// KeepSortedValidator checks that the lines (or their extracted keys) are ordered.
type KeepSortedValidator struct{}

var _ repositories.ValidatorRepository = (*KeepSortedValidator)(nil)

// NewKeepSortedValidator creates a KeepSortedValidator.
func NewKeepSortedValidator() *KeepSortedValidator {
	return &KeepSortedValidator{}
}

func (it *KeepSortedValidator) Name() string { return KeepSortedName }

func (it *KeepSortedValidator) External() bool { return false }

func (it *KeepSortedValidator) Detect(block *entities.Block) bool {
	return block.HasAttribute(KeepSortedName)
}

func (it *KeepSortedValidator) Validate(_ context.Context, block *entities.Block) ([]entities.Violation, error) {
	order, err := parseSortOrder(block.Attributes[KeepSortedName])
	if err != nil {
		return nil, err
	}
	compare, err := comparatorFor(block.Attributes[keepSortedFormatAttr])
	if err != nil {
		return nil, err
	}
	extractor, err := entities.NewKeyExtractor(block.Attributes[keepSortedPatternAttr])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keepSortedPatternAttr, err)
	}

	keyed := extractor.Extract(block.Lines)
	for i := 1; i < len(keyed); i++ {
		cmp, cmpErr := compare(keyed[i-1].Key, keyed[i].Key)
		if cmpErr != nil {
			return nil, cmpErr
		}
		if (order == sortOrderAsc && cmp > 0) || (order == sortOrderDesc && cmp < 0) {
			return []entities.Violation{lineViolation(block, KeepSortedName, keyed[i].Line,
				fmt.Sprintf("%s has an out-of-order line %d (%s)", blockLabel(block), keyed[i].Line.Number, order),
				map[string]any{"order": order, "previous_line": keyed[i-1].Line.Number},
			)}, nil
		}
	}
	return nil, nil
}

func parseSortOrder(value string) (string, error) {
	switch order := strings.ToLower(strings.TrimSpace(value)); order {
	case "":
		return sortOrderAsc, nil
	case sortOrderAsc, sortOrderDesc:
		return order, nil
	default:
		return "", fmt.Errorf("unknown sort order %q, expected %q or %q", value, sortOrderAsc, sortOrderDesc)
	}
}

func comparatorFor(format string) (func(a, b string) (int, error), error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", sortFormatLexicographic:
		return func(a, b string) (int, error) { return strings.Compare(a, b), nil }, nil
	case sortFormatNumeric:
		return compareNumeric, nil
	case sortFormatSemver:
		return compareSemver, nil
	default:
		return nil, fmt.Errorf("unknown sort format %q, expected %q, %q or %q",
			format, sortFormatLexicographic, sortFormatNumeric, sortFormatSemver)
	}
}

func compareNumeric(a, b string) (int, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, fmt.Errorf("key %q is not a number", a)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, fmt.Errorf("key %q is not a number", b)
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	default:
		return 0, nil
	}
}

func compareSemver(a, b string) (int, error) {
	x, y := canonicalVersion(a), canonicalVersion(b)
	if !semver.IsValid(x) {
		return 0, fmt.Errorf("key %q is not a semantic version", a)
	}
	if !semver.IsValid(y) {
		return 0, fmt.Errorf("key %q is not a semantic version", b)
	}
	return semver.Compare(x, y), nil
}

func canonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
