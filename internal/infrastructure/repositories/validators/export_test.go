//go:build unit

package validators

// ParseLineCount exposes parseLineCount for testing.
func ParseLineCount(value string) (string, int, error) {
	return parseLineCount(value)
}

// CompareSemver exposes compareSemver for testing.
func CompareSemver(a, b string) (int, error) {
	return compareSemver(a, b)
}
