package entities

import "sort"

// LineRange is a closed interval of 1-based line numbers.
type LineRange struct {
	Start int
	End   int
}

// LineSet is an ordered set of line numbers stored as sorted, non-overlapping ranges.
type LineSet struct {
	ranges []LineRange
}

// NewLineSet creates a set holding the given lines.
func NewLineSet(lines ...int) *LineSet {
	set := &LineSet{}
	for _, line := range lines {
		set.Add(line)
	}
	return set
}

// Add inserts a single line.
func (s *LineSet) Add(line int) {
	s.AddRange(line, line)
}

// AddRange inserts every line of [start, end], merging adjacent ranges.
func (s *LineSet) AddRange(start, end int) {
	if end < start {
		return
	}
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End >= start-1 })
	j := i
	for j < len(s.ranges) && s.ranges[j].Start <= end+1 {
		start = min(start, s.ranges[j].Start)
		end = max(end, s.ranges[j].End)
		j++
	}
	merged := append([]LineRange{}, s.ranges[:i]...)
	merged = append(merged, LineRange{Start: start, End: end})
	s.ranges = append(merged, s.ranges[j:]...)
}

// Contains reports whether line is in the set.
func (s *LineSet) Contains(line int) bool {
	return s.Intersects(line, line)
}

// Intersects reports whether any line of [start, end] is in the set.
func (s *LineSet) Intersects(start, end int) bool {
	if s == nil {
		return false
	}
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End >= start })
	return i < len(s.ranges) && s.ranges[i].Start <= end
}

// Ranges returns a copy of the ordered ranges.
func (s *LineSet) Ranges() []LineRange {
	if s == nil {
		return nil
	}
	return append([]LineRange(nil), s.ranges...)
}

// Len returns the number of lines in the set.
func (s *LineSet) Len() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, r := range s.ranges {
		total += r.End - r.Start + 1
	}
	return total
}

// ModifiedLines maps a repository-relative path to its modified lines, keeping the
// order in which the files appeared in the diff.
type ModifiedLines struct {
	order []string
	files map[string]*LineSet
}

// NewModifiedLines creates an empty mapping.
func NewModifiedLines() *ModifiedLines {
	return &ModifiedLines{files: make(map[string]*LineSet)}
}

// For returns the line set of path, creating it when absent.
func (m *ModifiedLines) For(path string) *LineSet {
	set, ok := m.files[path]
	if !ok {
		set = &LineSet{}
		m.files[path] = set
		m.order = append(m.order, path)
	}
	return set
}

// Get returns the line set of path and whether the diff touched it.
func (m *ModifiedLines) Get(path string) (*LineSet, bool) {
	set, ok := m.files[path]
	return set, ok
}

// Paths returns the touched paths in diff order.
func (m *ModifiedLines) Paths() []string {
	return append([]string(nil), m.order...)
}
