package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyGroupName is the capture group that supplies a key when a pattern defines it.
const KeyGroupName = "value"

// KeyedLine is a content line together with the key extracted from it.
type KeyedLine struct {
	Line ContentLine
	Key  string
}

// KeyExtractor derives comparison keys from content lines. Without a pattern the
// trimmed line is the key. With a pattern, the `value` group (or else the whole
// match) is the key and lines that do not match are dropped.
type KeyExtractor struct {
	pattern *regexp.Regexp
	group   int
}

// NewKeyExtractor compiles pattern. An empty pattern keeps every line.
func NewKeyExtractor(pattern string) (*KeyExtractor, error) {
	if pattern == "" {
		return &KeyExtractor{}, nil
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &KeyExtractor{pattern: compiled, group: compiled.SubexpIndex(KeyGroupName)}, nil
}

// Extract returns the keyed lines in their original order.
func (e *KeyExtractor) Extract(lines []ContentLine) []KeyedLine {
	keyed := make([]KeyedLine, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if e.pattern == nil {
			keyed = append(keyed, KeyedLine{Line: line, Key: text})
			continue
		}
		match := e.pattern.FindStringSubmatchIndex(text)
		if match == nil {
			continue
		}
		start, end := match[0], match[1]
		if e.group > 0 && match[2*e.group] >= 0 {
			start, end = match[2*e.group], match[2*e.group+1]
		}
		keyed = append(keyed, KeyedLine{Line: line, Key: text[start:end]})
	}
	return keyed
}

// Filter returns the matching lines, or all lines when there is no pattern.
func (e *KeyExtractor) Filter(lines []ContentLine) []ContentLine {
	if e.pattern == nil {
		return lines
	}
	var filtered []ContentLine
	for _, keyed := range e.Extract(lines) {
		filtered = append(filtered, ContentLine{Number: keyed.Line.Number, Text: keyed.Key})
	}
	return filtered
}
