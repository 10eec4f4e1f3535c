//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// BlockBuilder helps create test blocks with a fluent interface.
type BlockBuilder struct {
	*testkit.BaseBuilder
	path       string
	name       string
	startLine  int
	attributes map[string]string
	lines      []string
	modified   bool
}

// NewBlockBuilder creates a new block builder with sensible defaults.
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "main.go",
		startLine:   1,
		attributes:  map[string]string{},
		modified:    true,
	}
}

// WithPath sets the file the block belongs to.
func (b *BlockBuilder) WithPath(path string) *BlockBuilder {
	b.path = path
	return b
}

// WithName sets the block name (and its name attribute).
func (b *BlockBuilder) WithName(name string) *BlockBuilder {
	b.name = name
	return b
}

// WithStartLine sets the line of the opening tag.
func (b *BlockBuilder) WithStartLine(line int) *BlockBuilder {
	b.startLine = line
	return b
}

// WithAttribute sets one attribute.
func (b *BlockBuilder) WithAttribute(key, value string) *BlockBuilder {
	b.attributes[key] = value
	return b
}

// WithLines sets the content lines, numbered right after the opening tag.
func (b *BlockBuilder) WithLines(lines ...string) *BlockBuilder {
	b.lines = lines
	return b
}

// WithModified sets whether the block counts as content-modified.
func (b *BlockBuilder) WithModified(modified bool) *BlockBuilder {
	b.modified = modified
	return b
}

// Build creates the block (satisfies testkit.Builder interface).
func (b *BlockBuilder) Build() interface{} {
	return b.BuildBlock()
}

// BuildBlock creates the block with a concrete return type.
func (b *BlockBuilder) BuildBlock() *entities.Block {
	attributes := maps.Clone(b.attributes)
	if b.name != "" {
		attributes[entities.AttributeName] = b.name
	}
	content := make([]entities.ContentLine, len(b.lines))
	for i, text := range b.lines {
		content[i] = entities.ContentLine{Number: b.startLine + 1 + i, Text: text}
	}
	return &entities.Block{
		Path:              b.path,
		Name:              b.name,
		StartLine:         b.startLine,
		EndLine:           b.startLine + len(b.lines) + 1,
		Column:            1,
		Attributes:        attributes,
		Lines:             content,
		IsContentModified: b.modified,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *BlockBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "main.go"
	b.name = ""
	b.startLine = 1
	b.attributes = map[string]string{}
	b.lines = nil
	b.modified = true
	return b
}

// Clone creates a deep copy of the BlockBuilder.
func (b *BlockBuilder) Clone() testkit.Builder {
	return &BlockBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		name:        b.name,
		startLine:   b.startLine,
		attributes:  maps.Clone(b.attributes),
		lines:       append([]string(nil), b.lines...),
		modified:    b.modified,
	}
}
