package entities

import (
	"strings"
)

const (
	// UnnamedBlockLabel is how anonymous blocks are rendered in messages.
	UnnamedBlockLabel = "(unnamed)"

	// AttributeName is the attribute that names a block.
	AttributeName = "name"
	// AttributeAffects lists the blocks that must change together with this one.
	AttributeAffects = "affects"
	// AttributeSeverity downgrades the block's findings to warnings when set to "warning".
	AttributeSeverity = "severity"
)

// ContentLine is one non-blank source line enclosed by a block.
type ContentLine struct {
	Number int
	Text   string
}

// Block is a tagged span of source lines. StartLine and EndLine are the lines
// holding the open and close tags, so the content lives strictly between them.
type Block struct {
	Path              string
	Name              string
	StartLine         int
	EndLine           int
	Column            int
	Attributes        map[string]string
	Lines             []ContentLine
	IsContentModified bool
	Children          []*Block
	Parent            *Block
}

// DisplayName returns the block name or the unnamed label.
func (b *Block) DisplayName() string {
	if b.Name == "" {
		return UnnamedBlockLabel
	}
	return b.Name
}

// Attribute returns the raw value of an attribute and whether it is present.
func (b *Block) Attribute(key string) (string, bool) {
	value, ok := b.Attributes[key]
	return value, ok
}

// HasAttribute reports whether the attribute is present, even with an empty value.
func (b *Block) HasAttribute(key string) bool {
	_, ok := b.Attributes[key]
	return ok
}

// Severity of the findings raised against this block.
func (b *Block) Severity() Severity {
	if strings.EqualFold(strings.TrimSpace(b.Attributes[AttributeSeverity]), string(SeverityWarning)) {
		return SeverityWarning
	}
	return SeverityError
}

// Texts returns the text of the content lines.
func (b *Block) Texts() []string {
	texts := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		texts[i] = line.Text
	}
	return texts
}

// Content joins the content lines with newlines.
func (b *Block) Content() string {
	return strings.Join(b.Texts(), "\n")
}

// Contains reports whether the line falls inside the tag-inclusive span.
func (b *Block) Contains(line int) bool {
	return line >= b.StartLine && line <= b.EndLine
}

// Walk visits b and its descendants in pre-order. Returning false skips the children.
func (b *Block) Walk(visit func(block *Block) bool) {
	if !visit(b) {
		return
	}
	for _, child := range b.Children {
		child.Walk(visit)
	}
}

// FileBlocks is the immutable block tree of one file.
type FileBlocks struct {
	Path   string
	Blocks []*Block
}

// Walk visits every block of the file in pre-order.
func (f *FileBlocks) Walk(visit func(block *Block)) {
	for _, block := range f.Blocks {
		block.Walk(func(b *Block) bool {
			visit(b)
			return true
		})
	}
}

// All returns every block of the file in pre-order.
func (f *FileBlocks) All() []*Block {
	var all []*Block
	f.Walk(func(block *Block) {
		all = append(all, block)
	})
	return all
}

// Find returns the named block of the file, if any.
func (f *FileBlocks) Find(name string) *Block {
	var found *Block
	f.Walk(func(block *Block) {
		if found == nil && block.Name == name {
			found = block
		}
	})
	return found
}
