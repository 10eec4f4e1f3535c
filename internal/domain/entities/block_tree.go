package entities

import (
	"strings"
	"unicode/utf8"
)

// MaxBlockDepth bounds how deeply blocks may nest inside a single file.
const MaxBlockDepth = 128

// BuildBlockTree scans the comments of a file for block tags and assembles the
// nested block tree. The comments must be ordered by position. Only the first tag
// of a physical line is honored.
func BuildBlockTree(path string, source []byte, comments []Comment) (*FileBlocks, error) {
	lines := splitLines(string(source))
	result := &FileBlocks{Path: path}
	names := make(map[string]int)

	var stack []*Block
	lastTagLine := 0
	for _, comment := range comments {
		for offset, text := range strings.Split(comment.Text, "\n") {
			lineNumber := comment.Line + offset
			if lineNumber == lastTagLine {
				continue
			}
			tag, ok := FindTag(text)
			if !ok {
				continue
			}
			lastTagLine = lineNumber

			switch tag.Kind {
			case TagOpen:
				if len(stack) >= MaxBlockDepth {
					return nil, NewParseError(path, lineNumber, "blocks nested deeper than %d levels", MaxBlockDepth)
				}
				name := tag.Attributes[AttributeName]
				if name != "" {
					if previous, seen := names[name]; seen {
						return nil, NewParseError(path, lineNumber,
							"duplicate block name %q, first defined at line %d", name, previous)
					}
					names[name] = lineNumber
				}
				base := 0
				if offset == 0 {
					base = comment.Column - 1
				}
				stack = append(stack, &Block{
					Path:       path,
					Name:       name,
					StartLine:  lineNumber,
					Column:     columnOf(lines, lineNumber, base+tag.Offset),
					Attributes: tag.Attributes,
				})
			case TagClose:
				if len(stack) == 0 {
					return nil, NewParseError(path, lineNumber, "closing tag without a matching opening tag")
				}
				block := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				block.EndLine = lineNumber
				block.Lines = contentLines(lines, block.StartLine+1, lineNumber-1)
				if len(stack) == 0 {
					result.Blocks = append(result.Blocks, block)
				} else {
					parent := stack[len(stack)-1]
					block.Parent = parent
					parent.Children = append(parent.Children, block)
				}
			}
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, NewParseError(path, open.StartLine, "block %s is not closed", open.DisplayName())
	}
	return result, nil
}

func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func contentLines(lines []string, from, to int) []ContentLine {
	var content []ContentLine
	for number := from; number <= to && number <= len(lines); number++ {
		text := lines[number-1]
		if strings.TrimSpace(text) == "" {
			continue
		}
		content = append(content, ContentLine{Number: number, Text: text})
	}
	return content
}

// columnOf converts a byte offset within a source line into a 1-based character column.
func columnOf(lines []string, lineNumber, byteOffset int) int {
	if lineNumber < 1 || lineNumber > len(lines) {
		return byteOffset + 1
	}
	line := lines[lineNumber-1]
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCountInString(line[:byteOffset]) + 1
}
