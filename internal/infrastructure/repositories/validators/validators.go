// Package validators holds the content rules a block can opt into through its attributes.
package validators

import (
	"fmt"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
)

// blockLabel renders "path:name defined at line N", the subject of every message.
func blockLabel(block *entities.Block) string {
	return fmt.Sprintf("Block %s:%s defined at line %d", block.Path, block.DisplayName(), block.StartLine)
}

func lineViolation(block *entities.Block, code string, line entities.ContentLine, message string, data map[string]any) entities.Violation {
	return entities.Violation{
		Range:    entities.LineRangeOf(line),
		Code:     code,
		Message:  message,
		Severity: block.Severity(),
		Data:     data,
	}
}

func blockViolation(block *entities.Block, code, message string, data map[string]any) entities.Violation {
	return entities.Violation{
		Range:    entities.BlockRange(block),
		Code:     code,
		Message:  message,
		Severity: block.Severity(),
		Data:     data,
	}
}
