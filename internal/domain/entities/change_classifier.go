package entities

// ClassifyChanges marks the blocks of a file whose tag-inclusive span intersects the
// modified lines. In full-scan mode every block counts as modified.
func ClassifyChanges(file *FileBlocks, modified *LineSet, fullScan bool) {
	file.Walk(func(block *Block) {
		block.IsContentModified = fullScan || modified.Intersects(block.StartLine, block.EndLine)
	})
}
