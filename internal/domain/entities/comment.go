package entities

// Comment is a comment span located by a grammar. Text is the exact source text of
// the comment, markers included, and may span several lines.
type Comment struct {
	// Line is the 1-based line the comment starts on.
	Line int
	// Column is the 1-based byte column the comment starts at on its first line.
	Column int
	Text   string
}
