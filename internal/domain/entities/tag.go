package entities

import "strings"

// TagKind distinguishes opening from closing block tags.
type TagKind int

const (
	TagOpen TagKind = iota + 1
	TagClose
)

const tagKeyword = "block"

// Tag is a block tag found in comment text.
type Tag struct {
	Kind       TagKind
	Attributes map[string]string
	// Offset is the byte offset of the leading '<' within the scanned text.
	Offset int
}

// FindTag returns the first well-formed block tag in text. Anything that merely
// looks like a tag but does not parse is skipped, so "<blockquote>" or an
// unterminated "<block name=" are not tags.
func FindTag(text string) (Tag, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '<' {
			continue
		}
		if attrs, ok := parseOpenTag(text[i+1:]); ok {
			return Tag{Kind: TagOpen, Attributes: attrs, Offset: i}, true
		}
		if parseCloseTag(text[i+1:]) {
			return Tag{Kind: TagClose, Offset: i}, true
		}
	}
	return Tag{}, false
}

// parseOpenTag parses `block attr="v" attr2 attr3='v' attr4=v>` (the leading '<' already consumed).
func parseOpenTag(s string) (map[string]string, bool) {
	if !strings.HasPrefix(s, tagKeyword) {
		return nil, false
	}
	s = s[len(tagKeyword):]
	if s == "" || (s[0] != '>' && !isSpace(s[0])) {
		return nil, false
	}

	attrs := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" {
			return nil, false
		}
		if s[0] == '>' {
			return attrs, true
		}

		keyLen := identLen(s)
		if keyLen == 0 {
			return nil, false
		}
		key := s[:keyLen]
		s = strings.TrimLeft(s[keyLen:], " \t")

		value := ""
		if strings.HasPrefix(s, "=") {
			var ok bool
			value, s, ok = parseAttributeValue(strings.TrimLeft(s[1:], " \t"))
			if !ok {
				return nil, false
			}
		}
		// duplicated keys: the last one wins
		attrs[key] = value

		if s == "" || (s[0] != '>' && !isSpace(s[0])) {
			return nil, false
		}
	}
}

func parseAttributeValue(s string) (string, string, bool) {
	if s == "" {
		return "", s, false
	}
	if quote := s[0]; quote == '"' || quote == '\'' {
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return "", s, false
		}
		return s[1 : end+1], s[end+2:], true
	}
	n := identLen(s)
	if n == 0 {
		return "", s, false
	}
	return s[:n], s[n:], true
}

// parseCloseTag matches `/block>` with optional whitespace between the parts.
func parseCloseTag(s string) bool {
	s = strings.TrimLeft(s, " \t")
	if !strings.HasPrefix(s, "/") {
		return false
	}
	s = strings.TrimLeft(s[1:], " \t")
	if !strings.HasPrefix(s, tagKeyword) {
		return false
	}
	s = strings.TrimLeft(s[len(tagKeyword):], " \t")
	return strings.HasPrefix(s, ">")
}

func identLen(s string) int {
	n := 0
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}
	return n
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
