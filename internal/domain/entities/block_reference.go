package entities

import (
	"fmt"
	"path"
	"strings"
)

// BlockReference points at a named block, possibly in another file.
type BlockReference struct {
	File string
	Name string
}

func (r BlockReference) String() string {
	return r.File + ":" + r.Name
}

// DependencyEdge is a directed "must change together" link from a block to a reference.
type DependencyEdge struct {
	Source *Block
	Target BlockReference
}

// ParseBlockReferences splits an `affects` value such as "a.go:foo, :bar" into
// references. A reference without a file points at ownFile.
func ParseBlockReferences(value, ownFile string) ([]BlockReference, error) {
	var references []BlockReference
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		separator := strings.LastIndex(entry, ":")
		if separator < 0 {
			return nil, fmt.Errorf("invalid reference %q, expected \"file:name\" or \":name\"", entry)
		}
		file := strings.TrimSpace(entry[:separator])
		name := strings.TrimSpace(entry[separator+1:])
		if name == "" {
			return nil, fmt.Errorf("invalid reference %q, block name is empty", entry)
		}
		if file == "" {
			file = ownFile
		} else {
			file = NormalizePath(file)
		}
		references = append(references, BlockReference{File: file, Name: name})
	}
	return references, nil
}

// NormalizePath turns a path into the slash-separated repository-relative form used as a key.
func NormalizePath(p string) string {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(cleaned, "./")
}
