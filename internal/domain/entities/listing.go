package entities

// ListedBlock is the listing view of a block.
type ListedBlock struct {
	Name              string            `json:"name"`
	Line              int               `json:"line"`
	Column            int               `json:"column"`
	IsContentModified bool              `json:"is_content_modified"`
	Attributes        map[string]string `json:"attributes"`
}

// Listing maps files to their blocks, in discovery order and block pre-order.
type Listing struct {
	order  []string
	blocks map[string][]ListedBlock
}

// NewListing builds the listing of the given files.
func NewListing(files []*FileBlocks) *Listing {
	listing := &Listing{blocks: make(map[string][]ListedBlock)}
	for _, file := range files {
		listed := make([]ListedBlock, 0)
		file.Walk(func(block *Block) {
			attributes := make(map[string]string, len(block.Attributes))
			for key, value := range block.Attributes {
				attributes[key] = value
			}
			listed = append(listed, ListedBlock{
				Name:              block.Name,
				Line:              block.StartLine,
				Column:            block.Column,
				IsContentModified: block.IsContentModified,
				Attributes:        attributes,
			})
		})
		if len(listed) == 0 {
			continue
		}
		if _, ok := listing.blocks[file.Path]; !ok {
			listing.order = append(listing.order, file.Path)
		}
		listing.blocks[file.Path] = listed
	}
	return listing
}

// Files returns the listed paths in order.
func (l *Listing) Files() []string {
	return append([]string(nil), l.order...)
}

// Blocks returns the listed blocks of a path.
func (l *Listing) Blocks(path string) []ListedBlock {
	return l.blocks[path]
}

// MarshalJSON keeps the file order instead of sorting keys.
func (l *Listing) MarshalJSON() ([]byte, error) {
	return marshalOrdered(l.order, func(key string) any { return l.blocks[key] })
}
