package entities

import (
	"fmt"
)

// AffectsValidatorName is the check name the dependency graph reports under.
const AffectsValidatorName = "affects"

// DependencyGraph holds the `affects` edges of every parsed block and resolves them
// against the blocks of the run.
type DependencyGraph struct {
	edges      []DependencyEdge
	index      map[BlockReference]*Block
	unresolved []DependencyEdge
	malformed  []Result
}

// NewDependencyGraph indexes the named blocks of files and builds one edge per
// `affects` target. It must only be called once every file of the run is parsed.
func NewDependencyGraph(files []*FileBlocks) *DependencyGraph {
	graph := &DependencyGraph{index: make(map[BlockReference]*Block)}
	for _, file := range files {
		file.Walk(func(block *Block) {
			if block.Name != "" {
				graph.index[BlockReference{File: file.Path, Name: block.Name}] = block
			}
		})
	}

	for _, file := range files {
		file.Walk(func(block *Block) {
			value, ok := block.Attribute(AttributeAffects)
			if !ok {
				return
			}
			references, err := ParseBlockReferences(value, file.Path)
			if err != nil {
				graph.malformed = append(graph.malformed,
					NewResult(block, AffectsValidatorName, nil, NewExecutionError(AffectsValidatorName, err)))
				return
			}
			for _, reference := range references {
				edge := DependencyEdge{Source: block, Target: reference}
				if _, found := graph.index[reference]; !found {
					graph.unresolved = append(graph.unresolved, edge)
					continue
				}
				graph.edges = append(graph.edges, edge)
			}
		})
	}
	return graph
}

// Edges returns the resolved edges in file and pre-order.
func (g *DependencyGraph) Edges() []DependencyEdge {
	return append([]DependencyEdge(nil), g.edges...)
}

// Unresolved returns the edges whose target is not among the parsed blocks.
func (g *DependencyGraph) Unresolved() []DependencyEdge {
	return append([]DependencyEdge(nil), g.unresolved...)
}

// Resolve finds the block a reference points at.
func (g *DependencyGraph) Resolve(reference BlockReference) (*Block, bool) {
	block, ok := g.index[reference]
	return block, ok
}

// Check applies the propagation rule to every edge on its own: a modified source
// requires a modified target. Transitive targets are not considered.
func (g *DependencyGraph) Check() []Result {
	results := append([]Result(nil), g.malformed...)

	var (
		current    *Block
		violations []Violation
	)
	flush := func() {
		if current != nil {
			results = append(results, NewResult(current, AffectsValidatorName, violations, nil))
		}
		current, violations = nil, nil
	}

	for _, edge := range g.edges {
		if edge.Source != current {
			flush()
			current = edge.Source
		}
		if !edge.Source.IsContentModified {
			continue
		}
		target := g.index[edge.Target]
		if target.IsContentModified {
			continue
		}
		violations = append(violations, Violation{
			Range:    BlockRange(edge.Source),
			Code:     AffectsValidatorName,
			Message:  affectsMessage(edge.Source, target),
			Severity: edge.Source.Severity(),
			Data: map[string]any{
				"affected_file":  target.Path,
				"affected_block": target.Name,
			},
		})
	}
	flush()
	return results
}

func affectsMessage(source, target *Block) string {
	return fmt.Sprintf("Block %s:%s at line %d is modified, but %s:%s is not",
		source.Path, source.DisplayName(), source.StartLine, target.Path, target.DisplayName())
}

// AffectedFiles lists the files referenced by modified blocks that are not part of files.
func AffectedFiles(files []*FileBlocks) []string {
	known := make(map[string]bool, len(files))
	for _, file := range files {
		known[file.Path] = true
	}

	var missing []string
	for _, file := range files {
		file.Walk(func(block *Block) {
			value, ok := block.Attribute(AttributeAffects)
			if !ok || !block.IsContentModified {
				return
			}
			references, err := ParseBlockReferences(value, file.Path)
			if err != nil {
				return
			}
			for _, reference := range references {
				if !known[reference.File] {
					known[reference.File] = true
					missing = append(missing, reference.File)
				}
			}
		})
	}
	return missing
}
