package common

// Node represents a single entity in a document graph. The ID is the entity
// name as extracted from the text and is unique within one DocumentGraph;
// two nodes with the same ID are the same entity regardless of which chunk
// they were extracted from. Type is a free-form category such as "Material"
// or "Process".
type Node struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Relationship represents an edge between two nodes, identified by the
// (Source, Target, Type) triple. Source and Target are node IDs. The
// direction is recorded but traversal treats edges as undirected.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// DocumentGraph is the deduplicated entity/relationship graph for one
// ingested document. Invariants: no two nodes share an ID and no two
// relationships share the same (source, target, type) triple.
type DocumentGraph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// ChunkGraph is the raw extraction result for a single text chunk. It has
// the same shape as a DocumentGraph but is not yet deduplicated and may
// contain relationships whose endpoints were never declared as nodes.
type ChunkGraph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// Insight is the result of path discovery over a DocumentGraph. Paths are
// arrow-joined node ID sequences ordered shortest first; Explanation is a
// one-sentence rationale for the top path.
type Insight struct {
	Found       bool     `json:"found"`
	Explanation string   `json:"explanation"`
	Paths       []string `json:"paths"`
}

// Citation ties a piece of a synthesized answer back to the retrieval
// source that supplied it. ID is a source-scoped label such as "Doc-1",
// "Graph-1" or "Web-1"; Kind is one of CitationText, CitationGraph or
// CitationWeb.
type Citation struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Content  string         `json:"content"`
	Origin   string         `json:"origin,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Citation kinds.
const (
	CitationText  = "text"
	CitationGraph = "graph"
	CitationWeb   = "web"
)
