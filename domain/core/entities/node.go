package entities

// NodeType classifies a Mindscape node. The set is nominal: sheet values outside
// it are passed through untouched.
type NodeType string

const (
	NodeTypeProject  NodeType = "project"
	NodeTypeConcept  NodeType = "concept"
	NodeTypeIdea     NodeType = "idea"
	NodeTypeResource NodeType = "resource"
	NodeTypeNote     NodeType = "note"
	NodeTypeCode     NodeType = "code"
)

// Defaults applied when a sheet cell is blank or unparseable
const (
	DefaultNodeType  = NodeTypeNote
	DefaultNodeColor = "#666666"
	DefaultNodeSize  = 50.0
)

// Position is a node's place in the 3D graph
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Style is how the front end draws a node
type Style struct {
	Color string  `json:"color"`
	Size  float64 `json:"size"`
}

// Node is one row of the mindscape_nodes sheet
type Node struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Type      NodeType `json:"type"`
	Tags      []string `json:"tags"`
	IsPublic  bool     `json:"isPublic"`
	Position  Position `json:"position"`
	Style     Style    `json:"style"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}
