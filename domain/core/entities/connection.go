package entities

// ConnectionType describes how two nodes relate
type ConnectionType string

const (
	ConnectionStrong    ConnectionType = "strong"
	ConnectionWeak      ConnectionType = "weak"
	ConnectionHierarchy ConnectionType = "hierarchy"
	ConnectionRelated   ConnectionType = "related"
)

const (
	DefaultConnectionType     = ConnectionRelated
	DefaultConnectionStrength = 1.0
)

// Connection is one row of the mindscape_connections sheet
type Connection struct {
	ID           string         `json:"id"`
	SourceNodeID string         `json:"sourceNodeId"`
	TargetNodeID string         `json:"targetNodeId"`
	Strength     float64        `json:"strength"`
	Type         ConnectionType `json:"type"`
	Label        string         `json:"label,omitempty"`
	CreatedAt    string         `json:"createdAt"`
}
