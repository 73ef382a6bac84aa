package sheets

import (
	"math"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/domain/core/entities"
)

// Tab names and the data ranges read from them. Row 1 holds headers.
const (
	NodesSheet       = "mindscape_nodes"
	ConnectionsSheet = "mindscape_connections"
	ProjectsSheet    = "projects"
	StatusSheet      = "current_status"

	NodesRange       = NodesSheet + "!A2:M"
	ConnectionsRange = ConnectionsSheet + "!A2:G"
	ProjectsRange    = ProjectsSheet + "!A2:I"
	StatusRange      = StatusSheet + "!A2:E"
)

// Node columns
const (
	colNodeID = iota
	colNodeTitle
	colNodeContent
	colNodeType
	colNodeTags
	colNodePublic
	colNodeX
	colNodeY
	colNodeZ
	colNodeColor
	colNodeSize
	colNodeCreated
	colNodeUpdated
)

// Connection columns
const (
	colConnID = iota
	colConnSource
	colConnTarget
	colConnStrength
	colConnType
	colConnLabel
	colConnCreated
)

// RowParser turns positional sheet rows into entities. Blank or unparseable cells
// take the documented defaults; timestamps default to the parse time.
type RowParser struct {
	now func() time.Time
}

// NewRowParser creates a parser that stamps missing timestamps with now
func NewRowParser(now func() time.Time) *RowParser {
	if now == nil {
		now = time.Now
	}
	return &RowParser{now: now}
}

// Node parses a mindscape_nodes row. ok is false for rows without an id.
func (p *RowParser) Node(row []string) (entities.Node, bool) {
	id := cell(row, colNodeID)
	if strings.TrimSpace(id) == "" {
		return entities.Node{}, false
	}
	now := entities.FormatTimestamp(p.now())

	return entities.Node{
		ID:       id,
		Title:    cell(row, colNodeTitle),
		Content:  cell(row, colNodeContent),
		Type:     entities.NodeType(orDefault(cell(row, colNodeType), string(entities.DefaultNodeType))),
		Tags:     splitTags(cell(row, colNodeTags)),
		IsPublic: parseFlag(cell(row, colNodePublic)),
		Position: entities.Position{
			X: parseNumber(cell(row, colNodeX), 0),
			Y: parseNumber(cell(row, colNodeY), 0),
			Z: parseNumber(cell(row, colNodeZ), 0),
		},
		Style: entities.Style{
			Color: orDefault(cell(row, colNodeColor), entities.DefaultNodeColor),
			Size:  parseNumber(cell(row, colNodeSize), entities.DefaultNodeSize),
		},
		CreatedAt: orDefault(cell(row, colNodeCreated), now),
		UpdatedAt: orDefault(cell(row, colNodeUpdated), now),
	}, true
}

// Connection parses a mindscape_connections row
func (p *RowParser) Connection(row []string) (entities.Connection, bool) {
	id := cell(row, colConnID)
	source := cell(row, colConnSource)
	target := cell(row, colConnTarget)
	if strings.TrimSpace(id) == "" && source == "" && target == "" {
		return entities.Connection{}, false
	}

	return entities.Connection{
		ID:           id,
		SourceNodeID: source,
		TargetNodeID: target,
		Strength:     parseNumber(cell(row, colConnStrength), entities.DefaultConnectionStrength),
		Type:         entities.ConnectionType(orDefault(cell(row, colConnType), string(entities.DefaultConnectionType))),
		Label:        cell(row, colConnLabel),
		CreatedAt:    orDefault(cell(row, colConnCreated), entities.FormatTimestamp(p.now())),
	}, true
}

// Project parses a projects row
func (p *RowParser) Project(row []string) (entities.Project, bool) {
	id := cell(row, 0)
	if strings.TrimSpace(id) == "" {
		return entities.Project{}, false
	}
	return entities.Project{
		ID:           id,
		Name:         cell(row, 1),
		Description:  cell(row, 2),
		Tech:         splitTags(cell(row, 3)),
		Status:       cell(row, 4),
		Featured:     parseFlag(cell(row, 5)),
		Thumbnail:    cell(row, 6),
		LiveURL:      cell(row, 7),
		MindscapeRef: cell(row, 8),
	}, true
}

// Status parses a current_status row
func (p *RowParser) Status(row []string) (entities.CurrentStatus, bool) {
	if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
		return entities.CurrentStatus{}, false
	}
	return entities.CurrentStatus{
		ID:          cell(row, 0),
		Status:      cell(row, 1),
		LearningNow: cell(row, 2),
		WorkingOn:   cell(row, 3),
		LastUpdated: cell(row, 4),
	}, true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// parseFlag accepts the two spellings Sheets produces for a checkbox
func parseFlag(v string) bool {
	return v == "true" || v == "TRUE"
}

// parseNumber falls back to def for blank, unparseable, NaN and zero cells. Zero
// maps to def so a cleared size or strength cell still renders.
func parseNumber(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return def
	}
	return f
}

func splitTags(v string) []string {
	tags := []string{}
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
