package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/entities"
)

// Tab describes one spreadsheet tab the site reads
type Tab struct {
	Title   string
	LastCol string
	Headers []string
	Seed    func(now string) [][]interface{}
}

// Range covers the header and every data row
func (t Tab) Range() string {
	return fmt.Sprintf("%s!A1:%s", t.Title, t.LastCol)
}

// TabResult reports what provisioning did to one tab
type TabResult struct {
	Title   string
	Created bool
	Seeded  bool
	Rows    int
}

// Provisioner creates the Mindscape tabs and fills them with sample data
type Provisioner struct {
	client *Client
	tabs   []Tab
	now    func() time.Time
	logger *zap.Logger
}

// NewProvisioner creates a provisioner for the default tab set
func NewProvisioner(client *Client, logger *zap.Logger) *Provisioner {
	return &Provisioner{client: client, tabs: DefaultTabs(), now: time.Now, logger: logger}
}

// Provision ensures every tab exists. New tabs get headers and seed rows; existing
// tabs are left alone unless reseed is set.
func (p *Provisioner) Provision(ctx context.Context, reseed bool) ([]TabResult, error) {
	if !p.client.Configured() {
		return nil, ErrNotConfigured
	}

	now := entities.FormatTimestamp(p.now())
	results := make([]TabResult, 0, len(p.tabs))
	for _, tab := range p.tabs {
		created, err := p.client.EnsureSheet(ctx, tab.Title)
		if err != nil {
			return results, err
		}
		res := TabResult{Title: tab.Title, Created: created}

		if created || reseed {
			rows := append([][]interface{}{toRow(tab.Headers)}, tab.Seed(now)...)
			if !created {
				if err := p.client.ClearRange(ctx, tab.Range()); err != nil {
					return results, err
				}
			}
			if err := p.client.WriteRows(ctx, tab.Range(), rows); err != nil {
				return results, err
			}
			res.Seeded = true
			res.Rows = len(rows) - 1
		}

		p.logger.Info("Provisioned sheet",
			zap.String("sheet", tab.Title),
			zap.Bool("created", res.Created),
			zap.Bool("seeded", res.Seeded),
			zap.Int("rows", res.Rows),
		)
		results = append(results, res)
	}
	return results, nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

// DefaultTabs lists the tabs with their headers and sample content
func DefaultTabs() []Tab {
	return []Tab{
		{
			Title:   NodesSheet,
			LastCol: "M",
			Headers: []string{"id", "title", "content", "type", "tags", "isPublic", "x", "y", "z", "color", "size", "createdAt", "updatedAt"},
			Seed:    seedNodes,
		},
		{
			Title:   ConnectionsSheet,
			LastCol: "G",
			Headers: []string{"id", "sourceNodeId", "targetNodeId", "strength", "type", "label", "createdAt"},
			Seed:    seedConnections,
		},
		{
			Title:   ProjectsSheet,
			LastCol: "I",
			Headers: []string{"id", "name", "description", "tech", "status", "featured", "thumbnail", "liveUrl", "nodeId"},
			Seed:    seedProjects,
		},
		{
			Title:   StatusSheet,
			LastCol: "E",
			Headers: []string{"id", "status", "learningNow", "workingOn", "lastUpdated"},
			Seed:    seedStatus,
		},
	}
}

type seedNode struct {
	id, title, content string
	kind               entities.NodeType
	tags               string
	x, y               float64
	color              string
	size               float64
}

var sampleNodes = []seedNode{
	{"node-1", "VisionFlow", "WebGL-powered generative art and computer vision experiments. Real-time particle systems with GPU acceleration.", entities.NodeTypeProject, "webgl,three.js,computer-vision,generative-art", 0, 0, "#3b82f6", 80},
	{"node-2", "Next.js", "React framework for production-grade applications with server-side rendering and static generation.", entities.NodeTypeConcept, "react,framework,ssr,frontend", 200, 100, "#22c55e", 60},
	{"node-3", "Computer Vision", "Object detection, face recognition, pose estimation using TensorFlow.js and MediaPipe.", entities.NodeTypeConcept, "cv,tensorflow,ml,ai", -150, -100, "#eab308", 70},
	{"node-4", "Three.js", "JavaScript 3D library for creating WebGL experiences. Core of VisionFlow visualization.", entities.NodeTypeConcept, "webgl,3d,graphics,javascript", -100, 150, "#a855f7", 65},
	{"node-5", "Portfolio Site", "This site! Features the Mindscape visualization.", entities.NodeTypeProject, "nextjs,typescript,portfolio,web", 150, -50, "#3b82f6", 75},
	{"node-6", "TypeScript", "Typed superset of JavaScript. Essential for large-scale applications.", entities.NodeTypeConcept, "typescript,javascript,types,programming", 250, -150, "#22c55e", 55},
	{"node-7", "Generative Art", "Algorithmic art creation using code. Noise functions, particle systems and procedural generation.", entities.NodeTypeIdea, "art,creative-coding,algorithms,visual", 50, 200, "#f97316", 60},
	{"node-8", "Python", "Used for machine learning experiments, data processing and scripting.", entities.NodeTypeConcept, "python,programming,ml,backend", -200, 50, "#22c55e", 50},
	{"node-9", "Neural Style Transfer", "Exploring artistic style transfer with neural networks. Potential VisionFlow feature.", entities.NodeTypeIdea, "ml,art,neural-networks,computer-vision", -250, -200, "#f97316", 55},
	{"node-10", "React Flow", "Library for building node-based editors. Used to draw this Mindscape.", entities.NodeTypeResource, "react,visualization,graph,ui", 100, -200, "#06b6d4", 50},
}

func seedNodes(now string) [][]interface{} {
	rows := make([][]interface{}, 0, len(sampleNodes))
	for _, n := range sampleNodes {
		rows = append(rows, []interface{}{
			n.id, n.title, n.content, string(n.kind), n.tags, "true",
			n.x, n.y, 0, n.color, n.size, now, now,
		})
	}
	return rows
}

type seedConnection struct {
	id, source, target string
	strength           float64
	kind               entities.ConnectionType
	label              string
}

var sampleConnections = []seedConnection{
	{"conn-1", "node-1", "node-4", 1, entities.ConnectionStrong, "built with"},
	{"conn-2", "node-1", "node-3", 1, entities.ConnectionStrong, "uses"},
	{"conn-3", "node-1", "node-7", 0.8, entities.ConnectionRelated, "creates"},
	{"conn-4", "node-5", "node-2", 1, entities.ConnectionStrong, "built with"},
	{"conn-5", "node-5", "node-6", 1, entities.ConnectionStrong, "uses"},
	{"conn-6", "node-5", "node-10", 0.9, entities.ConnectionStrong, "uses"},
	{"conn-7", "node-2", "node-6", 0.7, entities.ConnectionRelated, "works with"},
	{"conn-8", "node-4", "node-7", 0.6, entities.ConnectionWeak, "enables"},
	{"conn-9", "node-3", "node-8", 0.7, entities.ConnectionRelated, "implemented in"},
	{"conn-10", "node-9", "node-3", 0.9, entities.ConnectionRelated, "part of"},
	{"conn-11", "node-9", "node-1", 0.5, entities.ConnectionWeak, "could integrate"},
	{"conn-12", "node-7", "node-4", 0.8, entities.ConnectionRelated, "uses"},
	{"conn-13", "node-10", "node-2", 0.6, entities.ConnectionRelated, "library for"},
}

func seedConnections(now string) [][]interface{} {
	rows := make([][]interface{}, 0, len(sampleConnections))
	for _, c := range sampleConnections {
		rows = append(rows, []interface{}{c.id, c.source, c.target, c.strength, string(c.kind), c.label, now})
	}
	return rows
}

func seedProjects(string) [][]interface{} {
	return [][]interface{}{
		{"proj-1", "VisionFlow", "WebGL-powered generative art and computer vision experiments", "Three.js, WebGL, TensorFlow.js", "active", "true", "/images/visionflow.jpg", "https://visionflow.shirokokun.com", "node-1"},
		{"proj-2", "Portfolio Site", "Personal portfolio with Mindscape visualization", "Next.js, TypeScript, React Flow", "active", "true", "/images/portfolio.jpg", "https://shirokokun-portfolio-live.vercel.app", "node-5"},
	}
}

func seedStatus(now string) [][]interface{} {
	return [][]interface{}{
		{uuid.NewString(), "Building Mindscape visualization system", "React Flow, Graph algorithms, Force-directed layouts", "Portfolio Mindscape + Admin Panel", now},
	}
}
