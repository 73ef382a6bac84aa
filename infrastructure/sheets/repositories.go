package sheets

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-backend/domain/core/entities"
)

// MindscapeRepository reads the node and connection tabs
type MindscapeRepository struct {
	client *Client
	parser *RowParser
	logger *zap.Logger
}

// NewMindscapeRepository creates a new mindscape repository
func NewMindscapeRepository(client *Client, parser *RowParser, logger *zap.Logger) *MindscapeRepository {
	return &MindscapeRepository{client: client, parser: parser, logger: logger}
}

// Configured reports whether the spreadsheet credentials are usable
func (r *MindscapeRepository) Configured() bool { return r.client.Configured() }

// LoadGraph reads both tabs concurrently
func (r *MindscapeRepository) LoadGraph(ctx context.Context) ([]entities.Node, []entities.Connection, error) {
	var nodeRows, connRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nodeRows, err = r.client.Values(gctx, NodesRange)
		return err
	})
	g.Go(func() error {
		var err error
		connRows, err = r.client.Values(gctx, ConnectionsRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	nodes := r.parseNodes(nodeRows)
	connections := make([]entities.Connection, 0, len(connRows))
	for _, row := range connRows {
		if c, ok := r.parser.Connection(row); ok {
			connections = append(connections, c)
		}
	}

	r.logger.Debug("Loaded mindscape rows",
		zap.Int("node_rows", len(nodeRows)),
		zap.Int("connection_rows", len(connRows)),
	)
	return nodes, connections, nil
}

// ListNodes reads the node tab only
func (r *MindscapeRepository) ListNodes(ctx context.Context) ([]entities.Node, error) {
	rows, err := r.client.Values(ctx, NodesRange)
	if err != nil {
		return nil, err
	}
	return r.parseNodes(rows), nil
}

func (r *MindscapeRepository) parseNodes(rows [][]string) []entities.Node {
	nodes := make([]entities.Node, 0, len(rows))
	for i, row := range rows {
		n, ok := r.parser.Node(row)
		if !ok {
			r.logger.Debug("Skipping node row without id", zap.Int("row", i+2))
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// ProfileRepository reads the projects and current_status tabs
type ProfileRepository struct {
	client *Client
	parser *RowParser
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *Client, parser *RowParser) *ProfileRepository {
	return &ProfileRepository{client: client, parser: parser}
}

// Configured reports whether the spreadsheet credentials are usable
func (r *ProfileRepository) Configured() bool { return r.client.Configured() }

// ListProjects parses the projects tab, skipping rows without an id
func (r *ProfileRepository) ListProjects(ctx context.Context) ([]entities.Project, error) {
	rows, err := r.client.Values(ctx, ProjectsRange)
	if err != nil {
		return nil, err
	}
	projects := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		if p, ok := r.parser.Project(row); ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// ListStatuses parses the current_status tab, skipping blank rows
func (r *ProfileRepository) ListStatuses(ctx context.Context) ([]entities.CurrentStatus, error) {
	rows, err := r.client.Values(ctx, StatusRange)
	if err != nil {
		return nil, err
	}
	statuses := make([]entities.CurrentStatus, 0, len(rows))
	for _, row := range rows {
		if s, ok := r.parser.Status(row); ok {
			statuses = append(statuses, s)
		}
	}
	return statuses, nil
}

// ContactRepository appends contact submissions to the responses range
type ContactRepository struct {
	client *Client
	rng    string
}

// NewContactRepository creates a repository writing to rng, e.g. "Responses!A:E"
func NewContactRepository(client *Client, rng string) *ContactRepository {
	return &ContactRepository{client: client, rng: rng}
}

// Configured reports whether submissions can be stored
func (r *ContactRepository) Configured() bool { return r.client.Configured() }

// Append writes [timestamp, name, email, subject, message]
func (r *ContactRepository) Append(ctx context.Context, msg entities.ContactMessage) error {
	return r.client.Append(ctx, r.rng, msg.Row())
}

// Ping checks the spreadsheet is reachable
func (r *ContactRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
