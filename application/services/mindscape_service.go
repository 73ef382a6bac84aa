package services

import (
	"context"

	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/aggregates"
	"portfolio-backend/domain/core/entities"
	pkgerrors "portfolio-backend/pkg/errors"
)

const (
	MsgMindscapeNotConfigured = "Mindscape service not configured"
	MsgMindscapeFetchFailed   = "Failed to fetch mindscape data"
	MsgNodesFetchFailed       = "Failed to fetch nodes"
	MsgProfileFetchFailed     = "Failed to fetch profile data"
)

// MindscapeService serves the Mindscape graph and the profile tabs that live in
// the same spreadsheet
type MindscapeService struct {
	repo    ports.MindscapeRepository
	profile ports.ProfileRepository
	logger  *zap.Logger
}

// NewMindscapeService creates a new mindscape service
func NewMindscapeService(repo ports.MindscapeRepository, profile ports.ProfileRepository, logger *zap.Logger) *MindscapeService {
	return &MindscapeService{repo: repo, profile: profile, logger: logger}
}

// Configured reports whether the spreadsheet credentials are usable
func (s *MindscapeService) Configured() bool {
	return s.repo != nil && s.repo.Configured()
}

// PublicGraph returns the public subgraph narrowed by query and nodeType
func (s *MindscapeService) PublicGraph(ctx context.Context, query, nodeType string) (aggregates.Graph, error) {
	if !s.Configured() {
		return aggregates.Graph{}, pkgerrors.NewUnavailableError(MsgMindscapeNotConfigured)
	}

	nodes, connections, err := s.repo.LoadGraph(ctx)
	if err != nil {
		return aggregates.Graph{}, pkgerrors.NewExternalError("google-sheets", MsgMindscapeFetchFailed, err)
	}

	graph := aggregates.NewGraph(nodes, connections).PublicView().Filter(query, nodeType)
	s.logger.Debug("Fetched public mindscape",
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("connections", len(graph.Connections)),
	)
	return graph, nil
}

// AllNodes returns every node with its visibility flag
func (s *MindscapeService) AllNodes(ctx context.Context) ([]entities.Node, error) {
	if !s.Configured() {
		return nil, pkgerrors.NewUnavailableError(MsgMindscapeNotConfigured)
	}
	nodes, err := s.repo.ListNodes(ctx)
	if err != nil {
		return nil, pkgerrors.NewExternalError("google-sheets", MsgNodesFetchFailed, err)
	}
	if nodes == nil {
		nodes = []entities.Node{}
	}
	return nodes, nil
}

// Projects returns the projects tab
func (s *MindscapeService) Projects(ctx context.Context) ([]entities.Project, error) {
	if s.profile == nil || !s.profile.Configured() {
		return nil, pkgerrors.NewUnavailableError(MsgMindscapeNotConfigured)
	}
	projects, err := s.profile.ListProjects(ctx)
	if err != nil {
		return nil, pkgerrors.NewExternalError("google-sheets", MsgProfileFetchFailed, err)
	}
	if projects == nil {
		projects = []entities.Project{}
	}
	return projects, nil
}

// CurrentStatus returns the most recently updated status row
func (s *MindscapeService) CurrentStatus(ctx context.Context) (entities.CurrentStatus, error) {
	if s.profile == nil || !s.profile.Configured() {
		return entities.CurrentStatus{}, pkgerrors.NewUnavailableError(MsgMindscapeNotConfigured)
	}
	rows, err := s.profile.ListStatuses(ctx)
	if err != nil {
		return entities.CurrentStatus{}, pkgerrors.NewExternalError("google-sheets", MsgProfileFetchFailed, err)
	}
	status, ok := entities.LatestStatus(rows)
	if !ok {
		return entities.CurrentStatus{}, pkgerrors.NewNotFoundError("Status")
	}
	return status, nil
}
