package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/entities"
	pkgerrors "portfolio-backend/pkg/errors"
)

func sampleGraph() ([]entities.Node, []entities.Connection) {
	nodes := []entities.Node{
		{ID: "n1", Title: "Go Services", Type: entities.NodeTypeProject, Tags: []string{"backend"}, IsPublic: true},
		{ID: "n2", Title: "Private Journal", Type: entities.NodeTypeNote, IsPublic: false},
		{ID: "n3", Title: "Graph Layouts", Type: entities.NodeTypeConcept, Tags: []string{"viz", "Backend"}, IsPublic: true},
	}
	conns := []entities.Connection{
		{ID: "c1", SourceNodeID: "n1", TargetNodeID: "n2"},
		{ID: "c2", SourceNodeID: "n1", TargetNodeID: "n3"},
	}
	return nodes, conns
}

func TestMindscapeService_PublicGraph(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		nodeType  string
		wantNodes []string
		wantConns []string
	}{
		{"all public", "", "", []string{"n1", "n3"}, []string{"c2"}},
		{"tag query", "backend", "all", []string{"n1", "n3"}, []string{"c2"}},
		{"type filter", "", "concept", []string{"n3"}, []string{}},
		{"title query", "graph", "", []string{"n3"}, []string{}},
		{"private never leaks", "journal", "", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			nodes, conns := sampleGraph()
			repo := new(mockMindscapeRepo)
			repo.On("Configured").Return(true)
			repo.On("LoadGraph", mock.Anything).Return(nodes, conns, nil)
			svc := NewMindscapeService(repo, nil, zap.NewNop())

			// Act
			graph, err := svc.PublicGraph(context.Background(), tt.query, tt.nodeType)

			// Assert
			require.NoError(t, err)
			gotNodes := []string{}
			for _, n := range graph.Nodes {
				gotNodes = append(gotNodes, n.ID)
			}
			assert.ElementsMatch(t, tt.wantNodes, gotNodes)
			gotConns := []string{}
			for _, c := range graph.Connections {
				gotConns = append(gotConns, c.ID)
			}
			assert.ElementsMatch(t, tt.wantConns, gotConns)
		})
	}
}

func TestMindscapeService_NotConfigured(t *testing.T) {
	repo := new(mockMindscapeRepo)
	repo.On("Configured").Return(false)
	svc := NewMindscapeService(repo, nil, zap.NewNop())

	_, err := svc.PublicGraph(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnavailable(err))
	assert.Equal(t, MsgMindscapeNotConfigured, pkgerrors.GetAppError(err).Message)
	assert.Equal(t, 503, pkgerrors.GetAppError(err).HTTPStatus)

	_, err = svc.AllNodes(context.Background())
	assert.True(t, pkgerrors.IsUnavailable(err))

	_, err = svc.Projects(context.Background())
	assert.True(t, pkgerrors.IsUnavailable(err))

	repo.AssertNotCalled(t, "LoadGraph", mock.Anything)
}

func TestMindscapeService_FetchErrors(t *testing.T) {
	repo := new(mockMindscapeRepo)
	repo.On("Configured").Return(true)
	repo.On("LoadGraph", mock.Anything).Return(nil, nil, errors.New("403 forbidden"))
	repo.On("ListNodes", mock.Anything).Return(nil, errors.New("403 forbidden"))
	svc := NewMindscapeService(repo, nil, zap.NewNop())

	_, err := svc.PublicGraph(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, MsgMindscapeFetchFailed, pkgerrors.GetAppError(err).Message)

	_, err = svc.AllNodes(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgNodesFetchFailed, pkgerrors.GetAppError(err).Message)
	assert.Equal(t, 500, pkgerrors.GetAppError(err).HTTPStatus)
}

func TestMindscapeService_AllNodesIncludesPrivate(t *testing.T) {
	nodes, _ := sampleGraph()
	repo := new(mockMindscapeRepo)
	repo.On("Configured").Return(true)
	repo.On("ListNodes", mock.Anything).Return(nodes, nil)
	svc := NewMindscapeService(repo, nil, zap.NewNop())

	got, err := svc.AllNodes(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.False(t, got[1].IsPublic)
}

func TestMindscapeService_CurrentStatus(t *testing.T) {
	t.Run("latest row wins", func(t *testing.T) {
		profile := new(mockProfileRepo)
		profile.On("Configured").Return(true)
		profile.On("ListStatuses", mock.Anything).Return([]entities.CurrentStatus{
			{ID: "s1", Status: "old", LastUpdated: "2024-01-01T00:00:00Z"},
			{ID: "s2", Status: "new", LastUpdated: "2025-01-01T00:00:00Z"},
		}, nil)
		svc := NewMindscapeService(nil, profile, zap.NewNop())

		status, err := svc.CurrentStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "s2", status.ID)
	})

	t.Run("empty sheet", func(t *testing.T) {
		profile := new(mockProfileRepo)
		profile.On("Configured").Return(true)
		profile.On("ListStatuses", mock.Anything).Return([]entities.CurrentStatus{}, nil)
		svc := NewMindscapeService(nil, profile, zap.NewNop())

		_, err := svc.CurrentStatus(context.Background())

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestMindscapeService_ProjectsNeverNil(t *testing.T) {
	profile := new(mockProfileRepo)
	profile.On("Configured").Return(true)
	profile.On("ListProjects", mock.Anything).Return(nil, nil)
	svc := NewMindscapeService(nil, profile, zap.NewNop())

	projects, err := svc.Projects(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}
