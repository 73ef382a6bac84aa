package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/entities"
	"portfolio-backend/domain/core/valueobjects"
	"portfolio-backend/domain/events"
)

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) Configured() bool { return m.Called().Bool(0) }

func (m *mockContactRepo) Append(ctx context.Context, msg entities.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactRepo) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Configured() bool { return m.Called().Bool(0) }

func (m *mockNotifier) NotifyContact(ctx context.Context, msg entities.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockNotifier) Verify(ctx context.Context) error { return m.Called(ctx).Error(0) }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	return m.Called(ctx, evts).Error(0)
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{outcomes: map[string]int{}}
}

func (c *countingMetrics) ContactSubmitted(outcome string) {
	c.mu.Lock()
	c.outcomes[outcome]++
	c.mu.Unlock()
}

type mockMindscapeRepo struct {
	mock.Mock
}

func (m *mockMindscapeRepo) Configured() bool { return m.Called().Bool(0) }

func (m *mockMindscapeRepo) LoadGraph(ctx context.Context) ([]entities.Node, []entities.Connection, error) {
	args := m.Called(ctx)
	nodes, _ := args.Get(0).([]entities.Node)
	conns, _ := args.Get(1).([]entities.Connection)
	return nodes, conns, args.Error(2)
}

func (m *mockMindscapeRepo) ListNodes(ctx context.Context) ([]entities.Node, error) {
	args := m.Called(ctx)
	nodes, _ := args.Get(0).([]entities.Node)
	return nodes, args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Configured() bool { return m.Called().Bool(0) }

func (m *mockProfileRepo) ListProjects(ctx context.Context) ([]entities.Project, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]entities.Project)
	return p, args.Error(1)
}

func (m *mockProfileRepo) ListStatuses(ctx context.Context) ([]entities.CurrentStatus, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]entities.CurrentStatus)
	return s, args.Error(1)
}

type mockFeed struct {
	mock.Mock
}

func (m *mockFeed) FetchPosts(ctx context.Context) ([]valueobjects.BlogPost, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]valueobjects.BlogPost)
	return p, args.Error(1)
}

type mockMusic struct {
	mock.Mock
}

func (m *mockMusic) Configured() bool { return m.Called().Bool(0) }

func (m *mockMusic) NowPlaying(ctx context.Context) (*valueobjects.NowPlaying, error) {
	args := m.Called(ctx)
	np, _ := args.Get(0).(*valueobjects.NowPlaying)
	return np, args.Error(1)
}

func (m *mockMusic) RecentlyPlayed(ctx context.Context) (*valueobjects.RecentTrack, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).(*valueobjects.RecentTrack)
	return t, args.Error(1)
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) ClientConfigured() bool { return m.Called().Bool(0) }

func (m *mockAuthorizer) AuthURL(redirectURI string) string {
	return m.Called(redirectURI).String(0)
}

func (m *mockAuthorizer) Exchange(ctx context.Context, code, redirectURI string) (ports.TokenGrant, error) {
	args := m.Called(ctx, code, redirectURI)
	g, _ := args.Get(0).(ports.TokenGrant)
	return g, args.Error(1)
}

type mockVideos struct {
	mock.Mock
}

func (m *mockVideos) Configured() bool { return m.Called().Bool(0) }

func (m *mockVideos) LatestVideos(ctx context.Context, max int64) ([]valueobjects.Video, error) {
	args := m.Called(ctx, max)
	v, _ := args.Get(0).([]valueobjects.Video)
	return v, args.Error(1)
}

type mockReels struct {
	mock.Mock
}

func (m *mockReels) Configured() bool { return m.Called().Bool(0) }

func (m *mockReels) LatestReels(ctx context.Context, limit int) ([]valueobjects.Reel, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]valueobjects.Reel)
	return r, args.Error(1)
}
