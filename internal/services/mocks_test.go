package services_test

import (
	"context"
	"sync"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/cache"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/generation"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/trigger"
	"github.com/stretchr/testify/mock"
)

// MockLandingPageRepository is a mock implementation of LandingPageRepositoryInterface
type MockLandingPageRepository struct {
	mock.Mock
}

func (m *MockLandingPageRepository) Create(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error {
	args := m.Called(ctx, page, sub)
	return args.Error(0)
}

func (m *MockLandingPageRepository) GetByID(ctx context.Context, id string) (*models.LandingPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLandingPageRepository) ListByUser(ctx context.Context, userID string, opts models.ListOptions) ([]models.LandingPageListItem, int, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.LandingPageListItem), args.Int(1), args.Error(2)
}

func (m *MockLandingPageRepository) UpdateBody(ctx context.Context, id string, req *models.UpdatePageRequest) (*models.LandingPage, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageRepository) Regenerate(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error {
	args := m.Called(ctx, page, sub)
	return args.Error(0)
}

func (m *MockLandingPageRepository) SetPublished(ctx context.Context, id string, published bool) (*models.LandingPage, error) {
	args := m.Called(ctx, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLandingPageRepository) Submissions(ctx context.Context, pageID string, limit int) ([]models.FormSubmission, error) {
	args := m.Called(ctx, pageID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSubmission), args.Error(1)
}

// MockLeadRepository is a mock implementation of LeadRepositoryInterface
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListByPage(ctx context.Context, pageID string, opts models.ListOptions) ([]models.Lead, int, error) {
	args := m.Called(ctx, pageID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockGenerator is a mock implementation of ContentGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (*generation.Result, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.Result), args.Error(1)
}

func (m *MockGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

// MockNotifier is a mock implementation of EventNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CallAsync(targetURL string, event trigger.Event) {
	m.Called(targetURL, event)
}

// MockPageCache is a mock implementation of PageCacheInterface
type MockPageCache struct {
	mock.Mock
}

func (m *MockPageCache) Get(pageID string) (*cache.RenderedPage, bool) {
	args := m.Called(pageID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*cache.RenderedPage), args.Bool(1)
}

func (m *MockPageCache) Set(page *cache.RenderedPage) {
	m.Called(page)
}

func (m *MockPageCache) Invalidate(pageID string) {
	m.Called(pageID)
}

func (m *MockPageCache) Size() int {
	return m.Called().Int(0)
}

// memoryStore is an in-memory asset store
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}
