package testutil

import (
	"context"

	"songcatalog/internal/models"
	"songcatalog/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockSongRepository is a mock implementation of SongRepository for testing
type MockSongRepository struct {
	mock.Mock
}

var _ repositories.SongRepository = (*MockSongRepository)(nil)

func (m *MockSongRepository) Create(ctx context.Context, song *models.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) Update(ctx context.Context, song *models.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongRepository) List(ctx context.Context, filter repositories.SongFilter) ([]*models.Song, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Song), args.Error(1)
}

func (m *MockSongRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSongRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Helper functions for setting up mock expectations

// ExpectList sets up expectation for List
func ExpectList(mockRepo *MockSongRepository, filter repositories.SongFilter, songs []*models.Song, err error) {
	mockRepo.On("List", mock.Anything, filter).Return(songs, err)
}

// ExpectFindByID sets up expectation for FindByID
func ExpectFindByID(mockRepo *MockSongRepository, id string, song *models.Song, err error) {
	mockRepo.On("FindByID", mock.Anything, id).Return(song, err)
}

// ExpectCreate sets up expectation for Create, assigning an ID like the real store
func ExpectCreate(mockRepo *MockSongRepository, err error) {
	call := mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Song")).Return(err)
	if err == nil {
		call.Run(func(args mock.Arguments) {
			song := args.Get(1).(*models.Song)
			song.ID = NewObjectID()
		})
	}
}
