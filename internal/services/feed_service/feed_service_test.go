package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/handlers/slogdiscard"
	"artfeed/internal/storage"
)

type MockFeedReader struct {
	mock.Mock
}

func (m *MockFeedReader) GetFeed(ctx context.Context, query models.FeedQuery) ([]models.FeedItem, int, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.FeedItem), args.Int(1), args.Error(2)
}

func (m *MockFeedReader) GetPostDetail(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).(models.FeedItem), args.Error(1)
}

type MockProfileResolver struct {
	mock.Mock
}

func (m *MockProfileResolver) Resolve(ctx context.Context, userIDs []string) map[string]models.Author {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(map[string]models.Author)
}

func TestFeedService_GetFeed(t *testing.T) {
	ctx := context.Background()
	query := models.FeedQuery{ViewerID: "viewer", SortBy: models.SortLatest, Page: models.NewPage(1, 2)}

	items := []models.FeedItem{
		{PostID: 3, AuthorID: "alice", LikesCount: 1, IsLiked: true},
		{PostID: 2, AuthorID: "ghost"},
	}

	posts := new(MockFeedReader)
	profiles := new(MockProfileResolver)

	posts.On("GetFeed", ctx, query).Return(items, 5, nil).Once()
	profiles.On("Resolve", ctx, []string{"alice", "ghost"}).Return(map[string]models.Author{
		"alice": {UserID: "alice", DisplayName: "Alice"},
	}).Once()

	service := NewFeedService(slogdiscard.NewDiscardLogger(), posts, profiles)
	feed, err := service.GetFeed(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, 5, feed.TotalCount)
	assert.True(t, feed.HasMore)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Alice", feed.Items[0].Author.DisplayName)
	assert.Equal(t, models.UnknownAuthorName, feed.Items[1].Author.DisplayName)
	assert.Equal(t, "ghost", feed.Items[1].Author.UserID)

	posts.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestFeedService_GetFeed_EmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	query := models.FeedQuery{Page: models.NewPage(1, 12)}

	t.Run("empty feed skips profile lookup", func(t *testing.T) {
		posts := new(MockFeedReader)
		profiles := new(MockProfileResolver)
		posts.On("GetFeed", ctx, query).Return([]models.FeedItem{}, 0, nil).Once()

		feed, err := NewFeedService(slogdiscard.NewDiscardLogger(), posts, profiles).GetFeed(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, feed.Items)
		assert.False(t, feed.HasMore)
		profiles.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("page past the end", func(t *testing.T) {
		far := models.FeedQuery{Page: models.NewPage(math.MaxInt64, models.DefaultPageSize)}
		posts := new(MockFeedReader)
		posts.On("GetFeed", ctx, mock.MatchedBy(func(q models.FeedQuery) bool {
			return q.Page.Offset() > 0
		})).Return([]models.FeedItem{}, 5, nil).Once()

		feed, err := NewFeedService(slogdiscard.NewDiscardLogger(), posts, new(MockProfileResolver)).GetFeed(ctx, far)
		require.NoError(t, err)
		assert.Empty(t, feed.Items)
		assert.Equal(t, 5, feed.TotalCount)
		assert.False(t, feed.HasMore)
		posts.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		posts := new(MockFeedReader)
		posts.On("GetFeed", ctx, query).Return([]models.FeedItem(nil), 0, errors.New("timeout")).Once()

		_, err := NewFeedService(slogdiscard.NewDiscardLogger(), posts, new(MockProfileResolver)).GetFeed(ctx, query)
		assert.Error(t, err)
	})
}

func TestFeedService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		posts := new(MockFeedReader)
		profiles := new(MockProfileResolver)
		posts.On("GetPostDetail", ctx, int64(9), "").Return(models.FeedItem{PostID: 9, AuthorID: "bob", Title: "t"}, nil).Once()
		profiles.On("Resolve", ctx, []string{"bob"}).Return(map[string]models.Author{
			"bob": {UserID: "bob", DisplayName: "Bob"},
		}).Once()

		item, err := NewFeedService(slogdiscard.NewDiscardLogger(), posts, profiles).GetPost(ctx, 9, "")
		require.NoError(t, err)
		assert.Equal(t, "Bob", item.Author.DisplayName)
		assert.Equal(t, "t", item.Title)
	})

	t.Run("not found", func(t *testing.T) {
		posts := new(MockFeedReader)
		posts.On("GetPostDetail", ctx, int64(9), "").
			Return(models.FeedItem{}, fmt.Errorf("repo: %w", storage.ErrPostNotFound)).Once()

		_, err := NewFeedService(slogdiscard.NewDiscardLogger(), posts, new(MockProfileResolver)).GetPost(ctx, 9, "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
