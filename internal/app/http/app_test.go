package httpapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	httpapp "artfeed/internal/app/http"
	"artfeed/internal/domain/models"
	libjwt "artfeed/internal/lib/jwt"
	"artfeed/internal/lib/logger/handlers/slogdiscard"
	gallery "artfeed/internal/services/gallery_service"
	httprouters "artfeed/internal/transport/http"
)

var secret = []byte("test-secret")

type stubFeed struct{ mock.Mock }

func (m *stubFeed) GetFeed(ctx context.Context, q models.FeedQuery) (models.Feed, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.Feed), args.Error(1)
}

func (m *stubFeed) GetPost(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).(models.FeedItem), args.Error(1)
}

type stubShare struct{ mock.Mock }

func (m *stubShare) SharePost(ctx context.Context, in models.ShareInput) (models.Post, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Post), args.Error(1)
}

type stubLikes struct{ mock.Mock }

func (m *stubLikes) ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(models.LikeState), args.Error(1)
}

func (m *stubLikes) GetLikeStatus(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(models.LikeState), args.Error(1)
}

type stubComments struct{ mock.Mock }

func (m *stubComments) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *stubComments) AddComment(ctx context.Context, postID int64, userID, content string) (models.Comment, error) {
	args := m.Called(ctx, postID, userID, content)
	return args.Get(0).(models.Comment), args.Error(1)
}

type stubGallery struct{ mock.Mock }

func (m *stubGallery) SaveImage(ctx context.Context, in gallery.SaveImageInput) (models.Image, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *stubGallery) ListImages(ctx context.Context, filter models.ImageFilter) (models.ImagePage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ImagePage), args.Error(1)
}

func (m *stubGallery) UpdateImage(ctx context.Context, ownerID string, imageID int64, in gallery.UpdateImageInput) (models.Image, error) {
	args := m.Called(ctx, ownerID, imageID, in)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *stubGallery) DeleteImage(ctx context.Context, ownerID string, imageID int64) error {
	return m.Called(ctx, ownerID, imageID).Error(0)
}

type RoutesTestSuite struct {
	suite.Suite
	server   *httptest.Server
	feed     *stubFeed
	likes    *stubLikes
	comments *stubComments
	gallery  *stubGallery
}

func (s *RoutesTestSuite) SetupTest() {
	s.feed = new(stubFeed)
	s.likes = new(stubLikes)
	s.comments = new(stubComments)
	s.gallery = new(stubGallery)

	log := slogdiscard.NewDiscardLogger()
	routers := httprouters.NewRouter(
		log,
		s.feed,
		new(stubShare),
		s.likes,
		s.comments,
		s.gallery,
		models.DefaultStyleCatalog(),
		func(path string) string { return "/uploads/" + path },
	)

	app := httpapp.New(log, httpapp.Options{BodyLimit: "1M", JWTSecret: secret}, routers)
	app.BuildRouters()

	s.server = httptest.NewServer(app.Handler())
}

func (s *RoutesTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RoutesTestSuite) token(userID string) string {
	tok, err := libjwt.NewToken(userID, "test", secret, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *RoutesTestSuite) do(method, path, token string, body string) (*http.Response, map[string]any) {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (s *RoutesTestSuite) TestHealthAndStyles() {
	resp, body := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])

	resp, body = s.do(http.MethodGet, "/api/v1/styles", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "styles")
}

func (s *RoutesTestSuite) TestFeedIsPublicAndSeesViewer() {
	s.feed.On("GetFeed", mock.Anything, mock.MatchedBy(func(q models.FeedQuery) bool { return q.ViewerID == "" })).
		Return(models.Feed{}, nil).Once()
	s.feed.On("GetFeed", mock.Anything, mock.MatchedBy(func(q models.FeedQuery) bool { return q.ViewerID == "viewer" })).
		Return(models.Feed{}, nil).Once()

	resp, _ := s.do(http.MethodGet, "/api/v1/community/feed", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/community/feed", s.token("viewer"), "")
	s.Equal(http.StatusOK, resp.StatusCode)

	// a broken token on an optional route degrades to anonymous
	s.feed.On("GetFeed", mock.Anything, mock.MatchedBy(func(q models.FeedQuery) bool { return q.ViewerID == "" })).
		Return(models.Feed{}, nil).Once()
	resp, _ = s.do(http.MethodGet, "/api/v1/community/feed", "not-a-jwt", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	s.feed.AssertExpectations(s.T())
}

func (s *RoutesTestSuite) TestMutationsRequireToken() {
	routes := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/v1/community/share", `{"imageId":1,"title":"t"}`},
		{http.MethodPost, "/api/v1/post/1/like", ""},
		{http.MethodGet, "/api/v1/post/1/like", ""},
		{http.MethodPost, "/api/v1/post/1/comments", `{"content":"hi"}`},
		{http.MethodGet, "/api/v1/gallery", ""},
		{http.MethodDelete, "/api/v1/gallery/1", ""},
	}

	for _, r := range routes {
		resp, body := s.do(r.method, r.path, "", r.body)
		s.Equal(http.StatusUnauthorized, resp.StatusCode, r.path)
		s.Equal(false, body["success"], r.path)
		s.Equal("UNAUTHORIZED", body["error"].(map[string]any)["code"], r.path)
	}
}

func (s *RoutesTestSuite) TestTokenSubjectBecomesActingUser() {
	s.likes.On("ToggleLike", mock.Anything, int64(7), "fan").
		Return(models.LikeState{Liked: true, TotalLikes: 1}, nil).Once()
	s.comments.On("ListComments", mock.Anything, int64(7)).Return([]models.Comment{}, nil).Once()

	resp, body := s.do(http.MethodPost, "/api/v1/post/7/like", s.token("fan"), "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["isLiked"])

	resp, body = s.do(http.MethodGet, "/api/v1/post/7/comments", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal([]any{}, body["comments"])

	s.likes.AssertExpectations(s.T())
	s.comments.AssertExpectations(s.T())
}

func (s *RoutesTestSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/health", "", "")

	resp, err := http.Get(s.server.URL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestRoutes(t *testing.T) {
	require.NotEmpty(t, secret)
	suite.Run(t, new(RoutesTestSuite))
}
