package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/handlers/slogdiscard"
	gallery "artfeed/internal/services/gallery_service"
	httprouters "artfeed/internal/transport/http"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

type MockFeedService struct{ mock.Mock }

func (m *MockFeedService) GetFeed(ctx context.Context, query models.FeedQuery) (models.Feed, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(models.Feed), args.Error(1)
}

func (m *MockFeedService) GetPost(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).(models.FeedItem), args.Error(1)
}

type MockShareService struct{ mock.Mock }

func (m *MockShareService) SharePost(ctx context.Context, input models.ShareInput) (models.Post, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.Post), args.Error(1)
}

type MockLikeService struct{ mock.Mock }

func (m *MockLikeService) ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(models.LikeState), args.Error(1)
}

func (m *MockLikeService) GetLikeStatus(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(models.LikeState), args.Error(1)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentService) AddComment(ctx context.Context, postID int64, userID, content string) (models.Comment, error) {
	args := m.Called(ctx, postID, userID, content)
	return args.Get(0).(models.Comment), args.Error(1)
}

type MockGalleryService struct{ mock.Mock }

func (m *MockGalleryService) SaveImage(ctx context.Context, in gallery.SaveImageInput) (models.Image, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *MockGalleryService) ListImages(ctx context.Context, filter models.ImageFilter) (models.ImagePage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ImagePage), args.Error(1)
}

func (m *MockGalleryService) UpdateImage(ctx context.Context, ownerID string, imageID int64, in gallery.UpdateImageInput) (models.Image, error) {
	args := m.Called(ctx, ownerID, imageID, in)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *MockGalleryService) DeleteImage(ctx context.Context, ownerID string, imageID int64) error {
	args := m.Called(ctx, ownerID, imageID)
	return args.Error(0)
}

type fixture struct {
	e        *echo.Echo
	routers  *httprouters.Routers
	feed     *MockFeedService
	share    *MockShareService
	likes    *MockLikeService
	comments *MockCommentService
	gallery  *MockGalleryService
}

func newFixture() *fixture {
	f := &fixture{
		e:        echo.New(),
		feed:     new(MockFeedService),
		share:    new(MockShareService),
		likes:    new(MockLikeService),
		comments: new(MockCommentService),
		gallery:  new(MockGalleryService),
	}
	f.e.Validator = &testValidator{v: validator.New()}
	f.routers = httprouters.NewRouter(
		slogdiscard.NewDiscardLogger(),
		f.feed,
		f.share,
		f.likes,
		f.comments,
		f.gallery,
		models.DefaultStyleCatalog(),
		func(path string) string { return "http://cdn.test/" + path },
	)
	return f
}

// call runs handler on a context carrying the given acting user and path id.
func (f *fixture) call(handler echo.HandlerFunc, req *http.Request, userID, id string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if userID != "" {
		c.Set("user_id", userID)
	}
	_ = handler(c)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error object in %s", rec.Body.String())
	return errBody["code"].(string)
}

func TestGetFeed(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success with viewer", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetFeed", mock.Anything, models.FeedQuery{
			ViewerID: "viewer",
			SortBy:   models.SortOldest,
			Page:     models.Page{Number: 2, Size: 5},
		}).Return(models.Feed{
			Items: []models.FeedItem{{
				PostID:     7,
				FilePath:   "images/a/x.png",
				LikesCount: 3,
				IsLiked:    true,
				CreatedAt:  created,
				Author:     models.Author{UserID: "a", DisplayName: "Ann"},
			}},
			TotalCount: 6,
			HasMore:    false,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/community/feed?page=2&limit=5&sortBy=oldest", nil)
		rec := f.call(f.routers.GetFeed, req, "viewer", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(6), body["totalCount"])
		assert.Equal(t, false, body["hasMore"])

		posts := body["posts"].([]any)
		require.Len(t, posts, 1)
		post := posts[0].(map[string]any)
		assert.Equal(t, "http://cdn.test/images/a/x.png", post["imageUrl"])
		assert.Equal(t, "Ann", post["authorDisplayName"])
		assert.Equal(t, float64(0), post["commentsCount"])
		assert.Equal(t, true, post["isLikedByViewer"])
		f.feed.AssertExpectations(t)
	})

	t.Run("defaults and empty page", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetFeed", mock.Anything, models.FeedQuery{
			SortBy: models.SortLatest,
			Page:   models.Page{Number: 1, Size: models.DefaultPageSize},
		}).Return(models.Feed{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/community/feed?page=abc&limit=-3", nil)
		rec := f.call(f.routers.GetFeed, req, "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"posts":[],"totalCount":0,"hasMore":false}`, rec.Body.String())
	})

	t.Run("huge page number", func(t *testing.T) {
		clamped := models.Page{Number: models.MaxPageNumber, Size: models.DefaultPageSize}
		require.Positive(t, clamped.Offset())

		f := newFixture()
		f.feed.On("GetFeed", mock.Anything, models.FeedQuery{SortBy: models.SortLatest, Page: clamped}).
			Return(models.Feed{Items: []models.FeedItem{}, TotalCount: 5, HasMore: clamped.HasMore(5)}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/community/feed?page=9223372036854775807", nil)
		rec := f.call(f.routers.GetFeed, req, "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"posts":[],"totalCount":5,"hasMore":false}`, rec.Body.String())
		f.feed.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetFeed", mock.Anything, mock.Anything).Return(models.Feed{}, errors.New("db down")).Once()

		rec := f.call(f.routers.GetFeed, httptest.NewRequest(http.MethodGet, "/", nil), "", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "FEED_ERROR", errorCode(t, rec))
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestSharePost(t *testing.T) {
	body := `{"imageId":4,"title":"Dawn","description":"d","tags":["sky"]}`
	input := models.ShareInput{ImageID: 4, UserID: "owner", Title: "Dawn", Description: "d", Tags: []string{"sky"}}

	tests := []struct {
		name     string
		body     string
		userID   string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "created", body: body, userID: "owner", wantCode: http.StatusCreated},
		{name: "anonymous", body: body, err: models.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantErr: "UNAUTHORIZED"},
		{name: "not found", body: body, userID: "owner", err: models.ErrNotFound, wantCode: http.StatusNotFound, wantErr: "NOT_FOUND"},
		{name: "already shared", body: body, userID: "owner", err: models.ErrAlreadyShared, wantCode: http.StatusBadRequest, wantErr: "ALREADY_SHARED"},
		{name: "internal", body: body, userID: "owner", err: errors.New("tx failed"), wantCode: http.StatusInternalServerError, wantErr: "INTERNAL_ERROR"},
		{name: "missing title", body: `{"imageId":4}`, userID: "owner", wantCode: http.StatusBadRequest, wantErr: "INVALID_INPUT"},
		{name: "malformed", body: `{"imageId":`, userID: "owner", wantCode: http.StatusBadRequest, wantErr: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			in := input
			in.UserID = tt.userID
			f.share.On("SharePost", mock.Anything, in).
				Return(models.Post{ID: 1, ImageID: 4, UserID: "owner", Title: "Dawn"}, tt.err).Maybe()

			rec := f.call(f.routers.SharePost, jsonRequest(http.MethodPost, "/api/v1/community/share", tt.body), tt.userID, "")

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, rec))
				return
			}
			resp := decode(t, rec)
			assert.Equal(t, true, resp["success"])
			assert.Equal(t, float64(1), resp["post"].(map[string]any)["id"])
		})
	}
}

func TestGetPost(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetPost", mock.Anything, int64(9), "").
			Return(models.FeedItem{PostID: 9, Title: "t"}, nil).Once()

		rec := f.call(f.routers.GetPost, httptest.NewRequest(http.MethodGet, "/", nil), "", "9")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(9), decode(t, rec)["post"].(map[string]any)["postId"])
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetPost", mock.Anything, int64(9), "").Return(models.FeedItem{}, models.ErrNotFound).Once()

		rec := f.call(f.routers.GetPost, httptest.NewRequest(http.MethodGet, "/", nil), "", "9")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "POST_NOT_FOUND", errorCode(t, rec))
	})

	t.Run("non numeric id", func(t *testing.T) {
		f := newFixture()
		rec := f.call(f.routers.GetPost, httptest.NewRequest(http.MethodGet, "/", nil), "", "abc")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		f.feed.AssertNotCalled(t, "GetPost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("internal", func(t *testing.T) {
		f := newFixture()
		f.feed.On("GetPost", mock.Anything, int64(9), "").Return(models.FeedItem{}, errors.New("boom")).Once()

		rec := f.call(f.routers.GetPost, httptest.NewRequest(http.MethodGet, "/", nil), "", "9")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "POST_DETAIL_ERROR", errorCode(t, rec))
	})
}

func TestLikes(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		f := newFixture()
		f.likes.On("ToggleLike", mock.Anything, int64(3), "u1").
			Return(models.LikeState{Liked: true, TotalLikes: 8}, nil).Once()

		rec := f.call(f.routers.ToggleLike, httptest.NewRequest(http.MethodPost, "/", nil), "u1", "3")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"likes":8,"isLiked":true}`, rec.Body.String())
	})

	t.Run("toggle on missing post", func(t *testing.T) {
		f := newFixture()
		f.likes.On("ToggleLike", mock.Anything, int64(3), "u1").Return(models.LikeState{}, models.ErrNotFound).Once()

		rec := f.call(f.routers.ToggleLike, httptest.NewRequest(http.MethodPost, "/", nil), "u1", "3")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "POST_NOT_FOUND", errorCode(t, rec))
	})

	t.Run("status", func(t *testing.T) {
		f := newFixture()
		f.likes.On("GetLikeStatus", mock.Anything, int64(3), "u1").
			Return(models.LikeState{TotalLikes: 2}, nil).Once()

		rec := f.call(f.routers.GetLikeStatus, httptest.NewRequest(http.MethodGet, "/", nil), "u1", "3")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"likes":2,"isLiked":false}`, rec.Body.String())
	})

	t.Run("status anonymous", func(t *testing.T) {
		f := newFixture()
		f.likes.On("GetLikeStatus", mock.Anything, int64(3), "").Return(models.LikeState{}, models.ErrUnauthorized).Once()

		rec := f.call(f.routers.GetLikeStatus, httptest.NewRequest(http.MethodGet, "/", nil), "", "3")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	})
}

func TestComments(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		f := newFixture()
		f.comments.On("ListComments", mock.Anything, int64(5)).Return([]models.Comment{
			{ID: 2, PostID: 5, UserID: "b", Content: "second", Author: models.Author{DisplayName: "Bo"}},
			{ID: 1, PostID: 5, UserID: "a", Content: "first", Author: models.Author{DisplayName: "Ann"}},
		}, nil).Once()

		rec := f.call(f.routers.ListComments, httptest.NewRequest(http.MethodGet, "/", nil), "", "5")

		require.Equal(t, http.StatusOK, rec.Code)
		comments := decode(t, rec)["comments"].([]any)
		require.Len(t, comments, 2)
		assert.Equal(t, "Bo", comments[0].(map[string]any)["authorDisplayName"])
	})

	t.Run("list failure", func(t *testing.T) {
		f := newFixture()
		f.comments.On("ListComments", mock.Anything, int64(5)).Return([]models.Comment(nil), errors.New("boom")).Once()

		rec := f.call(f.routers.ListComments, httptest.NewRequest(http.MethodGet, "/", nil), "", "5")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "COMMENTS_FETCH_ERROR", errorCode(t, rec))
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "created", wantCode: http.StatusCreated},
		{name: "invalid content", err: models.ErrInvalidContent, wantCode: http.StatusBadRequest, wantErr: "INVALID_CONTENT"},
		{name: "unauthorized", err: models.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantErr: "UNAUTHORIZED"},
		{name: "missing post", err: models.ErrNotFound, wantCode: http.StatusNotFound, wantErr: "POST_NOT_FOUND"},
		{name: "internal", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: "COMMENT_CREATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run("create "+tt.name, func(t *testing.T) {
			f := newFixture()
			f.comments.On("AddComment", mock.Anything, int64(5), "u1", "hello").
				Return(models.Comment{ID: 1, PostID: 5, UserID: "u1", Content: "hello"}, tt.err).Once()

			req := jsonRequest(http.MethodPost, "/", `{"content":"hello"}`)
			rec := f.call(f.routers.CreateComment, req, "u1", "5")

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, rec))
				return
			}
			assert.Equal(t, "hello", decode(t, rec)["comment"].(map[string]any)["content"])
		})
	}
}

func multipartUpload(t *testing.T, fields map[string][]string, withFile bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vals := range fields {
		for _, v := range vals {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if withFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="fox.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(part, "pngdata")
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	fields := map[string][]string{
		"prompt":    {"a fox"},
		"artStyle":  {"수채화"},
		"colorTone": {"파스텔"},
		"tags":      {"fox", "forest"},
	}

	t.Run("created", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("SaveImage", mock.Anything, mock.MatchedBy(func(in gallery.SaveImageInput) bool {
			return in.OwnerID == "owner" &&
				in.Prompt == "a fox" &&
				in.ContentType == "image/png" &&
				in.Filename == "fox.png" &&
				in.Size == int64(len("pngdata")) &&
				assert.ObjectsAreEqual([]string{"fox", "forest"}, in.Tags)
		})).Return(models.Image{ID: 3, FilePath: "images/owner/x.png", Tags: []string{"fox", "forest"}}, nil).Once()

		rec := f.call(f.routers.UploadImage, multipartUpload(t, fields, true), "owner", "")

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		image := decode(t, rec)["image"].(map[string]any)
		assert.Equal(t, "http://cdn.test/images/owner/x.png", image["imageUrl"])
		f.gallery.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture()
		rec := f.call(f.routers.UploadImage, multipartUpload(t, fields, false), "owner", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
	})

	t.Run("rejected by service", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("SaveImage", mock.Anything, mock.Anything).
			Return(models.Image{}, fmt.Errorf("%w: bad type", models.ErrInvalidInput)).Once()

		rec := f.call(f.routers.UploadImage, multipartUpload(t, fields, true), "owner", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
	})
}

func TestListImages(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("ListImages", mock.Anything, mock.MatchedBy(func(filter models.ImageFilter) bool {
			return filter.OwnerID == "owner" &&
				filter.ArtStyle == "유화" &&
				filter.PublicOnly &&
				assert.ObjectsAreEqual([]string{"a", "b"}, filter.Tags) &&
				filter.From != nil && filter.From.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)) &&
				filter.To != nil && filter.To.Before(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)) &&
				filter.To.After(time.Date(2025, 1, 3, 23, 0, 0, 0, time.UTC)) &&
				filter.Page == models.Page{Number: 1, Size: 2}
		})).Return(models.ImagePage{Images: []models.Image{{ID: 1}}, TotalCount: 3, HasMore: true}, nil).Once()

		target := "/api/v1/gallery?limit=2&artStyle=%EC%9C%A0%ED%99%94&tag=a&tag=b&from=2025-01-02&to=2025-01-03&public=true"
		rec := f.call(f.routers.ListImages, httptest.NewRequest(http.MethodGet, target, nil), "owner", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, float64(3), body["totalCount"])
		assert.Equal(t, true, body["hasMore"])
		f.gallery.AssertExpectations(t)
	})

	t.Run("huge page number", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("ListImages", mock.Anything, mock.MatchedBy(func(filter models.ImageFilter) bool {
			return filter.Page.Number == models.MaxPageNumber && filter.Page.Offset() > 0
		})).Return(models.ImagePage{Images: []models.Image{}, TotalCount: 2}, nil).Once()

		target := "/api/v1/gallery?page=9223372036854775807"
		rec := f.call(f.routers.ListImages, httptest.NewRequest(http.MethodGet, target, nil), "owner", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, []any{}, body["images"])
		assert.Equal(t, false, body["hasMore"])
		f.gallery.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		f := newFixture()
		rec := f.call(f.routers.ListImages, httptest.NewRequest(http.MethodGet, "/api/v1/gallery?from=yesterday", nil), "owner", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
	})
}

func TestUpdateAndDeleteImage(t *testing.T) {
	t.Run("update forbidden", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("UpdateImage", mock.Anything, "intruder", int64(2), gallery.UpdateImageInput{Tags: []string{"x"}}).
			Return(models.Image{}, models.ErrForbidden).Once()

		rec := f.call(f.routers.UpdateImage, jsonRequest(http.MethodPatch, "/", `{"tags":["x"]}`), "intruder", "2")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
	})

	t.Run("update failure", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("UpdateImage", mock.Anything, "owner", int64(2), mock.Anything).
			Return(models.Image{}, errors.New("boom")).Once()

		rec := f.call(f.routers.UpdateImage, jsonRequest(http.MethodPatch, "/", `{"tags":[]}`), "owner", "2")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "UPDATE_FAILED", errorCode(t, rec))
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("DeleteImage", mock.Anything, "owner", int64(2)).Return(nil).Once()

		rec := f.call(f.routers.DeleteImage, httptest.NewRequest(http.MethodDelete, "/", nil), "owner", "2")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode(t, rec)["success"])
	})

	t.Run("delete missing", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("DeleteImage", mock.Anything, "owner", int64(2)).Return(models.ErrNotFound).Once()

		rec := f.call(f.routers.DeleteImage, httptest.NewRequest(http.MethodDelete, "/", nil), "owner", "2")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
	})

	t.Run("delete failure", func(t *testing.T) {
		f := newFixture()
		f.gallery.On("DeleteImage", mock.Anything, "owner", int64(2)).Return(errors.New("boom")).Once()

		rec := f.call(f.routers.DeleteImage, httptest.NewRequest(http.MethodDelete, "/", nil), "owner", "2")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "DELETE_FAILED", errorCode(t, rec))
	})
}

func TestListStyles(t *testing.T) {
	f := newFixture()
	rec := f.call(f.routers.ListStyles, httptest.NewRequest(http.MethodGet, "/", nil), "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	styles := decode(t, rec)["styles"].(map[string]any)
	assert.Len(t, styles["artStyles"], len(models.DefaultStyleCatalog().ArtStyles))
	assert.Len(t, styles["colorTones"], len(models.DefaultStyleCatalog().ColorTones))
}
