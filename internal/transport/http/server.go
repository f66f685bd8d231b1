package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/middleware"
	gallery "artfeed/internal/services/gallery_service"
	"artfeed/internal/transport/http/dto"
	"artfeed/internal/transport/http/dto/response"

	_ "artfeed/docs"
)

const dateLayout = "2006-01-02"

type FeedService interface {
	GetFeed(ctx context.Context, query models.FeedQuery) (models.Feed, error)
	GetPost(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error)
}

type ShareService interface {
	SharePost(ctx context.Context, input models.ShareInput) (models.Post, error)
}

type LikeService interface {
	ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error)
	GetLikeStatus(ctx context.Context, postID int64, userID string) (models.LikeState, error)
}

type CommentService interface {
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
	AddComment(ctx context.Context, postID int64, userID, content string) (models.Comment, error)
}

type GalleryService interface {
	SaveImage(ctx context.Context, in gallery.SaveImageInput) (models.Image, error)
	ListImages(ctx context.Context, filter models.ImageFilter) (models.ImagePage, error)
	UpdateImage(ctx context.Context, ownerID string, imageID int64, in gallery.UpdateImageInput) (models.Image, error)
	DeleteImage(ctx context.Context, ownerID string, imageID int64) error
}

type Routers struct {
	log            *slog.Logger
	FeedService    FeedService
	ShareService   ShareService
	LikeService    LikeService
	CommentService CommentService
	GalleryService GalleryService
	styles         models.StyleCatalog
	imageURL       dto.URLFunc
}

func NewRouter(
	log *slog.Logger,
	feedService FeedService,
	shareService ShareService,
	likeService LikeService,
	commentService CommentService,
	galleryService GalleryService,
	styles models.StyleCatalog,
	imageURL dto.URLFunc,
) *Routers {
	return &Routers{
		log:            log,
		FeedService:    feedService,
		ShareService:   shareService,
		LikeService:    likeService,
		CommentService: commentService,
		GalleryService: galleryService,
		styles:         styles,
		imageURL:       imageURL,
	}
}

// Health godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.OK())
}

// GetFeed godoc
// @Summary Community feed
// @Description Public posts with like and comment counts. A signed-in viewer also gets isLikedByViewer.
// @Tags community
// @Produce json
// @Param page query int false "Page number, 1-based" default(1)
// @Param limit query int false "Page size, max 100" default(12)
// @Param sortBy query string false "latest or oldest" default(latest)
// @Success 200 {object} dto.FeedResponse
// @Failure 500 {object} response.ErrorResponse "FEED_ERROR"
// @Router /api/v1/community/feed [get]
func (r *Routers) GetFeed(c echo.Context) error {
	const op = "http.routers.GetFeed"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = models.DefaultPageSize
	}

	feed, err := r.FeedService.GetFeed(c.Request().Context(), models.FeedQuery{
		ViewerID: middleware.UserID(c),
		SortBy:   models.ParseSortOrder(c.QueryParam("sortBy")),
		Page:     models.NewPage(page, limit),
	})
	if err != nil {
		log.Error("failed to load feed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.Error(response.CodeFeedError, "failed to load feed"))
	}

	return c.JSON(http.StatusOK, dto.NewFeedResponse(feed, r.imageURL))
}

// SharePost godoc
// @Summary Share an image to the community
// @Description Publishes one of the caller's private images as a post. An image can be shared once.
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ShareRequest true "Post data"
// @Success 201 {object} dto.ShareResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_INPUT or ALREADY_SHARED"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "INTERNAL_ERROR"
// @Router /api/v1/community/share [post]
func (r *Routers) SharePost(c echo.Context) error {
	const op = "http.routers.SharePost"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	var req dto.ShareRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid share request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, err.Error()))
	}

	post, err := r.ShareService.SharePost(c.Request().Context(), models.ShareInput{
		ImageID:     req.ImageID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return r.fail(c, log, err, response.CodeNotFound, response.CodeInternal)
	}

	return c.JSON(http.StatusCreated, dto.NewShareResponse(post))
}

// GetPost godoc
// @Summary Post detail
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} response.ErrorResponse "POST_NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "POST_DETAIL_ERROR"
// @Router /api/v1/post/{id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	log := r.log.With(
		slog.String("op", op),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.Error(response.CodePostNotFound, "post not found"))
	}

	item, err := r.FeedService.GetPost(c.Request().Context(), postID, middleware.UserID(c))
	if err != nil {
		return r.fail(c, log, err, response.CodePostNotFound, response.CodePostDetailError)
	}

	return c.JSON(http.StatusOK, dto.PostResponse{
		Envelope: response.OK(),
		Post:     dto.NewFeedPost(item, r.imageURL),
	})
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description Flips the caller's like and returns the new state with the total.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse "POST_NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "INTERNAL_ERROR"
// @Router /api/v1/post/{id}/like [post]
func (r *Routers) ToggleLike(c echo.Context) error {
	const op = "http.routers.ToggleLike"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.Error(response.CodePostNotFound, "post not found"))
	}

	state, err := r.LikeService.ToggleLike(c.Request().Context(), postID, userID)
	if err != nil {
		return r.fail(c, log, err, response.CodePostNotFound, response.CodeInternal)
	}

	return c.JSON(http.StatusOK, dto.NewLikeResponse(state))
}

// GetLikeStatus godoc
// @Summary Caller's like state
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 500 {object} response.ErrorResponse "INTERNAL_ERROR"
// @Router /api/v1/post/{id}/like [get]
func (r *Routers) GetLikeStatus(c echo.Context) error {
	const op = "http.routers.GetLikeStatus"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, dto.NewLikeResponse(models.LikeState{}))
	}

	state, err := r.LikeService.GetLikeStatus(c.Request().Context(), postID, userID)
	if err != nil {
		return r.fail(c, log, err, response.CodePostNotFound, response.CodeInternal)
	}

	return c.JSON(http.StatusOK, dto.NewLikeResponse(state))
}

// ListComments godoc
// @Summary Comments of a post, newest first
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.CommentsResponse
// @Failure 500 {object} response.ErrorResponse "COMMENTS_FETCH_ERROR"
// @Router /api/v1/post/{id}/comments [get]
func (r *Routers) ListComments(c echo.Context) error {
	const op = "http.routers.ListComments"

	log := r.log.With(
		slog.String("op", op),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, dto.NewCommentsResponse(nil))
	}

	comments, err := r.CommentService.ListComments(c.Request().Context(), postID)
	if err != nil {
		log.Error("failed to list comments", slog.Int64("post_id", postID), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.Error(response.CodeCommentsFetchError, "failed to load comments"))
	}

	return c.JSON(http.StatusOK, dto.NewCommentsResponse(comments))
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment text, 1 to 500 characters"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_CONTENT"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse "POST_NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "COMMENT_CREATION_ERROR"
// @Router /api/v1/post/{id}/comments [post]
func (r *Routers) CreateComment(c echo.Context) error {
	const op = "http.routers.CreateComment"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	postID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, response.Error(response.CodePostNotFound, "post not found"))
	}

	var req dto.CreateCommentRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidContent, "invalid request format"))
	}

	comment, err := r.CommentService.AddComment(c.Request().Context(), postID, userID, req.Content)
	if err != nil {
		return r.fail(c, log, err, response.CodePostNotFound, response.CodeCommentCreationError)
	}

	return c.JSON(http.StatusCreated, dto.CommentResponse{
		Envelope: response.OK(),
		Comment:  dto.NewComment(comment),
	})
}

// UploadImage godoc
// @Summary Save a generated image to the caller's gallery
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PNG, JPEG or WebP, up to 10 MiB"
// @Param prompt formData string true "Prompt the image was generated from"
// @Param artStyle formData string false "Art style key"
// @Param colorTone formData string false "Color tone key"
// @Param tags formData []string false "Tags" collectionFormat(multi)
// @Success 201 {object} dto.ImageResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_INPUT"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 500 {object} response.ErrorResponse "INTERNAL_ERROR"
// @Router /api/v1/gallery [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("file is missing", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, "file is required"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("failed to open uploaded file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.Error(response.CodeInternal, "failed to read file"))
	}
	defer file.Close()

	log.Debug("got file for upload",
		slog.String("filename", fileHeader.Filename),
		slog.Int64("size", fileHeader.Size),
		slog.String("mime_type", fileHeader.Header.Get("Content-Type")),
	)

	image, err := r.GalleryService.SaveImage(c.Request().Context(), gallery.SaveImageInput{
		OwnerID:     userID,
		Prompt:      c.FormValue("prompt"),
		ArtStyle:    c.FormValue("artStyle"),
		ColorTone:   c.FormValue("colorTone"),
		Tags:        form.Value["tags"],
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		File:        file,
	})
	if err != nil {
		return r.fail(c, log, err, response.CodeNotFound, response.CodeInternal)
	}

	return c.JSON(http.StatusCreated, dto.ImageResponse{
		Envelope: response.OK(),
		Image:    dto.NewImage(image, r.imageURL),
	})
}

// ListImages godoc
// @Summary The caller's gallery
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, 1-based" default(1)
// @Param limit query int false "Page size, max 100" default(12)
// @Param sortBy query string false "latest or oldest" default(latest)
// @Param artStyle query string false "Art style key"
// @Param colorTone query string false "Color tone key"
// @Param tag query []string false "Match any of these tags" collectionFormat(multi)
// @Param from query string false "Created on or after, YYYY-MM-DD"
// @Param to query string false "Created on or before, YYYY-MM-DD"
// @Param public query bool false "Only shared images"
// @Success 200 {object} dto.GalleryResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_INPUT"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 500 {object} response.ErrorResponse "INTERNAL_ERROR"
// @Router /api/v1/gallery [get]
func (r *Routers) ListImages(c echo.Context) error {
	const op = "http.routers.ListImages"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	var q dto.GalleryQuery

	if err := c.Bind(&q); err != nil {
		log.Warn("failed to bind query", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(q); err != nil {
		log.Warn("invalid gallery query", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, err.Error()))
	}

	filter := models.ImageFilter{
		OwnerID:    userID,
		ArtStyle:   q.ArtStyle,
		ColorTone:  q.ColorTone,
		PublicOnly: q.Public,
		Tags:       q.Tags,
		SortBy:     models.ParseSortOrder(q.SortBy),
		Page:       models.NewPage(q.Page, q.Limit),
	}
	if q.From != "" {
		from, _ := time.Parse(dateLayout, q.From)
		filter.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(dateLayout, q.To)
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	page, err := r.GalleryService.ListImages(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err, response.CodeNotFound, response.CodeInternal)
	}

	return c.JSON(http.StatusOK, dto.NewGalleryResponse(page, r.imageURL))
}

// UpdateImage godoc
// @Summary Replace the tags of an owned image
// @Description Visibility cannot be changed here; images become public only by sharing.
// @Tags gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Param request body dto.UpdateImageRequest true "New tags"
// @Success 200 {object} dto.ImageResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_INPUT"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "UPDATE_FAILED"
// @Router /api/v1/gallery/{id} [patch]
func (r *Routers) UpdateImage(c echo.Context) error {
	const op = "http.routers.UpdateImage"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	imageID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, "invalid image id"))
	}

	var req dto.UpdateImageRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid update request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, err.Error()))
	}

	image, err := r.GalleryService.UpdateImage(c.Request().Context(), userID, imageID, gallery.UpdateImageInput{
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return r.fail(c, log, err, response.CodeNotFound, response.CodeUpdateFailed)
	}

	return c.JSON(http.StatusOK, dto.ImageResponse{
		Envelope: response.OK(),
		Image:    dto.NewImage(image, r.imageURL),
	})
}

// DeleteImage godoc
// @Summary Delete an owned image
// @Description Removes the image together with its post, likes and comments.
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 500 {object} response.ErrorResponse "DELETE_FAILED"
// @Router /api/v1/gallery/{id} [delete]
func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	userID := middleware.UserID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	imageID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, "invalid image id"))
	}

	if err := r.GalleryService.DeleteImage(c.Request().Context(), userID, imageID); err != nil {
		return r.fail(c, log, err, response.CodeNotFound, response.CodeDeleteFailed)
	}

	return c.JSON(http.StatusOK, response.MessageResponse{
		Envelope: response.OK(),
		Message:  "image deleted",
	})
}

// ListStyles godoc
// @Summary Art styles and color tones offered for generation
// @Tags gallery
// @Produce json
// @Success 200 {object} dto.StylesResponse
// @Router /api/v1/styles [get]
func (r *Routers) ListStyles(c echo.Context) error {
	artStyles, colorTones := r.styles.Options()

	return c.JSON(http.StatusOK, dto.StylesResponse{
		Envelope: response.OK(),
		Styles: dto.Styles{
			ArtStyles:  artStyles,
			ColorTones: colorTones,
		},
	})
}

// fail maps a service error onto the envelope. Anything outside the domain
// taxonomy is logged and reported with internalCode.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error, notFoundCode, internalCode string) error {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.Error(notFoundCode, "not found"))
	case errors.Is(err, models.ErrForbidden):
		return c.JSON(http.StatusForbidden, response.Error(response.CodeForbidden, "not allowed"))
	case errors.Is(err, models.ErrAlreadyShared):
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeAlreadyShared, "image already shared"))
	case errors.Is(err, models.ErrInvalidContent):
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidContent, "content must be 1 to 500 characters"))
	case errors.Is(err, models.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeInvalidInput, err.Error()))
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.Error(internalCode, "internal error"))
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
