package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"

	httpapp "artfeed/internal/app/http"
	"artfeed/internal/clients/identity"
	"artfeed/internal/config"
	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/repository"
	"artfeed/internal/storage/blobstorage"
	"artfeed/internal/storage/postgresql"
	redisapp "artfeed/internal/storage/redis"
	httprouters "artfeed/internal/transport/http"

	comment "artfeed/internal/services/comment_service"
	feed "artfeed/internal/services/feed_service"
	gallery "artfeed/internal/services/gallery_service"
	like "artfeed/internal/services/like_service"
	profile "artfeed/internal/services/profile_service"
	share "artfeed/internal/services/share_service"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisClient, err := redisapp.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blobs, uploadsDir, err := newBlobStorage(ctx, cfg.Storage)
	if err != nil {
		storage.Stop()
		_ = redisClient.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool(), redisClient)
	styles := models.DefaultStyleCatalog()

	profileService := profile.NewProfileService(
		log,
		cache.New(cfg.ProfileCache.LocalTTL, cfg.ProfileCache.CleanupInterval),
		repo.Profile,
		identity.New(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout),
		cfg.ProfileCache.SharedTTL,
	)

	routers := httprouters.NewRouter(
		log,
		feed.NewFeedService(log, repo.Post, profileService),
		share.NewShareService(log, repo.Post),
		like.NewLikeService(log, repo.Post, repo.Like),
		comment.NewCommentService(log, repo.Post, repo.Comment, profileService),
		gallery.NewGalleryService(log, repo.Image, blobs, styles),
		styles,
		blobs.URL,
	)

	server := httpapp.New(log, httpapp.Options{
		Host:       cfg.HTTP.Host,
		Port:       cfg.HTTP.Port,
		BodyLimit:  cfg.HTTP.BodyLimit,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		UploadsDir: uploadsDir,
	}, routers)

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
	}, nil
}

// Stop shuts the HTTP server down first so no request outlives the pools.
func (a *App) Stop() {
	const op = "app.Stop"
	log := a.log.With(slog.String("op", op))

	if err := a.HTTPServer.Stop(); err != nil {
		log.Error("failed to stop http server", sl.Err(err))
	}

	if err := a.redis.Close(); err != nil {
		log.Error("failed to close redis", sl.Err(err))
	}

	a.storage.Stop()
}

func newBlobStorage(ctx context.Context, cfg config.StorageConfig) (blobstorage.BlobStorage, string, error) {
	if cfg.Driver == config.StorageMinio {
		blobs, err := blobstorage.NewMinioStorage(ctx, blobstorage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.PublicURL,
		})
		return blobs, "", err
	}

	blobs, err := blobstorage.NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
	if err != nil {
		return nil, "", err
	}
	return blobs, cfg.LocalDir, nil
}
