package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	appmiddleware "artfeed/internal/middleware"
	httprouters "artfeed/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host      string
	Port      string
	BodyLimit string
	JWTSecret []byte
	// UploadsDir is served under /uploads when blobs live on local disk.
	UploadsDir string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz not registered", slog.String("error", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		opts:    opts,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("port", s.opts.Port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	requireAuth := appmiddleware.RequireAuth(s.log, s.opts.JWTSecret)
	optionalAuth := appmiddleware.OptionalAuth(s.log, s.opts.JWTSecret)

	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	if s.opts.UploadsDir != "" {
		s.e.Static("/uploads", s.opts.UploadsDir)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/styles", s.routers.ListStyles)

		community := api.Group("/community")
		{
			community.GET("/feed", s.routers.GetFeed, optionalAuth)
			community.POST("/share", s.routers.SharePost, requireAuth)
		}

		post := api.Group("/post")
		{
			post.GET("/:id", s.routers.GetPost, optionalAuth)
			post.POST("/:id/like", s.routers.ToggleLike, requireAuth)
			post.GET("/:id/like", s.routers.GetLikeStatus, requireAuth)
			post.GET("/:id/comments", s.routers.ListComments, optionalAuth)
			post.POST("/:id/comments", s.routers.CreateComment, requireAuth)
		}

		gallery := api.Group("/gallery", requireAuth)
		{
			gallery.POST("", s.routers.UploadImage)
			gallery.GET("", s.routers.ListImages)
			gallery.PATCH("/:id", s.routers.UpdateImage)
			gallery.DELETE("/:id", s.routers.DeleteImage)
		}
	}
}
