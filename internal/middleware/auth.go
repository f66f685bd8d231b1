package middleware

import (
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	libjwt "artfeed/internal/lib/jwt"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/transport/http/dto/response"
)

const (
	tokenContextKey  = "user"
	userIDContextKey = "user_id"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject as the acting user id.
func RequireAuth(log *slog.Logger, secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		SuccessHandler: func(c echo.Context) {
			storeUserID(log, c)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Debug("rejected token", slog.String("path", c.Path()), sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.Error(response.CodeUnauthorized, "authentication required"))
		},
	})
}

// OptionalAuth resolves the acting user when a valid token is present and
// lets anonymous requests through.
func OptionalAuth(log *slog.Logger, secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             secret,
		SigningMethod:          jwt.SigningMethodHS256.Alg(),
		ContextKey:             tokenContextKey,
		ContinueOnIgnoredError: true,
		SuccessHandler: func(c echo.Context) {
			storeUserID(log, c)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// UserID returns the acting user id or "" for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}

func storeUserID(log *slog.Logger, c echo.Context) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return
	}

	id, err := libjwt.UserID(token)
	if err != nil {
		log.Debug("token without subject", sl.Err(err))
		return
	}

	c.Set(userIDContextKey, id)
}
