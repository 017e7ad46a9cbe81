package router

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Cynto/watchy-backend/internal/config"
	"github.com/Cynto/watchy-backend/internal/handler"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/service"
)

// signedInRank is the minimum privilege tier allowed through the session
// guard. Rank 1 accounts are restricted until their email is verified.
const signedInRank = 2

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	authService service.AuthService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/add", userHandler.Add)
	api.POST("/users/login", authHandler.Login)
	api.GET("/users/all", userHandler.GetAll)
	api.GET("/auth/logout", authHandler.Logout)

	// Secured routes: echo-jwt validates signature and expiry, the session
	// guard re-resolves the principal and enforces the rank gate.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + cfg.SessionCookieName,
		}),
		sessionGuard(authService, cfg.SessionCookieName),
	)

	secured.GET("/me", func(c echo.Context) error {
		principal, ok := c.Get("sessionUser").(model.Principal)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
		}
		return c.JSON(http.StatusOK, echo.Map{"user": principal})
	})

	secured.PUT("/users/update", userHandler.Update)
	secured.DELETE("/users/delete/:id", userHandler.Delete)
}

// sessionGuard resolves the bearer token to a principal, confirming the
// account still persists, and rejects ranks below the signed-in tier.
func sessionGuard(authService service.AuthService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c, cookieName)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "session token not present")
			}

			principal, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if principal.Rank < signedInRank {
				return echo.NewHTTPError(http.StatusForbidden, "account not verified")
			}

			c.Set("sessionUser", principal)
			return next(c)
		}
	}
}

// sessionToken extracts the JWT from the Authorization header or, failing
// that, the session cookie.
func sessionToken(c echo.Context, cookieName string) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
