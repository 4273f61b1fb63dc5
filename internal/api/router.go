package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/simpleuser/user-directory/docs"
	"github.com/simpleuser/user-directory/internal/api/handler"
	"github.com/simpleuser/user-directory/internal/api/middleware"
	"github.com/simpleuser/user-directory/internal/auth/policy"
	"github.com/simpleuser/user-directory/internal/auth/token"
	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
)

// accessRules is the complete endpoint-security table, consulted by the
// authorization middleware on every request. Changing who may reach what is
// a change to this table, not to scattered handler checks.
func accessRules() []policy.Rule {
	return []policy.Rule{
		{Path: "/api/auth", Prefix: true, Access: policy.Public},

		// Exact rule first in spirit: the admin probe stays ADMIN-only even
		// though GETs under /api/users generally admit USER too.
		{Method: http.MethodGet, Path: "/api/users/admin", Access: policy.RoleRestricted, Roles: []string{domain.RoleAdmin}},
		{Method: http.MethodGet, Path: "/api/users", Prefix: true, Access: policy.RoleRestricted, Roles: []string{domain.RoleAdmin, domain.RoleUser}},
		{Path: "/api/users", Prefix: true, Access: policy.RoleRestricted, Roles: []string{domain.RoleAdmin}},

		{Path: "/health", Prefix: true, Access: policy.Public},
		{Path: "/metrics", Access: policy.Public},
		{Path: "/swagger", Prefix: true, Access: policy.Public},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
// db and rdb are only used by the readiness probe; rdb may be nil.
func NewRouter(log zerolog.Logger, authService ports.AuthService, userService ports.UserService, codec *token.Codec, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("userdir"))
	e.Use(middleware.Identity(codec))
	e.Use(middleware.Authorize(policy.New(accessRules()...)))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes (public) ---
	e.POST("/api/auth", authHandler.Login)
	e.GET("/api/auth", authHandler.Welcome)

	// --- Directory routes (gated by the policy table) ---
	e.GET("/api/users", userHandler.List)
	e.GET("/api/users/id/:id", userHandler.GetByID)
	e.GET("/api/users/email/:email", userHandler.GetByEmail)
	e.POST("/api/users", userHandler.Create)
	e.DELETE("/api/users/id/:id", userHandler.DeleteByID)
	e.DELETE("/api/users/email/:email", userHandler.DeleteByEmail)
	e.GET("/api/users/admin", userHandler.AdminPanel)

	// --- Operational endpoints ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if db != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
