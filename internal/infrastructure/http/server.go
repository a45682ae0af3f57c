package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	handlers "github.com/flexdb/flexdb-server/internal/adapter/handler/http"
	"github.com/flexdb/flexdb-server/internal/cache"
	"github.com/flexdb/flexdb-server/internal/config"
	domainErrors "github.com/flexdb/flexdb-server/internal/domain/errors"
	"github.com/flexdb/flexdb-server/internal/infrastructure/database"
	"github.com/flexdb/flexdb-server/internal/middleware/auth"
	"github.com/flexdb/flexdb-server/internal/usecase"
	"github.com/flexdb/flexdb-server/pkg/logger"
)

type Server struct {
	config      *config.Config
	logger      *zap.Logger
	echo        *echo.Echo
	repos       *database.Repositories
	cacheClient *redis.Client
}

// CustomValidator adapts go-playground/validator to Echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, cacheClient *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:      cfg,
		logger:      log,
		echo:        e,
		repos:       repos,
		cacheClient: cacheClient,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "flexdb",
		})
	})

	// Services
	schemaCache := cache.NewSchemaCache(s.cacheClient, s.logger)
	schemaService := usecase.NewSchemaService(s.repos.Field, s.repos.Customer, schemaCache, s.logger)
	recordService := usecase.NewRecordService(s.repos.Customer, s.repos.Field, s.logger)
	accessService := usecase.NewAccessService(s.config.Service.AdminEmail, s.repos.AllowedEmail, s.logger)

	// Handlers
	fieldHandler := handlers.NewFieldHandler(schemaService, s.logger)
	customerHandler := handlers.NewCustomerHandler(recordService, s.logger)
	emailHandler := handlers.NewEmailHandler(accessService, s.logger)

	// Identity assertion middleware for mutating routes
	identity := auth.JWTMiddleware(auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
	})
	allowed := s.requireAllowed(accessService)
	admin := s.requireAdmin(accessService)

	// Field registry (reads public, mutations gated)
	s.echo.GET("/fields", fieldHandler.ListFields)
	s.echo.POST("/fields", fieldHandler.CreateField, identity, allowed)
	s.echo.PUT("/fields", fieldHandler.UpdateField, identity, allowed)
	s.echo.DELETE("/fields", fieldHandler.DeleteField, identity, allowed)
	s.echo.POST("/fields/reorder", fieldHandler.ReorderFields, identity, allowed)

	// Customer records
	s.echo.GET("/customers", customerHandler.ListCustomers)
	s.echo.POST("/customers", customerHandler.CreateCustomer, identity, allowed)
	s.echo.PUT("/customers", customerHandler.UpdateCustomer, identity, allowed)
	s.echo.DELETE("/customers", customerHandler.DeleteCustomer, identity, allowed)

	// Allow-list (mutations restricted to the administrator)
	s.echo.GET("/emails", emailHandler.ListEmails)
	s.echo.POST("/emails", emailHandler.AddEmail, identity, admin)
	s.echo.DELETE("/emails", emailHandler.RemoveEmail, identity, admin)
}

// requireAllowed gates a route on allow-list membership.
func (s *Server) requireAllowed(access *usecase.AccessService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.GetUserFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			if err := access.Authorize(c.Request().Context(), user.Email); err != nil {
				if errors.Is(err, domainErrors.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
				}
				s.logger.Error("Allow-list check failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to verify access"})
			}
			return next(c)
		}
	}
}

// requireAdmin gates a route on the administrator identity.
func (s *Server) requireAdmin(access *usecase.AccessService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.GetUserFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			if err := access.AuthorizeAdmin(c.Request().Context(), user.Email); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}
