// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"conectar_backend/internal/auth"
	"conectar_backend/internal/common"
	"conectar_backend/internal/company"
	"conectar_backend/internal/config"
	"conectar_backend/internal/jobs"
	"conectar_backend/internal/middleware"
	"conectar_backend/internal/platform/database"
	"conectar_backend/internal/shared"
	"conectar_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiVersion = "1.0"

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	inactiveUsersJob *jobs.InactiveUsersReportJob
}

// RouteInfo describes one registered route in the /api catalogue.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// NewServer migrates the schema when enabled and builds the router.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	companyHandler *company.Handler,
	inactiveUsersJob *jobs.InactiveUsersReportJob,
) (*Server, error) {
	if cfg.JWTSecretGenerated {
		logger.Warn("JWT_SECRET not set; using a random per-process secret. Tokens will not survive a restart.")
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db, logger, &user.User{}, &company.Company{}); err != nil {
			return nil, err
		}
	}

	gin.SetMode(cfg.GinMode)
	common.RegisterJSONFieldNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, apiInfo(cfg))
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Conectar API is healthy!"})
	})
	router.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":   "Conectar API",
			"version": apiVersion,
			"auth":    "Authorization: Bearer <access_token> (POST /auth/login)",
			"routes":  routeCatalogue(router),
		})
	})

	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authMW, adminRoleMW)
	companyHandler.RegisterRoutes(router, authMW, adminRoleMW)

	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	timeout := cfg.ServerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  120 * time.Second,
	}

	s := &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		inactiveUsersJob: inactiveUsersJob,
	}
	if cfg.DebugLogs {
		s.logStartupDetails()
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.inactiveUsersJob != nil {
		if err := s.inactiveUsersJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start inactive users report job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.inactiveUsersJob != nil {
		s.inactiveUsersJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

func apiInfo(cfg *config.Config) gin.H {
	testUser := gin.H{"email": cfg.SeedAdminEmail}
	if cfg.SeedAdminEmail == "" {
		testUser = gin.H{"email": nil, "hint": "run `server seed-admin` to create an admin account"}
	}
	return gin.H{
		"message":       "Conectar API - gerenciamento de usuários e empresas",
		"version":       apiVersion,
		"documentation": "/api",
		"testUser":      testUser,
		"instructions": []string{
			"POST /auth/login com email e senha para obter o access_token",
			"Envie o header Authorization: Bearer <access_token> nas rotas protegidas",
			"GET /api lista todas as rotas disponíveis",
		},
	}
}

func routeCatalogue(router *gin.Engine) []RouteInfo {
	routes := router.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, r := range routes {
		out = append(out, RouteInfo{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (s *Server) logStartupDetails() {
	for _, r := range routeCatalogue(s.router) {
		s.logger.Info("Route registered", zap.String("method", r.Method), zap.String("path", r.Path))
	}
	s.logger.Info("Usage hints",
		zap.String("catalogue", fmt.Sprintf("http://localhost:%s/api", s.cfg.ServerPort)),
		zap.String("login", "POST /auth/login, then send Authorization: Bearer <access_token>"),
		zap.Strings("corsOrigins", s.cfg.CORSOrigins),
	)
}
