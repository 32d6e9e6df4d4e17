// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"iserviceseeker_backend/internal/category"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/firebase"
	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/jobs"
	"iserviceseeker_backend/internal/middleware"
	"iserviceseeker_backend/internal/platform/elasticsearch"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server. DB, ESClient,
// AppLogger and ProviderService are exported for the startup tasks main runs
// before serving (migrations, seeding, index creation, reindex).
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	DB              *gorm.DB
	ESClient        *elasticsearch.ESClientWrapper
	AppLogger       *zap.Logger
	ProviderService provider.Service

	// Handlers
	userHandler      *user.Handler
	categoryHandler  *category.Handler
	homeownerHandler *homeowner.Handler
	providerHandler  *provider.Handler

	// Jobs
	verificationReminderJob *jobs.VerificationReminderJob

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	homeownerHandler *homeowner.Handler,
	providerHandler *provider.Handler,
	verificationReminderJob *jobs.VerificationReminderJob,
	db *gorm.DB,
	esClient *elasticsearch.ESClientWrapper,
	firebaseService *firebase.FirebaseService,
	userService shared.Service,
	providerService provider.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, userService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(shared.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "iServiceSeeker API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	userHandler.RegisterRoutes(v1, authMW)
	categoryHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	homeownerHandler.RegisterRoutes(v1, authMW)
	providerHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:              httpServer,
		router:                  router,
		cfg:                     cfg,
		logger:                  logger,
		DB:                      db,
		ESClient:                esClient,
		AppLogger:               logger,
		ProviderService:         providerService,
		userHandler:             userHandler,
		categoryHandler:         categoryHandler,
		homeownerHandler:        homeownerHandler,
		providerHandler:         providerHandler,
		verificationReminderJob: verificationReminderJob,
		authMW:                  authMW,
		adminRoleMW:             adminRoleMW,
	}, nil
}

func (s *Server) Start() error {
	if s.verificationReminderJob != nil {
		if err := s.verificationReminderJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start verification reminder job", zap.Error(err))
		}
	} else {
		s.logger.Info("Verification reminder job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.verificationReminderJob != nil {
		s.verificationReminderJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
