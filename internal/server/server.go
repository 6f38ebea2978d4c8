package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"kitapantaups.id/api/internal/config"
	"kitapantaups.id/api/internal/middleware"
	"kitapantaups.id/api/internal/scheduler"
	"kitapantaups.id/api/pkg/storage"
	"kitapantaups.id/api/pkg/token"

	activityHttp "kitapantaups.id/api/internal/modules/activity/delivery/http"
	activityRepo "kitapantaups.id/api/internal/modules/activity/repository"
	activityService "kitapantaups.id/api/internal/modules/activity/service"

	adminHttp "kitapantaups.id/api/internal/modules/admin/delivery/http"
	adminService "kitapantaups.id/api/internal/modules/admin/service"

	aduanHttp "kitapantaups.id/api/internal/modules/aduan/delivery/http"
	aduanRepo "kitapantaups.id/api/internal/modules/aduan/repository"
	aduanService "kitapantaups.id/api/internal/modules/aduan/service"

	attachmentHttp "kitapantaups.id/api/internal/modules/attachment/delivery/http"
	attachmentRepo "kitapantaups.id/api/internal/modules/attachment/repository"
	attachmentService "kitapantaups.id/api/internal/modules/attachment/service"

	dashboardHttp "kitapantaups.id/api/internal/modules/dashboard/delivery/http"
	dashboardRepo "kitapantaups.id/api/internal/modules/dashboard/repository"
	dashboardService "kitapantaups.id/api/internal/modules/dashboard/service"

	fileHttp "kitapantaups.id/api/internal/modules/file/delivery/http"

	masterHttp "kitapantaups.id/api/internal/modules/master/delivery/http"
	masterRepo "kitapantaups.id/api/internal/modules/master/repository"
	masterService "kitapantaups.id/api/internal/modules/master/service"

	searchService "kitapantaups.id/api/internal/modules/search/service"

	settingHttp "kitapantaups.id/api/internal/modules/setting/delivery/http"
	settingRepo "kitapantaups.id/api/internal/modules/setting/repository"
	settingService "kitapantaups.id/api/internal/modules/setting/service"

	tlHttp "kitapantaups.id/api/internal/modules/tindaklanjut/delivery/http"
	tlRepo "kitapantaups.id/api/internal/modules/tindaklanjut/repository"
	tlService "kitapantaups.id/api/internal/modules/tindaklanjut/service"

	userHttp "kitapantaups.id/api/internal/modules/user/delivery/http"
	userRepo "kitapantaups.id/api/internal/modules/user/repository"
	userService "kitapantaups.id/api/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	sessionPurgeSchedule = "@every 1h"
	jobTimeout           = 30 * time.Minute
)

type Server struct {
	engine    *gin.Engine
	http      *http.Server
	scheduler *scheduler.Scheduler
}

// NewServer wires repositories, services and handlers. redisClient may be nil.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// Meilisearch is optional; without it list search falls back to ILIKE.
	var aduanIndex searchService.AduanIndex
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		aduanIndex = searchService.NewMeiliSearchService(meiliClient)
	} else {
		log.Println("⚠️ MEILISEARCH_HOST not set, complaint search uses the database only")
	}

	// Activity Module
	activityRepository := activityRepo.NewActivityRepository(db)
	activitySvc := activityService.NewActivityService(activityRepository, redisClient)
	activityHandler := activityHttp.NewActivityHandler(activitySvc, redisClient)

	// User & Auth Module
	userRepository := userRepo.NewUserRepository(db)
	sessionRepository := userRepo.NewSessionRepository(db)
	authSvc := userService.NewAuthService(userRepository, sessionRepository, tokens, fileStorage)
	authHandler := userHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(userRepository)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	// Aduan Module
	aduanRepository := aduanRepo.NewAduanRepository(db)
	aduanSvc := aduanService.NewAduanService(aduanRepository, aduanIndex, activitySvc)
	aduanHandler := aduanHttp.NewAduanHandler(aduanSvc)

	tindakLanjutRepository := tlRepo.NewTindakLanjutRepository(db)
	tindakLanjutSvc := tlService.NewTindakLanjutService(tindakLanjutRepository, aduanRepository, activitySvc)
	tindakLanjutHandler := tlHttp.NewTindakLanjutHandler(tindakLanjutSvc)

	// Attachment Module
	documentRepository := attachmentRepo.NewDocumentRepository(db)
	attachmentSvc := attachmentService.NewAttachmentService(
		documentRepository,
		aduanRepository,
		fileStorage,
		activitySvc,
		attachmentService.SweepConfig{GracePeriod: cfg.OrphanGracePeriod},
	)
	attachmentHandler := attachmentHttp.NewAttachmentHandler(attachmentSvc)
	fileHandler := fileHttp.NewFileHandler(fileStorage)

	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo.NewDashboardRepository(db))
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	masterSvc := masterService.NewMasterService(masterRepo.NewMasterRepository(db))
	masterHandler := masterHttp.NewMasterHandler(masterSvc)

	settingSvc := settingService.NewSettingService(settingRepo.NewSettingRepository(db), redisClient, activitySvc)
	settingHandler := settingHttp.NewSettingHandler(settingSvc)

	// Background jobs
	jobs := scheduler.NewScheduler(jobTimeout)
	if err := jobs.Register(scheduler.NewOrphanSweepJob(attachmentSvc, cfg.OrphanSweepSchedule)); err != nil {
		return nil, err
	}
	if err := jobs.Register(scheduler.NewSessionPurgeJob(authSvc, sessionPurgeSchedule)); err != nil {
		return nil, err
	}

	loginLimiter, err := middleware.RateLimiter(cfg.LoginRateLimit, "login", redisClient)
	if err != nil {
		return nil, err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	// FormFile parsing (profile photos) spills to temp files beyond this.
	router.MaxMultipartMemory = 1 << 20

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Skip: func(c *gin.Context) bool {
			return strings.HasPrefix(c.Request.URL.Path, storage.URLPrefix)
		},
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "KITAPANTAUPS API"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route tidak ditemukan"})
	})

	// Stored files are public; names carry a random token.
	router.GET("/uploads/*filepath", fileHandler.ServeFile)
	router.HEAD("/uploads/*filepath", fileHandler.ServeFile)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/login", loginLimiter, authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Protected routes
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.PATCH("/auth/profile", authHandler.UpdateProfile)
		protected.POST("/auth/photo", middleware.BodyLimit(cfg.MaxPhotoBytes), authHandler.UploadPhoto)

		// Admin routes
		users := protected.Group("/users")
		users.Use(authMiddleware.RequireAdmin())
		{
			users.GET("", adminHandler.GetAllUsers)
			users.POST("", adminHandler.CreateUser)
			users.PATCH("/:id", adminHandler.UpdateUser)
			users.DELETE("/:id", adminHandler.DeleteUser)
		}

		// Aduan routes
		aduan := protected.Group("/aduan")
		{
			aduan.GET("", aduanHandler.GetAll)
			aduan.GET("/provinces", aduanHandler.GetProvinces)
			aduan.POST("", aduanHandler.Create)
			aduan.GET("/:id", aduanHandler.GetByID)
			aduan.PATCH("/:id", aduanHandler.Update)
			aduan.DELETE("/:id", authMiddleware.RequireAdmin(), aduanHandler.Delete)

			attachmentHandler.RegisterRoutes(aduan, authMiddleware, cfg.MaxUploadBytes)

			aduan.GET("/:id/tindak-lanjut", tindakLanjutHandler.GetByAduan)
			aduan.POST("/:id/tindak-lanjut", tindakLanjutHandler.Create)
		}

		protected.PUT("/tindak-lanjut/:id", tindakLanjutHandler.Update)
		protected.DELETE("/tindak-lanjut/:id", tindakLanjutHandler.Delete)

		// Activity routes
		protected.GET("/activities", activityHandler.GetActivities)
		protected.POST("/activities", activityHandler.CreateActivity)
		protected.GET("/activities/ws", activityHandler.HandleWebSocket)

		protected.GET("/dashboard/stats", dashboardHandler.GetStats)

		master := protected.Group("/master")
		{
			master.GET("/status", masterHandler.GetStatuses)
			master.GET("/kategori", masterHandler.GetKategori)
			master.GET("/jenis-tl", masterHandler.GetJenisTL)
			master.GET("/kps", masterHandler.GetKPS)
		}

		jobsHandler := scheduler.NewHandler(jobs)
		adminJobs := protected.Group("/jobs")
		adminJobs.Use(authMiddleware.RequireAdmin())
		{
			adminJobs.GET("", jobsHandler.ListJobs)
			adminJobs.POST("/:name/run", jobsHandler.RunJob)
		}

		protected.GET("/settings", settingHandler.GetAll)
		protected.PUT("/settings/:key", authMiddleware.RequireAdmin(), settingHandler.Update)
	}

	return &Server{
		engine: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler: jobs,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the background jobs and blocks serving HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.scheduler.Start()
	log.Printf("🚀 Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.scheduler.Stop()
	return err
}

func setupCORS(router *gin.Engine, origins []string) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	// "*" with credentials must echo the caller's origin instead of a literal wildcard.
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = origins
	}

	router.Use(cors.New(corsCfg))
}
