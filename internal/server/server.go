package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"teamnexus.com/collegeportal/internal/config"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/middleware"
	"teamnexus.com/collegeportal/internal/realtime"
	"teamnexus.com/collegeportal/pkg/ratelimiter"
	"teamnexus.com/collegeportal/pkg/storage"

	adminHttp "teamnexus.com/collegeportal/internal/modules/admin/delivery/http"
	adminService "teamnexus.com/collegeportal/internal/modules/admin/service"

	announcementHttp "teamnexus.com/collegeportal/internal/modules/announcement/delivery/http"
	announcementRepo "teamnexus.com/collegeportal/internal/modules/announcement/repository"
	announcementService "teamnexus.com/collegeportal/internal/modules/announcement/service"

	attendanceHttp "teamnexus.com/collegeportal/internal/modules/attendance/delivery/http"
	attendanceRepo "teamnexus.com/collegeportal/internal/modules/attendance/repository"
	attendanceService "teamnexus.com/collegeportal/internal/modules/attendance/service"

	eventHttp "teamnexus.com/collegeportal/internal/modules/event/delivery/http"
	eventRepo "teamnexus.com/collegeportal/internal/modules/event/repository"
	eventService "teamnexus.com/collegeportal/internal/modules/event/service"

	feedbackHttp "teamnexus.com/collegeportal/internal/modules/feedback/delivery/http"
	feedbackRepo "teamnexus.com/collegeportal/internal/modules/feedback/repository"
	feedbackService "teamnexus.com/collegeportal/internal/modules/feedback/service"

	likeHttp "teamnexus.com/collegeportal/internal/modules/like/delivery/http"
	likeRepo "teamnexus.com/collegeportal/internal/modules/like/repository"
	likeService "teamnexus.com/collegeportal/internal/modules/like/service"

	noteHttp "teamnexus.com/collegeportal/internal/modules/note/delivery/http"
	noteRepo "teamnexus.com/collegeportal/internal/modules/note/repository"
	noteService "teamnexus.com/collegeportal/internal/modules/note/service"

	postHttp "teamnexus.com/collegeportal/internal/modules/post/delivery/http"
	postRepo "teamnexus.com/collegeportal/internal/modules/post/repository"
	postService "teamnexus.com/collegeportal/internal/modules/post/service"

	reportHttp "teamnexus.com/collegeportal/internal/modules/report/delivery/http"
	reportRepo "teamnexus.com/collegeportal/internal/modules/report/repository"
	reportService "teamnexus.com/collegeportal/internal/modules/report/service"

	resultHttp "teamnexus.com/collegeportal/internal/modules/result/delivery/http"
	resultRepo "teamnexus.com/collegeportal/internal/modules/result/repository"
	resultService "teamnexus.com/collegeportal/internal/modules/result/service"

	searchHttp "teamnexus.com/collegeportal/internal/modules/search/delivery/http"
	searchService "teamnexus.com/collegeportal/internal/modules/search/service"

	tagHttp "teamnexus.com/collegeportal/internal/modules/tag/delivery/http"
	tagRepo "teamnexus.com/collegeportal/internal/modules/tag/repository"
	tagService "teamnexus.com/collegeportal/internal/modules/tag/service"

	timetableHttp "teamnexus.com/collegeportal/internal/modules/timetable/delivery/http"
	timetableRepo "teamnexus.com/collegeportal/internal/modules/timetable/repository"
	timetableService "teamnexus.com/collegeportal/internal/modules/timetable/service"

	userHttp "teamnexus.com/collegeportal/internal/modules/user/delivery/http"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	userService "teamnexus.com/collegeportal/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	hub         *realtime.Hub
}

// NewServer wires every module. redisClient may be nil, in which case
// posting cooldowns are disabled.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fileStorage storage.FileStorage) *Server {
	hub := realtime.NewHub()
	limiter := ratelimiter.New(redisClient)

	// Search is optional
	var meiliSvc searchService.MeiliSearchService
	var indexer searchService.Indexer
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewMeiliSearchService(meiliClient)
		indexer = meiliSvc
	} else {
		log.Println("MEILISEARCH_HOST not set, search disabled")
	}

	userRepo := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc, !cfg.IsDevelopment())

	adminSvc := adminService.NewAdminService(userRepo)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	tagRepo := tagRepo.NewTagRepository(db)
	tagSvc := tagService.NewTagService(tagRepo)
	tagHandler := tagHttp.NewTagHandler(tagSvc)

	postRepo := postRepo.NewPostRepository(db)
	likeRepo := likeRepo.NewLikeRepository(db)

	postSvc := postService.NewPostService(
		postRepo,
		likeRepo,
		tagRepo,
		fileStorage,
		limiter,
		postService.RateLimits{Post: cfg.RateLimitPost, Comment: cfg.RateLimitComment},
		hub,
		indexer,
	)
	postHandler := postHttp.NewPostHandler(postSvc)

	likeSvc := likeService.NewLikeService(likeRepo, postRepo, hub)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	reportSvc := reportService.NewReportService(reportRepo.NewReportRepository(db), hub)
	reportHandler := reportHttp.NewReportHandler(reportSvc)

	announcementSvc := announcementService.NewAnnouncementService(announcementRepo.NewAnnouncementRepository(db), fileStorage, indexer)
	announcementHandler := announcementHttp.NewAnnouncementHandler(announcementSvc)

	eventSvc := eventService.NewEventService(eventRepo.NewEventRepository(db), fileStorage)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	noteSvc := noteService.NewNoteService(noteRepo.NewNoteRepository(db), fileStorage)
	noteHandler := noteHttp.NewNoteHandler(noteSvc)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo.NewAttendanceRepository(db), userRepo)
	attendanceHandler := attendanceHttp.NewAttendanceHandler(attendanceSvc)

	timetableSvc := timetableService.NewTimetableService(timetableRepo.NewTimetableRepository(db), userRepo)
	timetableHandler := timetableHttp.NewTimetableHandler(timetableSvc)

	resultSvc := resultService.NewResultService(resultRepo.NewResultRepository(db), userRepo)
	resultHandler := resultHttp.NewResultHandler(resultSvc)

	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepo.NewFeedbackRepository(db))
	feedbackHandler := feedbackHttp.NewFeedbackHandler(feedbackSvc)

	searchHandler := searchHttp.NewSearchHandler(searchService.NewSearchService(meiliSvc))
	feedHandler := realtime.NewHandler(hub)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/ws/feed"},
	}))

	if cfg.StorageDriver == "local" {
		router.Static("/static", cfg.UploadDir)
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)
	staffOnly := authMiddleware.RequireRole(entity.RoleTeacher, entity.RoleFaculty, entity.RoleAdmin)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Protected routes
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateRole)
			adminGroup.POST("/tags", tagHandler.CreateTag)
			adminGroup.DELETE("/tags/:id", tagHandler.DeleteTag)
			adminGroup.DELETE("/posts/:id", postHandler.PurgePost)
		}

		protected.GET("/tags", tagHandler.GetAllTags)

		announcements := protected.Group("/announcements")
		{
			announcements.GET("", announcementHandler.List)
			announcements.POST("/create", announcementHandler.Create)
			announcements.GET("/:id", announcementHandler.Get)
			announcements.POST("/edit/:id", announcementHandler.Update)
			announcements.POST("/delete/:id", announcementHandler.Delete)
		}

		events := protected.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/registered", eventHandler.Registered)
			events.POST("/create", eventHandler.Create)
			events.GET("/:id", eventHandler.Get)
			events.POST("/:id/rsvp", eventHandler.RSVP)
			events.POST("/edit/:id", eventHandler.Update)
			events.POST("/delete/:id", eventHandler.Delete)
		}

		notes := protected.Group("/notes")
		{
			notes.GET("", noteHandler.List)
			notes.POST("/upload", noteHandler.Upload)
			notes.GET("/:id/download", noteHandler.Download)
			notes.POST("/delete/:id", noteHandler.Delete)
		}

		feed := protected.Group("/feed")
		{
			feed.GET("", postHandler.GetFeed)
			feed.POST("/new", postHandler.CreatePost)
			feed.GET("/post/:id", postHandler.GetPost)
			feed.POST("/post/:id", postHandler.AddComment)
			feed.POST("/like/:id", likeHandler.ToggleLike)
			feed.POST("/report", reportHandler.CreateReport)
			feed.GET("/reports", reportHandler.ListReports)
			feed.POST("/reports/:id/resolve", reportHandler.ResolveReport)
			feed.POST("/delete_post/:id", postHandler.DeletePost)
			feed.POST("/delete_comment/:id", postHandler.DeleteComment)
		}

		protected.GET("/ws/feed", feedHandler.ServeFeed)

		attendance := protected.Group("/attendance")
		{
			attendance.POST("", attendanceHandler.Mark)
			attendance.GET("/me", attendanceHandler.Mine)
			attendance.GET("/students/:id", staffOnly, attendanceHandler.ForStudent)
		}

		timetable := protected.Group("/timetable")
		{
			timetable.POST("", timetableHandler.Create)
			timetable.GET("/me", timetableHandler.Mine)
			timetable.GET("/students/:id", staffOnly, timetableHandler.ForStudent)
			timetable.DELETE("/:id", timetableHandler.Delete)
		}

		results := protected.Group("/results")
		{
			results.POST("", resultHandler.Publish)
			results.GET("/me", resultHandler.Mine)
			results.GET("/students/:id", staffOnly, resultHandler.ForStudent)
			results.DELETE("/:id", resultHandler.Delete)
		}

		feedback := protected.Group("/feedback")
		{
			feedback.POST("", feedbackHandler.Submit)
			feedback.GET("", feedbackHandler.List)
			feedback.GET("/me", feedbackHandler.Mine)
			feedback.DELETE("/:id", feedbackHandler.Delete)
		}

		protected.GET("/search", searchHandler.Search)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		hub:         hub,
	}
}

// Run serves addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
