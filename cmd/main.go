package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"elearning-app/internal/config"
	"elearning-app/internal/handler"
	"elearning-app/internal/repository"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Mongo connection failed:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	db := mongoClient.Database(cfg.MongoDB)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return rdb.Close()
	})

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	jobRepo := repository.NewJobRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	contactRepo := repository.NewContactRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	mailer := services.NewMailer(settingsRepo, cfg)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, rdb, mailer)
	orderService := services.NewOrderService(orderRepo, notificationService, rdb, cfg)
	courseService := services.NewCourseService(courseRepo, orderService, rdb)
	quizService := services.NewQuizService(quizRepo)
	jobService := services.NewJobService(jobRepo)
	userService := services.NewUserService(userRepo, jwtUtil)
	settingsService := services.NewSettingsService(settingsRepo)
	contactService := services.NewContactService(contactRepo)
	teamService := services.NewTeamService(teamRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo, orderRepo, userRepo, courseRepo, settingsService, rdb)

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	orderHandler := handler.NewOrderHandler(orderService)
	courseHandler := handler.NewCourseHandler(courseService)
	quizHandler := handler.NewQuizHandler(quizService, orderService)
	jobHandler := handler.NewJobHandler(jobService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(teamService, settingsService, contactService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Order event consumer
	go notificationService.Start(ctx)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := utils.AuthMiddleware(jwtUtil)
	adminOnly := utils.RequireRole("admin")
	staffOnly := utils.RequireRole("admin", "instructor")

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", auth, authHandler.Me)

		api.GET("/courses", courseHandler.ListPublished)
		api.GET("/courses/:id", auth, courseHandler.GetForStudent)
		api.POST("/courses", auth, staffOnly, courseHandler.Create)
		api.PUT("/courses/:id", auth, staffOnly, courseHandler.Update)
		api.DELETE("/courses/:id", auth, staffOnly, courseHandler.Delete)
		api.PATCH("/courses/:id/publish", auth, staffOnly, courseHandler.Publish)
		api.PATCH("/courses/:id/unpublish", auth, staffOnly, courseHandler.Unpublish)
		api.GET("/courses/:id/quizzes", auth, staffOnly, quizHandler.GetByCourse)

		api.GET("/quizzes/attempts/my", auth, quizHandler.GetMyAttempts)
		api.GET("/quizzes/:id", auth, quizHandler.GetForStudent)
		api.POST("/quizzes/:id/submit", auth, quizHandler.Submit)
		api.POST("/quizzes", auth, staffOnly, quizHandler.Create)
		api.PUT("/quizzes/:id", auth, staffOnly, quizHandler.Update)
		api.DELETE("/quizzes/:id", auth, staffOnly, quizHandler.Delete)

		api.POST("/orders", auth, orderHandler.Create)
		api.GET("/orders/my", auth, orderHandler.GetMy)
		api.GET("/orders/:id", auth, orderHandler.GetByID)
		api.GET("/orders", auth, adminOnly, orderHandler.List)
		api.PATCH("/orders/:id/approve", auth, adminOnly, orderHandler.Approve)
		api.PATCH("/orders/:id/reject", auth, adminOnly, orderHandler.Reject)
		api.PATCH("/orders/:id/extend", auth, adminOnly, orderHandler.ExtendByMonths)
		api.PATCH("/orders/:id/extend-days", auth, adminOnly, orderHandler.ExtendByDays)

		api.GET("/jobs", jobHandler.ListOpen)
		api.GET("/jobs/:id", jobHandler.GetByID)
		api.POST("/jobs/:id/apply", jobHandler.Apply)

		api.GET("/team", adminHandler.ListTeam)
		api.POST("/contact", adminHandler.SubmitContact)

		api.GET("/notifications", auth, notificationHandler.GetMy)
		api.PATCH("/notifications/:id/read", auth, notificationHandler.MarkAsRead)
	}

	admin := router.Group("/api/admin", auth, adminOnly)
	{
		admin.GET("/analytics/summary", analyticsHandler.Summary)

		admin.GET("/users", userHandler.List)
		admin.PATCH("/users/:id/ban", userHandler.Ban)
		admin.PATCH("/users/:id/unban", userHandler.Unban)
		admin.PATCH("/users/:id/role", userHandler.ChangeRole)

		admin.GET("/courses", courseHandler.ListAll)

		admin.POST("/jobs", jobHandler.Create)
		admin.GET("/jobs", jobHandler.ListAll)
		admin.PUT("/jobs/:id", jobHandler.Update)
		admin.DELETE("/jobs/:id", jobHandler.Delete)
		admin.PATCH("/jobs/:id/close", jobHandler.Close)
		admin.GET("/jobs/:id/applications", jobHandler.Applications)
		admin.PATCH("/applications/:id/review", jobHandler.MarkReviewed)

		admin.POST("/team", adminHandler.CreateTeamMember)
		admin.PUT("/team/:id", adminHandler.UpdateTeamMember)
		admin.DELETE("/team/:id", adminHandler.DeleteTeamMember)

		admin.GET("/settings/smtp", adminHandler.GetSMTP)
		admin.PUT("/settings/smtp", adminHandler.UpdateSMTP)
		admin.GET("/settings/commission", adminHandler.GetCommission)
		admin.PUT("/settings/commission", adminHandler.UpdateCommission)

		admin.GET("/contacts", adminHandler.ListContacts)
		admin.PATCH("/contacts/:id/read", adminHandler.MarkContactRead)
	}

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Println("E-learning service running on", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
