package main

import (
	"quizadmin/config"
	"quizadmin/handlers"
	"quizadmin/logger"
	"quizadmin/middleware"
	"quizadmin/models"
	"quizadmin/routes"
	"quizadmin/services"
	"quizadmin/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := config.Load()

	logger.Init(cfg.Debug)
	defer logger.Log.Sync()

	// The admin secret has no default; refuse to start without one.
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Choice{},
	)
	if err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize store and services
	st := store.NewGormStore(db)
	quizService := services.NewQuizService(st, redisClient)
	questionService := services.NewQuestionService(st)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	systemHandler := handlers.NewSystemHandler(cfg, st)

	// Setup Gin router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, quizHandler, questionHandler, systemHandler, cfg.AdminPass)

	// Start server
	logger.Log.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}
