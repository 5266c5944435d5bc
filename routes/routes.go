package routes

import (
	"quizadmin/handlers"
	"quizadmin/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	systemHandler *handlers.SystemHandler,
	adminPass string,
) {
	// Health check endpoint
	router.GET("/health", systemHandler.Health)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")

		// Gated by its own debug flag, not the operator secret.
		admin.GET("/show-pin", systemHandler.ShowPin)

		gated := admin.Group("")
		gated.Use(middleware.AdminAuth(adminPass))
		{
			gated.POST("/quizzes", quizHandler.CreateQuiz)
			gated.GET("/quizzes", quizHandler.ListQuizzes)
			gated.POST("/questions", questionHandler.AddQuestion)
		}
	}
}
