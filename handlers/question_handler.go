package handlers

import (
	"net/http"

	"quizadmin/apperr"
	"quizadmin/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "invalid JSON payload"))
		return
	}

	question, choices, err := h.questionService.AddQuestion(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"question": question,
		"choices":  choices,
	})
}
