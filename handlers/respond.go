package handlers

import (
	"quizadmin/apperr"
	"quizadmin/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a classified error to its status code. Server-side
// failures are logged with the full cause; the wire only carries the
// classified message.
func respondError(c *gin.Context, err error) {
	status := apperr.KindOf(err).Status()
	if status >= 500 {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
