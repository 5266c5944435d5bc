package handlers

import (
	"net/http"

	"quizadmin/config"
	"quizadmin/store"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	cfg   *config.Config
	store store.Store
}

func NewSystemHandler(cfg *config.Config, st store.Store) *SystemHandler {
	return &SystemHandler{cfg: cfg, store: st}
}

// Health reports whether the secret is configured and whether the store
// answers a trivial read. Always 200; the payload is the diagnosis.
func (h *SystemHandler) Health(c *gin.Context) {
	canQuery := h.store.Ping(c.Request.Context()) == nil

	c.JSON(http.StatusOK, gin.H{
		"has_admin_pass": h.cfg.AdminPass != "",
		"can_query":      canQuery,
	})
}

// ShowPin echoes the configured secret. Debugging aid only; disabled unless
// DEBUG_ENABLE_PIN_ECHO=1.
func (h *SystemHandler) ShowPin(c *gin.Context) {
	if !h.cfg.PinEcho {
		c.JSON(http.StatusForbidden, gin.H{"error": "Disabled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"adminPass": h.cfg.AdminPass})
}
