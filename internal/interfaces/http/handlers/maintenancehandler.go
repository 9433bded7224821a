package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

type MaintenanceHandler struct {
	sweepChallengesUC sweepChallengesUseCase
	logger            logger.Interface
}

func NewMaintenanceHandler(sweepChallengesUC sweepChallengesUseCase, logger logger.Interface) *MaintenanceHandler {
	return &MaintenanceHandler{
		sweepChallengesUC: sweepChallengesUC,
		logger:            logger,
	}
}

type CleanupChallengesResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Timestamp    string `json:"timestamp"`
}

// CleanupChallenges deletes expired ceremony challenges
// @Summary Sweep expired challenges
// @Description Deletes expired WebAuthn challenges. Intended for an external cron trigger.
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CleanupChallengesResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/cron/cleanup-challenges [get]
func (h *MaintenanceHandler) CleanupChallenges(c *gin.Context) {
	deleted, err := h.sweepChallengesUC.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to sweep expired challenges", err)
		return
	}

	c.JSON(http.StatusOK, CleanupChallengesResponse{
		Success:      true,
		DeletedCount: deleted,
		Timestamp:    biztime.NowUTC().Format(time.RFC3339),
	})
}
