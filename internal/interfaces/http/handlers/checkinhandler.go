package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkinUsecases "github.com/smartcheckin/smartcheckin/internal/application/checkin/usecases"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/metrics"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

type CheckinHandler struct {
	attemptCheckInUC attemptCheckInUseCase
	logger           logger.Interface
}

func NewCheckinHandler(attemptCheckInUC attemptCheckInUseCase, logger logger.Interface) *CheckinHandler {
	return &CheckinHandler{
		attemptCheckInUC: attemptCheckInUC,
		logger:           logger,
	}
}

// CheckinRequest is the second factor submitted after passkey login
type CheckinRequest struct {
	ReservationID string `json:"reservationId" binding:"required,uuid"`
	SecretCode    string `json:"secretCode" binding:"required"`
	CheckinToken  string `json:"checkinToken"`
}

type CheckinResponse struct {
	Success          bool   `json:"success"`
	DoorPIN          string `json:"doorPin"`
	AlreadyCheckedIn bool   `json:"alreadyCheckedIn"`
}

// CheckIn verifies the secret code and releases the door PIN
// @Summary Complete check-in
// @Description Verifies the secret code for a reservation and returns the door PIN. Repeating a completed check-in returns the same PIN.
// @Tags Check-in
// @Accept json
// @Produce json
// @Param request body CheckinRequest true "Check-in request"
// @Success 200 {object} CheckinResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/reservations/checkin [post]
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		err = bindError(err)
		metrics.RecordCheckin(errorOutcome(err))
		respondError(c, h.logger, "invalid check-in request", err)
		return
	}

	result, err := h.attemptCheckInUC.Execute(c.Request.Context(), checkinUsecases.AttemptCheckInCommand{
		ReservationID: req.ReservationID,
		SecretCode:    req.SecretCode,
		Ticket:        req.CheckinToken,
	})
	if err != nil {
		metrics.RecordCheckin(errorOutcome(err))
		respondError(c, h.logger, "check-in rejected", err, "reservation_id", req.ReservationID)
		return
	}

	if result.AlreadyCheckedIn {
		metrics.RecordCheckin(metrics.OutcomeAlreadyChecked)
	} else {
		metrics.RecordCheckin(metrics.OutcomeSuccess)
	}

	c.JSON(http.StatusOK, CheckinResponse{
		Success:          true,
		DoorPIN:          result.DoorPIN,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
	})
}
