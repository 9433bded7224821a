package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	reservationUsecases "github.com/smartcheckin/smartcheckin/internal/application/reservation/usecases"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// ReservationHandler serves the admin create endpoint and the guest
// registry endpoints.
type ReservationHandler struct {
	createReservationUC  createReservationUseCase
	getReservationUC     getReservationUseCase
	updateGuestProfileUC updateGuestProfileUseCase
	logger               logger.Interface
}

func NewReservationHandler(
	createReservationUC createReservationUseCase,
	getReservationUC getReservationUseCase,
	updateGuestProfileUC updateGuestProfileUseCase,
	logger logger.Interface,
) *ReservationHandler {
	return &ReservationHandler{
		createReservationUC:  createReservationUC,
		getReservationUC:     getReservationUC,
		updateGuestProfileUC: updateGuestProfileUC,
		logger:               logger,
	}
}

// CreateReservation opens a reservation
// @Summary Create reservation
// @Description Opens a reservation with a generated secret code. The response is the only place the secret code is returned.
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body dto.CreateReservationRequest true "Door PIN"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "invalid create reservation request", bindError(err))
		return
	}

	result, err := h.createReservationUC.Execute(c.Request.Context(), reservationUsecases.CreateReservationCommand{
		DoorPIN: req.DoorPIN,
	})
	if err != nil {
		respondError(c, h.logger, "failed to create reservation", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": result})
}

// reservationURI binds the :id path segment.
type reservationURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// GetReservation returns the guest view of a reservation
// @Summary Get reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	var uri reservationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, h.logger, "invalid reservation id", bindError(err))
		return
	}

	result, err := h.getReservationUC.Execute(c.Request.Context(), reservationUsecases.GetReservationQuery{
		ReservationID: uri.ID,
	})
	if err != nil {
		respondError(c, h.logger, "failed to get reservation", err, "reservation_id", uri.ID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": result})
}

// UpdateGuestProfile fills in the guest registry entry
// @Summary Update guest profile
// @Description Stores the guest registry fields. Rejected once the reservation is checked in.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.GuestProfileRequest true "Guest profile"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/reservations/{id} [patch]
func (h *ReservationHandler) UpdateGuestProfile(c *gin.Context) {
	var uri reservationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, h.logger, "invalid reservation id", bindError(err))
		return
	}

	var req dto.GuestProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "invalid guest profile request", bindError(err))
		return
	}

	result, err := h.updateGuestProfileUC.Execute(c.Request.Context(), reservationUsecases.UpdateGuestProfileCommand{
		ReservationID: uri.ID,
		Profile:       req,
	})
	if err != nil {
		respondError(c, h.logger, "failed to update guest profile", err, "reservation_id", uri.ID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": result})
}
