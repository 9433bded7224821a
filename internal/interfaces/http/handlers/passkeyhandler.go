package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	passkeyUsecases "github.com/smartcheckin/smartcheckin/internal/application/passkey/usecases"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/metrics"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// PasskeyHandler serves the registration and usernameless login ceremonies.
type PasskeyHandler struct {
	beginRegistrationUC      beginRegistrationUseCase
	completeRegistrationUC   completeRegistrationUseCase
	beginAuthenticationUC    beginAuthenticationUseCase
	completeAuthenticationUC completeAuthenticationUseCase
	logger                   logger.Interface
}

// NewPasskeyHandler creates a new PasskeyHandler
func NewPasskeyHandler(
	beginRegistrationUC beginRegistrationUseCase,
	completeRegistrationUC completeRegistrationUseCase,
	beginAuthenticationUC beginAuthenticationUseCase,
	completeAuthenticationUC completeAuthenticationUseCase,
	logger logger.Interface,
) *PasskeyHandler {
	return &PasskeyHandler{
		beginRegistrationUC:      beginRegistrationUC,
		completeRegistrationUC:   completeRegistrationUC,
		beginAuthenticationUC:    beginAuthenticationUC,
		completeAuthenticationUC: completeAuthenticationUC,
		logger:                   logger,
	}
}

// RegistrationOptionsRequest is the request body for starting registration
type RegistrationOptionsRequest struct {
	ReservationID string `json:"reservationId" binding:"required,uuid"`
}

// CeremonyOptionsResponse carries the options for navigator.credentials and
// the handle the client echoes back on verify.
type CeremonyOptionsResponse struct {
	Options     interface{} `json:"options"`
	ChallengeID string      `json:"challengeId"`
}

// VerifyRegistrationRequest carries the browser's PublicKeyCredential JSON
type VerifyRegistrationRequest struct {
	ChallengeID   string          `json:"challengeId" binding:"required"`
	ReservationID string          `json:"reservationId" binding:"required,uuid"`
	Credential    json.RawMessage `json:"credential" binding:"required"`
}

type VerifyRegistrationResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// VerifyAuthenticationRequest carries the browser's assertion JSON
type VerifyAuthenticationRequest struct {
	ChallengeID string          `json:"challengeId" binding:"required"`
	Credential  json.RawMessage `json:"credential" binding:"required"`
}

type VerifyAuthenticationResponse struct {
	Verified      bool   `json:"verified"`
	ReservationID string `json:"reservationId"`
	CheckinToken  string `json:"checkinToken,omitempty"`
}

// GenerateRegistrationOptions starts the registration ceremony
// @Summary Start passkey registration
// @Description Creates credential creation options bound to the reservation. Resident key and user verification are required.
// @Tags WebAuthn
// @Accept json
// @Produce json
// @Param request body RegistrationOptionsRequest true "Reservation to bind"
// @Success 200 {object} CeremonyOptionsResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/webauthn/register/generate-options [post]
func (h *PasskeyHandler) GenerateRegistrationOptions(c *gin.Context) {
	var req RegistrationOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, metrics.CeremonyRegistrationBegin, "invalid registration options request", bindError(err))
		return
	}

	result, err := h.beginRegistrationUC.Execute(c.Request.Context(), passkeyUsecases.BeginRegistrationCommand{
		ReservationID: req.ReservationID,
	})
	if err != nil {
		h.fail(c, metrics.CeremonyRegistrationBegin, "failed to generate registration options", err,
			"reservation_id", req.ReservationID)
		return
	}

	metrics.RecordCeremony(metrics.CeremonyRegistrationBegin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, CeremonyOptionsResponse{
		Options:     result.Options.Response,
		ChallengeID: result.ChallengeID,
	})
}

// VerifyRegistration completes the registration ceremony
// @Summary Finish passkey registration
// @Description Verifies the attestation response and stores the credential against the reservation
// @Tags WebAuthn
// @Accept json
// @Produce json
// @Param request body VerifyRegistrationRequest true "Attestation response"
// @Success 200 {object} VerifyRegistrationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/webauthn/register/verify [post]
func (h *PasskeyHandler) VerifyRegistration(c *gin.Context) {
	var req VerifyRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, metrics.CeremonyRegistrationComplete, "invalid registration verify request", bindError(err))
		return
	}

	_, err := h.completeRegistrationUC.Execute(c.Request.Context(), passkeyUsecases.CompleteRegistrationCommand{
		ChallengeID:   req.ChallengeID,
		ReservationID: req.ReservationID,
		Response:      req.Credential,
	})
	if err != nil {
		h.fail(c, metrics.CeremonyRegistrationComplete, "failed to verify registration", err,
			"reservation_id", req.ReservationID)
		return
	}

	metrics.RecordCeremony(metrics.CeremonyRegistrationComplete, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, VerifyRegistrationResponse{
		Verified: true,
		Message:  "Passkey registered",
	})
}

// GenerateAuthenticationOptions starts a usernameless login
// @Summary Start passkey login
// @Description Creates assertion options with an empty allow list so the authenticator offers its resident credentials
// @Tags WebAuthn
// @Produce json
// @Success 200 {object} CeremonyOptionsResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/webauthn/authenticate/generate-options [post]
func (h *PasskeyHandler) GenerateAuthenticationOptions(c *gin.Context) {
	result, err := h.beginAuthenticationUC.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, metrics.CeremonyLoginBegin, "failed to generate authentication options", err)
		return
	}

	metrics.RecordCeremony(metrics.CeremonyLoginBegin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, CeremonyOptionsResponse{
		Options:     result.Options.Response,
		ChallengeID: result.ChallengeID,
	})
}

// VerifyAuthentication completes a usernameless login
// @Summary Finish passkey login
// @Description Verifies the assertion, resolves the reservation from the credential and issues a check-in ticket
// @Tags WebAuthn
// @Accept json
// @Produce json
// @Param request body VerifyAuthenticationRequest true "Assertion response"
// @Success 200 {object} VerifyAuthenticationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/webauthn/authenticate/verify [post]
func (h *PasskeyHandler) VerifyAuthentication(c *gin.Context) {
	var req VerifyAuthenticationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, metrics.CeremonyLoginComplete, "invalid authentication verify request", bindError(err))
		return
	}

	result, err := h.completeAuthenticationUC.Execute(c.Request.Context(), passkeyUsecases.CompleteAuthenticationCommand{
		ChallengeID: req.ChallengeID,
		Response:    req.Credential,
	})
	if err != nil {
		h.fail(c, metrics.CeremonyLoginComplete, "failed to verify authentication", err)
		return
	}

	metrics.RecordCeremony(metrics.CeremonyLoginComplete, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, VerifyAuthenticationResponse{
		Verified:      true,
		ReservationID: result.ReservationID,
		CheckinToken:  result.CheckinTicket,
	})
}

func (h *PasskeyHandler) fail(c *gin.Context, ceremony, msg string, err error, keysAndValues ...interface{}) {
	metrics.RecordCeremony(ceremony, errorOutcome(err))
	respondError(c, h.logger, msg, err, keysAndValues...)
}
