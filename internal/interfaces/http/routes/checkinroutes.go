package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/handlers"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/middleware"
)

// CheckinRouteConfig holds dependencies for the guest-facing routes.
type CheckinRouteConfig struct {
	PasskeyHandler     *handlers.PasskeyHandler
	CheckinHandler     *handlers.CheckinHandler
	ReservationHandler *handlers.ReservationHandler
	AdminMiddleware    *middleware.AdminAuthMiddleware
}

// SetupCheckinRoutes configures the WebAuthn ceremony, reservation and
// check-in routes under api.
func SetupCheckinRoutes(api *gin.RouterGroup, cfg *CheckinRouteConfig) {
	webauthn := api.Group("/webauthn")
	{
		webauthn.POST("/register/generate-options", cfg.PasskeyHandler.GenerateRegistrationOptions)
		webauthn.POST("/register/verify", cfg.PasskeyHandler.VerifyRegistration)
		webauthn.POST("/authenticate/generate-options", cfg.PasskeyHandler.GenerateAuthenticationOptions)
		webauthn.POST("/authenticate/verify", cfg.PasskeyHandler.VerifyAuthentication)
	}

	reservations := api.Group("/reservations")
	{
		reservations.POST("", cfg.AdminMiddleware.RequireAdmin(), cfg.ReservationHandler.CreateReservation)
		reservations.POST("/checkin", cfg.CheckinHandler.CheckIn)
		reservations.GET("/:id", cfg.ReservationHandler.GetReservation)
		reservations.PATCH("/:id", cfg.ReservationHandler.UpdateGuestProfile)
	}
}
