package usecases

// TicketIssuer signs the short-lived proof that a guest completed the
// biometric factor for a reservation.
type TicketIssuer interface {
	Issue(reservationID string) (string, error)
}
