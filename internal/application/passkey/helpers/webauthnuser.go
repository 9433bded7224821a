package helpers

import (
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
)

const guestLabelIDLength = 8

// WebAuthnUser adapts a reservation to the webauthn.User interface. The user
// handle is the reservation ID, so a discoverable assertion resolves straight
// back to its reservation.
type WebAuthnUser struct {
	reservation *reservation.Reservation
	credentials []*passkey.Credential
}

func NewWebAuthnUser(r *reservation.Reservation, credentials []*passkey.Credential) *WebAuthnUser {
	return &WebAuthnUser{
		reservation: r,
		credentials: credentials,
	}
}

func (w *WebAuthnUser) WebAuthnID() []byte {
	return w.reservation.WebAuthnUserHandle()
}

// WebAuthnName is shown by the authenticator's account picker.
func (w *WebAuthnUser) WebAuthnName() string {
	if name := w.reservation.Profile().Name; name != "" {
		return name
	}
	id := w.reservation.ID()
	if len(id) > guestLabelIDLength {
		id = id[:guestLabelIDLength]
	}
	return "guest-" + id
}

func (w *WebAuthnUser) WebAuthnDisplayName() string {
	return w.WebAuthnName()
}

func (w *WebAuthnUser) WebAuthnCredentials() []webauthn.Credential {
	creds := make([]webauthn.Credential, len(w.credentials))
	for i, c := range w.credentials {
		creds[i] = c.ToWebAuthnCredential()
	}
	return creds
}
