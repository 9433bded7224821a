// Package reservation holds the stay aggregate: guest profile, shared secret,
// door PIN and the one-way check-in flag.
package reservation

import (
	"fmt"
	"time"
)

// CheckinState is the position of a check-in session.
type CheckinState string

const (
	StateAwaitingBiometric CheckinState = "awaiting_biometric"
	StateAwaitingSecret    CheckinState = "awaiting_secret"
	StateCheckedIn         CheckinState = "checked_in"
)

const maxDoorPINLength = 32

// GuestProfile is filled in by the guest before arrival. The check-in flow
// treats it as opaque.
type GuestProfile struct {
	Name              string
	NameKana          string
	Address           string
	Contact           string
	Occupation        string
	IsForeignNational bool
	Nationality       string
	PassportNumber    string
}

// IsEmpty reports whether the guest has not submitted a profile yet.
func (p GuestProfile) IsEmpty() bool {
	return p.Name == "" && p.Address == "" && p.Contact == ""
}

type Reservation struct {
	id          string
	profile     GuestProfile
	secretCode  SecretCode
	doorPIN     string
	checkedIn   bool
	checkedInAt *time.Time
	archived    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReservation creates a reservation that nobody has checked into yet.
func NewReservation(id string, secretCode SecretCode, doorPIN string, now time.Time) (*Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("reservation ID is required")
	}
	if secretCode.IsZero() {
		return nil, fmt.Errorf("secret code is required")
	}
	if doorPIN == "" {
		return nil, fmt.Errorf("door PIN is required")
	}
	if len(doorPIN) > maxDoorPINLength {
		return nil, fmt.Errorf("door PIN cannot exceed %d characters", maxDoorPINLength)
	}

	return &Reservation{
		id:         id,
		secretCode: secretCode,
		doorPIN:    doorPIN,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructReservation rebuilds a reservation from persistence.
func ReconstructReservation(
	id string,
	profile GuestProfile,
	secretCode SecretCode,
	doorPIN string,
	checkedIn bool,
	checkedInAt *time.Time,
	archived bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		profile:     profile,
		secretCode:  secretCode,
		doorPIN:     doorPIN,
		checkedIn:   checkedIn,
		checkedInAt: checkedInAt,
		archived:    archived,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) ID() string              { return r.id }
func (r *Reservation) Profile() GuestProfile   { return r.profile }
func (r *Reservation) SecretCode() SecretCode  { return r.secretCode }
func (r *Reservation) DoorPIN() string         { return r.doorPIN }
func (r *Reservation) IsCheckedIn() bool       { return r.checkedIn }
func (r *Reservation) CheckedInAt() *time.Time { return r.checkedInAt }
func (r *Reservation) IsArchived() bool        { return r.archived }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }

// WebAuthnUserHandle is the opaque user handle stored inside the guest's
// discoverable credential.
func (r *Reservation) WebAuthnUserHandle() []byte {
	return []byte(r.id)
}

// CheckinState reports where a check-in session for this reservation stands.
// Every session starts in StateAwaitingBiometric, including on a checked-in
// reservation: its stored PIN is only released after the passkey step.
func (r *Reservation) CheckinState(biometricVerified bool) CheckinState {
	switch {
	case !biometricVerified:
		return StateAwaitingBiometric
	case r.checkedIn:
		return StateCheckedIn
	default:
		return StateAwaitingSecret
	}
}

// VerifySecret compares the supplied code with the stored one.
func (r *Reservation) VerifySecret(supplied SecretCode) bool {
	return r.secretCode.Matches(supplied)
}

// MarkCheckedIn performs the one-way transition in memory. Persistence must
// use Repository.MarkCheckedIn to make it atomic.
func (r *Reservation) MarkCheckedIn(now time.Time) error {
	if r.checkedIn {
		return ErrAlreadyCheckedIn
	}
	r.checkedIn = true
	r.checkedInAt = &now
	r.updatedAt = now
	return nil
}

// UpdateGuestProfile replaces the guest profile. Closed once checked in.
func (r *Reservation) UpdateGuestProfile(profile GuestProfile, now time.Time) error {
	if r.checkedIn {
		return ErrAlreadyCheckedIn
	}
	if profile.Name == "" || profile.Address == "" || profile.Contact == "" {
		return fmt.Errorf("guest name, address and contact are required")
	}
	r.profile = profile
	r.updatedAt = now
	return nil
}
