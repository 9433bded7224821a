package reservation

import "errors"

var (
	// ErrSecretCodeTaken is returned by Repository.Create when the secret code
	// collides with an existing reservation.
	ErrSecretCodeTaken = errors.New("secret code already in use")

	ErrAlreadyCheckedIn = errors.New("reservation already checked in")

	ErrMalformedSecretCode = errors.New("secret code must have the form XXX-XXX-XXX")
)
