package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	r, err := NewReservation("res-1", ReconstructSecretCode("A1B-2C3-D4E"), "4821", time.Now().UTC())
	require.NoError(t, err)
	return r
}

func TestNewReservation_Validation(t *testing.T) {
	now := time.Now().UTC()
	code := ReconstructSecretCode("A1B-2C3-D4E")

	_, err := NewReservation("", code, "1234", now)
	assert.Error(t, err)
	_, err = NewReservation("r", SecretCode{}, "1234", now)
	assert.Error(t, err)
	_, err = NewReservation("r", code, "", now)
	assert.Error(t, err)
	_, err = NewReservation("r", code, "123456789012345678901234567890123", now)
	assert.Error(t, err)
}

func TestReservation_CheckinState(t *testing.T) {
	r := newTestReservation(t)

	assert.Equal(t, StateAwaitingBiometric, r.CheckinState(false))
	assert.Equal(t, StateAwaitingSecret, r.CheckinState(true))

	// checked in is terminal, but only visible past the passkey step
	require.NoError(t, r.MarkCheckedIn(time.Now().UTC()))
	assert.Equal(t, StateAwaitingBiometric, r.CheckinState(false))
	assert.Equal(t, StateCheckedIn, r.CheckinState(true))
}

func TestReservation_MarkCheckedInOnce(t *testing.T) {
	r := newTestReservation(t)
	at := time.Date(2026, 10, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, r.MarkCheckedIn(at))
	assert.True(t, r.IsCheckedIn())
	require.NotNil(t, r.CheckedInAt())
	assert.Equal(t, at, *r.CheckedInAt())

	assert.ErrorIs(t, r.MarkCheckedIn(at.Add(time.Hour)), ErrAlreadyCheckedIn)
	assert.Equal(t, at, *r.CheckedInAt())
}

func TestReservation_UpdateGuestProfile(t *testing.T) {
	r := newTestReservation(t)
	profile := GuestProfile{Name: "Sato Hanako", Address: "Kyoto", Contact: "+81 90 0000 0000"}

	assert.Error(t, r.UpdateGuestProfile(GuestProfile{Name: "only name"}, time.Now()))
	require.NoError(t, r.UpdateGuestProfile(profile, time.Now()))
	assert.Equal(t, profile, r.Profile())

	require.NoError(t, r.MarkCheckedIn(time.Now()))
	assert.ErrorIs(t, r.UpdateGuestProfile(profile, time.Now()), ErrAlreadyCheckedIn)
}

func TestReservation_VerifySecret(t *testing.T) {
	r := newTestReservation(t)

	ok, err := ParseSecretCode("a1b-2c3-d4e")
	require.NoError(t, err)
	assert.True(t, r.VerifySecret(ok))

	bad, err := ParseSecretCode("A1B-2C3-D4X")
	require.NoError(t, err)
	assert.False(t, r.VerifySecret(bad))
}

func TestReservation_WebAuthnUserHandle(t *testing.T) {
	r := newTestReservation(t)
	assert.Equal(t, []byte("res-1"), r.WebAuthnUserHandle())
}
