package helpers

import (
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDataRoundTrip(t *testing.T) {
	expires := time.Date(2026, 10, 1, 12, 5, 0, 0, time.UTC)
	in := &webauthn.SessionData{
		Challenge:        "ZmFrZS1jaGFsbGVuZ2U",
		RelyingPartyID:   "checkin.example",
		UserID:           []byte("res-1"),
		UserVerification: protocol.VerificationRequired,
		Expires:          expires,
		CredParams: []protocol.CredentialParameter{
			{Type: protocol.PublicKeyCredentialType, Algorithm: webauthncose.AlgES256},
		},
	}

	data, err := EncodeSessionData(in)
	require.NoError(t, err)

	out, err := DecodeSessionData(data)
	require.NoError(t, err)
	assert.Equal(t, in.Challenge, out.Challenge)
	assert.Equal(t, in.RelyingPartyID, out.RelyingPartyID)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.UserVerification, out.UserVerification)
	assert.True(t, expires.Equal(out.Expires))
	assert.Equal(t, in.CredParams, out.CredParams)
}

func TestSessionData_DiscoverableHasNoUser(t *testing.T) {
	data, err := EncodeSessionData(&webauthn.SessionData{
		Challenge:        "ZmFrZQ",
		UserVerification: protocol.VerificationRequired,
	})
	require.NoError(t, err)

	out, err := DecodeSessionData(data)
	require.NoError(t, err)
	assert.Empty(t, out.UserID)
	assert.Empty(t, out.AllowedCredentialIDs)
	assert.True(t, out.Expires.IsZero())
}

func TestEncodeSessionData_Invalid(t *testing.T) {
	_, err := EncodeSessionData(nil)
	assert.Error(t, err)
	_, err = EncodeSessionData(&webauthn.SessionData{})
	assert.Error(t, err)

	_, err = DecodeSessionData([]byte("not json"))
	assert.Error(t, err)
}
