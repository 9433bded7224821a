package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/go-webauthn/webauthn/webauthn"
)

type credentialParameterJSON struct {
	Type      string `json:"type"`
	Algorithm int64  `json:"alg"`
}

// sessionDataJSON is the stored form of a ceremony session.
type sessionDataJSON struct {
	Challenge            string                    `json:"challenge"`
	RelyingPartyID       string                    `json:"rp_id"`
	UserID               []byte                    `json:"user_id,omitempty"`
	AllowedCredentialIDs [][]byte                  `json:"allowed_credential_ids,omitempty"`
	UserVerification     string                    `json:"user_verification"`
	Expires              int64                     `json:"expires,omitempty"` // Unix milliseconds
	CredParams           []credentialParameterJSON `json:"cred_params,omitempty"`
	Mediation            string                    `json:"mediation,omitempty"`
}

// EncodeSessionData serialises a ceremony session for the challenge store.
func EncodeSessionData(session *webauthn.SessionData) ([]byte, error) {
	if session == nil {
		return nil, errors.New("session data cannot be nil")
	}
	if session.Challenge == "" {
		return nil, errors.New("challenge cannot be empty")
	}

	var credParams []credentialParameterJSON
	for _, cp := range session.CredParams {
		credParams = append(credParams, credentialParameterJSON{
			Type:      string(cp.Type),
			Algorithm: int64(cp.Algorithm),
		})
	}

	var expires int64
	if !session.Expires.IsZero() {
		expires = session.Expires.UnixMilli()
	}

	data, err := json.Marshal(sessionDataJSON{
		Challenge:            session.Challenge,
		RelyingPartyID:       session.RelyingPartyID,
		UserID:               session.UserID,
		AllowedCredentialIDs: session.AllowedCredentialIDs,
		UserVerification:     string(session.UserVerification),
		Expires:              expires,
		CredParams:           credParams,
		Mediation:            string(session.Mediation),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return data, nil
}

// DecodeSessionData restores a session written by EncodeSessionData.
func DecodeSessionData(data []byte) (*webauthn.SessionData, error) {
	var stored sessionDataJSON
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	var credParams []protocol.CredentialParameter
	for _, cp := range stored.CredParams {
		credParams = append(credParams, protocol.CredentialParameter{
			Type:      protocol.CredentialType(cp.Type),
			Algorithm: webauthncose.COSEAlgorithmIdentifier(cp.Algorithm),
		})
	}

	session := &webauthn.SessionData{
		Challenge:            stored.Challenge,
		RelyingPartyID:       stored.RelyingPartyID,
		UserID:               stored.UserID,
		AllowedCredentialIDs: stored.AllowedCredentialIDs,
		UserVerification:     protocol.UserVerificationRequirement(stored.UserVerification),
		CredParams:           credParams,
		Mediation:            protocol.CredentialMediationRequirement(stored.Mediation),
	}
	if stored.Expires != 0 {
		session.Expires = time.UnixMilli(stored.Expires)
	}
	return session, nil
}
