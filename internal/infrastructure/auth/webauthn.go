package auth

import (
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/smartcheckin/smartcheckin/internal/shared/config"
)

const defaultCeremonyTimeout = 5 * time.Minute

// WebAuthnService is the relying party for both guest ceremonies. Every
// credential it creates is a resident key with user verification, which is
// what lets login run without a username.
type WebAuthnService struct {
	rp *webauthn.WebAuthn
}

func NewWebAuthnService(cfg config.WebAuthnConfig) (*WebAuthnService, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("webauthn relying party is not configured: rp_id, rp_name and rp_origins are required")
	}

	timeout := defaultCeremonyTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Millisecond
	}
	enforced := webauthn.TimeoutConfig{Enforce: true, Timeout: timeout, TimeoutUVD: timeout}

	rp, err := webauthn.New(&webauthn.Config{
		RPID:                  cfg.RPID,
		RPDisplayName:         cfg.RPName,
		RPOrigins:             cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		Timeouts:              webauthn.TimeoutsConfig{Login: enforced, Registration: enforced},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create relying party: %w", err)
	}

	return &WebAuthnService{rp: rp}, nil
}

// BeginRegistration creates options for user. Credentials in exclude are
// listed so an authenticator that already holds one for this reservation
// refuses to make a second.
func (s *WebAuthnService) BeginRegistration(user webauthn.User, exclude [][]byte) (*protocol.CredentialCreation, *webauthn.SessionData, error) {
	descriptors := make([]protocol.CredentialDescriptor, 0, len(exclude))
	for _, id := range exclude {
		descriptors = append(descriptors, protocol.CredentialDescriptor{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: id,
		})
	}

	return s.rp.BeginRegistration(user,
		webauthn.WithExclusions(descriptors),
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			ResidentKey:        protocol.ResidentKeyRequirementRequired,
			RequireResidentKey: protocol.ResidentKeyRequired(),
			UserVerification:   protocol.VerificationRequired,
		}),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	)
}

func (s *WebAuthnService) FinishRegistration(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error) {
	return s.rp.CreateCredential(user, session, response)
}

// BeginDiscoverableLogin leaves allowCredentials empty.
func (s *WebAuthnService) BeginDiscoverableLogin() (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	return s.rp.BeginDiscoverableLogin(webauthn.WithUserVerification(protocol.VerificationRequired))
}

// FinishDiscoverableLogin verifies an assertion; handler maps the returned
// user handle to the reservation that owns the credential.
func (s *WebAuthnService) FinishDiscoverableLogin(
	handler webauthn.DiscoverableUserHandler,
	session webauthn.SessionData,
	response *protocol.ParsedCredentialAssertionData,
) (*webauthn.Credential, error) {
	return s.rp.ValidateDiscoverableLogin(handler, session, response)
}
