// Package passkey models registered WebAuthn discoverable credentials.
package passkey

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

var (
	// ErrCredentialExists is returned by Repository.Create on a duplicate credential ID.
	ErrCredentialExists = errors.New("credential ID already registered")

	// ErrSignCountNotIncreasing signals a possibly cloned authenticator.
	ErrSignCountNotIncreasing = errors.New("signature counter did not increase")
)

// Credential binds an authenticator to a reservation.
type Credential struct {
	id              uint
	credentialID    []byte
	reservationID   string
	publicKey       []byte
	attestationType string
	aaguid          []byte
	signCount       uint32
	backupEligible  bool // WebAuthn BE flag
	backupState     bool // WebAuthn BS flag
	transports      []string
	lastUsedAt      *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewCredential creates a credential from a verified registration.
func NewCredential(reservationID string, cred *webauthn.Credential, now time.Time) (*Credential, error) {
	if reservationID == "" {
		return nil, fmt.Errorf("reservation ID is required")
	}
	if cred == nil || len(cred.ID) == 0 {
		return nil, fmt.Errorf("credential ID is required")
	}
	if len(cred.PublicKey) == 0 {
		return nil, fmt.Errorf("public key is required")
	}

	transports := make([]string, len(cred.Transport))
	for i, t := range cred.Transport {
		transports[i] = string(t)
	}

	return &Credential{
		credentialID:    cred.ID,
		reservationID:   reservationID,
		publicKey:       cred.PublicKey,
		attestationType: cred.AttestationType,
		aaguid:          cred.Authenticator.AAGUID,
		signCount:       cred.Authenticator.SignCount,
		backupEligible:  cred.Flags.BackupEligible,
		backupState:     cred.Flags.BackupState,
		transports:      transports,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructCredential rebuilds a credential from persistence.
func ReconstructCredential(
	id uint,
	credentialID []byte,
	reservationID string,
	publicKey []byte,
	attestationType string,
	aaguid []byte,
	signCount uint32,
	backupEligible bool,
	backupState bool,
	transports []string,
	lastUsedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Credential, error) {
	if len(credentialID) == 0 {
		return nil, fmt.Errorf("credential ID is required")
	}
	if reservationID == "" {
		return nil, fmt.Errorf("reservation ID is required")
	}

	return &Credential{
		id:              id,
		credentialID:    credentialID,
		reservationID:   reservationID,
		publicKey:       publicKey,
		attestationType: attestationType,
		aaguid:          aaguid,
		signCount:       signCount,
		backupEligible:  backupEligible,
		backupState:     backupState,
		transports:      transports,
		lastUsedAt:      lastUsedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (c *Credential) ID() uint                { return c.id }
func (c *Credential) CredentialID() []byte    { return c.credentialID }
func (c *Credential) ReservationID() string   { return c.reservationID }
func (c *Credential) PublicKey() []byte       { return c.publicKey }
func (c *Credential) AttestationType() string { return c.attestationType }
func (c *Credential) AAGUID() []byte          { return c.aaguid }
func (c *Credential) SignCount() uint32       { return c.signCount }
func (c *Credential) BackupEligible() bool    { return c.backupEligible }
func (c *Credential) BackupState() bool       { return c.backupState }
func (c *Credential) Transports() []string    { return c.transports }
func (c *Credential) LastUsedAt() *time.Time  { return c.lastUsedAt }
func (c *Credential) CreatedAt() time.Time    { return c.createdAt }
func (c *Credential) UpdatedAt() time.Time    { return c.updatedAt }

// SetID sets the storage ID (only for persistence layer use)
func (c *Credential) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("credential storage ID is already set")
	}
	c.id = id
	return nil
}

// CheckSignCount validates a counter reported by an assertion against the
// stored value. The new value must be strictly greater. Authenticators that
// do not implement counters report zero forever; that pair is accepted unless
// strict is set.
func (c *Credential) CheckSignCount(newCount uint32, strict bool) error {
	if c.signCount == 0 && newCount == 0 && !strict {
		return nil
	}
	if newCount <= c.signCount {
		return fmt.Errorf("%w: got %d, stored %d", ErrSignCountNotIncreasing, newCount, c.signCount)
	}
	return nil
}

// RecordAuthentication applies a verified assertion to the credential.
func (c *Credential) RecordAuthentication(newCount uint32, backupState bool, now time.Time) {
	c.signCount = newCount
	c.backupState = backupState
	c.lastUsedAt = &now
	c.updatedAt = now
}

// ToWebAuthnCredential converts to the library type used during assertion
// verification.
func (c *Credential) ToWebAuthnCredential() webauthn.Credential {
	transports := make([]protocol.AuthenticatorTransport, len(c.transports))
	for i, t := range c.transports {
		transports[i] = protocol.AuthenticatorTransport(t)
	}

	return webauthn.Credential{
		ID:              c.credentialID,
		PublicKey:       c.publicKey,
		AttestationType: c.attestationType,
		Transport:       transports,
		Flags: webauthn.CredentialFlags{
			UserPresent:    true,
			UserVerified:   true,
			BackupEligible: c.backupEligible,
			BackupState:    c.backupState,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:    c.aaguid,
			SignCount: c.signCount,
		},
	}
}
