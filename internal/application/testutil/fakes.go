// Package testutil provides in-memory implementations of the persistence
// ports for use case tests.
package testutil

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
)

// ReservationRepo is an in-memory reservation.Repository. Stored values are
// copied on the way in and out so callers never share state with the store.
type ReservationRepo struct {
	mu    sync.Mutex
	items map[string]*reservation.Reservation

	// Err, when set, is returned by every method.
	Err error

	// TakenCodes simulates unique index collisions on Create.
	TakenCodes map[string]bool

	CreateCalls int
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{
		items:      make(map[string]*reservation.Reservation),
		TakenCodes: make(map[string]bool),
	}
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.Profile(), r.SecretCode(), r.DoorPIN(),
		r.IsCheckedIn(), r.CheckedInAt(), r.IsArchived(),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

// Put stores r directly, bypassing collision checks.
func (f *ReservationRepo) Put(r *reservation.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[r.ID()] = cloneReservation(r)
}

func (f *ReservationRepo) Create(ctx context.Context, r *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.Err != nil {
		return f.Err
	}
	code := r.SecretCode().String()
	if f.TakenCodes[code] {
		return reservation.ErrSecretCodeTaken
	}
	for _, existing := range f.items {
		if existing.SecretCode().String() == code {
			return reservation.ErrSecretCodeTaken
		}
	}
	f.items[r.ID()] = cloneReservation(r)
	return nil
}

func (f *ReservationRepo) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	r, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return cloneReservation(r), nil
}

func (f *ReservationRepo) ExistsActiveBySecretCode(ctx context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	for _, r := range f.items {
		if !r.IsArchived() && r.SecretCode().String() == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *ReservationRepo) UpdateGuestProfile(ctx context.Context, r *reservation.Reservation) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	existing, ok := f.items[r.ID()]
	if !ok || existing.IsCheckedIn() {
		return false, nil
	}
	f.items[r.ID()] = reservation.ReconstructReservation(
		existing.ID(), r.Profile(), existing.SecretCode(), existing.DoorPIN(),
		false, nil, existing.IsArchived(), existing.CreatedAt(), r.UpdatedAt(),
	)
	return true, nil
}

func (f *ReservationRepo) MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	existing, ok := f.items[id]
	if !ok || existing.IsCheckedIn() {
		return false, nil
	}
	f.items[id] = reservation.ReconstructReservation(
		existing.ID(), existing.Profile(), existing.SecretCode(), existing.DoorPIN(),
		true, &at, existing.IsArchived(), existing.CreatedAt(), at,
	)
	return true, nil
}

// PasskeyRepo is an in-memory passkey.Repository.
type PasskeyRepo struct {
	mu     sync.Mutex
	items  []*passkey.Credential
	nextID uint

	Err error
}

func NewPasskeyRepo() *PasskeyRepo {
	return &PasskeyRepo{nextID: 1}
}

func clonePasskey(c *passkey.Credential) *passkey.Credential {
	cloned, _ := passkey.ReconstructCredential(
		c.ID(), c.CredentialID(), c.ReservationID(), c.PublicKey(), c.AttestationType(),
		c.AAGUID(), c.SignCount(), c.BackupEligible(), c.BackupState(), c.Transports(),
		c.LastUsedAt(), c.CreatedAt(), c.UpdatedAt(),
	)
	return cloned
}

func (f *PasskeyRepo) Create(ctx context.Context, cred *passkey.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for _, c := range f.items {
		if bytes.Equal(c.CredentialID(), cred.CredentialID()) {
			return passkey.ErrCredentialExists
		}
	}
	if err := cred.SetID(f.nextID); err != nil {
		return err
	}
	f.nextID++
	f.items = append(f.items, clonePasskey(cred))
	return nil
}

func (f *PasskeyRepo) GetByCredentialID(ctx context.Context, credentialID []byte) (*passkey.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, c := range f.items {
		if bytes.Equal(c.CredentialID(), credentialID) {
			return clonePasskey(c), nil
		}
	}
	return nil, nil
}

func (f *PasskeyRepo) GetByReservationID(ctx context.Context, reservationID string) ([]*passkey.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	var out []*passkey.Credential
	for _, c := range f.items {
		if c.ReservationID() == reservationID {
			out = append(out, clonePasskey(c))
		}
	}
	return out, nil
}

func (f *PasskeyRepo) ExistsByCredentialID(ctx context.Context, credentialID []byte) (bool, error) {
	c, err := f.GetByCredentialID(ctx, credentialID)
	return c != nil, err
}

func (f *PasskeyRepo) UpdateSignCount(ctx context.Context, credentialID []byte, oldCount, newCount uint32, backupState bool, lastUsedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	for i, c := range f.items {
		if !bytes.Equal(c.CredentialID(), credentialID) {
			continue
		}
		if c.SignCount() != oldCount {
			return false, nil
		}
		updated := clonePasskey(c)
		updated.RecordAuthentication(newCount, backupState, lastUsedAt)
		f.items[i] = updated
		return true, nil
	}
	return false, nil
}

// Count reports the number of stored credentials.
func (f *PasskeyRepo) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// ChallengeStore is an in-memory challenge.Store driven by an adjustable clock.
type ChallengeStore struct {
	mu    sync.Mutex
	items map[string]*challenge.Challenge
	now   time.Time

	Err error
}

func NewChallengeStore(now time.Time) *ChallengeStore {
	return &ChallengeStore{
		items: make(map[string]*challenge.Challenge),
		now:   now,
	}
}

// Advance moves the store's clock forward.
func (f *ChallengeStore) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *ChallengeStore) Issue(ctx context.Context, c *challenge.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.items[c.ID()] = c
	return nil
}

func (f *ChallengeStore) Consume(ctx context.Context, id string) (*challenge.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	c, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	delete(f.items, id)
	if c.IsExpired(f.now) {
		return nil, nil
	}
	return c, nil
}

func (f *ChallengeStore) SweepExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	var n int64
	for id, c := range f.items {
		if c.IsExpired(f.now) {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored challenges.
func (f *ChallengeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
