package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
)

const (
	checkinTicketPurpose    = "checkin"
	defaultCheckinTicketTTL = 10 * time.Minute
)

var ErrInvalidCheckinTicket = errors.New("invalid check-in ticket")

// CheckinTicketClaims bind a successful passkey assertion to one reservation.
type CheckinTicketClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// CheckinTicketService signs and verifies HS256 check-in tickets.
type CheckinTicketService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCheckinTicketService(secret string, ttl time.Duration) (*CheckinTicketService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("check-in ticket secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = defaultCheckinTicketTTL
	}
	return &CheckinTicketService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    biztime.NowUTC,
	}, nil
}

// Issue returns a ticket whose subject is the reservation ID.
func (s *CheckinTicketService) Issue(reservationID string) (string, error) {
	now := s.now()
	claims := &CheckinTicketClaims{
		Purpose: checkinTicketPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   reservationID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign check-in ticket: %w", err)
	}
	return token, nil
}

// Verify checks signature, expiry, purpose and subject.
func (s *CheckinTicketService) Verify(tokenString, reservationID string) error {
	claims := &CheckinTicketClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(reservationID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCheckinTicket, err)
	}
	if !token.Valid || claims.Purpose != checkinTicketPurpose {
		return ErrInvalidCheckinTicket
	}
	return nil
}
