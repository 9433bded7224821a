package http

import (
	"context"
	"fmt"

	passkeyUsecases "github.com/smartcheckin/smartcheckin/internal/application/passkey/usecases"
	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/auth"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/cache"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/repository"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
)

// services holds infrastructure services shared by the use cases.
type services struct {
	webAuthn       *auth.WebAuthnService
	challengeStore challenge.Store
	// nil when no ticket secret is configured
	ticketService *auth.CheckinTicketService
	hasher        *auth.BcryptPasswordHasher
}

func (c *Container) initServices(ctx context.Context) error {
	webAuthn, err := auth.NewWebAuthnService(c.cfg.WebAuthn)
	if err != nil {
		return err
	}

	store, err := c.newChallengeStore(ctx)
	if err != nil {
		return err
	}

	var tickets *auth.CheckinTicketService
	if c.cfg.Checkin.TicketSecret != "" {
		tickets, err = auth.NewCheckinTicketService(c.cfg.Checkin.TicketSecret, c.cfg.Checkin.TicketTTL)
		if err != nil {
			return err
		}
	} else if c.cfg.Checkin.RequireTicket {
		return fmt.Errorf("checkin.require_ticket is set but checkin.ticket_secret is empty")
	}

	if hash := c.cfg.Admin.PasswordHash; hash != "" {
		if err := auth.CheckHash(hash); err != nil {
			return err
		}
	} else {
		c.log.Warnw("admin.password_hash is empty, reservation creation is disabled")
	}

	c.svcs = &services{
		webAuthn:       webAuthn,
		challengeStore: store,
		ticketService:  tickets,
		hasher:         auth.NewBcryptPasswordHasher(0),
	}

	c.log.Infow("services initialized",
		"rp_id", c.cfg.WebAuthn.RPID,
		"challenge_store", c.cfg.Challenge.Store,
		"require_ticket", c.cfg.Checkin.RequireTicket)
	return nil
}

func (c *Container) newChallengeStore(ctx context.Context) (challenge.Store, error) {
	switch c.cfg.Challenge.Store {
	case constants.ChallengeStoreRedis:
		client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.redis = client
		return cache.NewChallengeStore(client, c.log), nil
	case constants.ChallengeStoreDatabase, "":
		return repository.NewChallengeRepository(c.db, c.log), nil
	default:
		return nil, fmt.Errorf("unsupported challenge store: %s", c.cfg.Challenge.Store)
	}
}

// ticketIssuer keeps a nil service from becoming a non-nil interface.
func (s *services) ticketIssuer() passkeyUsecases.TicketIssuer {
	if s.ticketService == nil {
		return nil
	}
	return s.ticketService
}
