package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/auth"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// BeginAuthenticationResult carries discoverable login options. The
// allowCredentials list is always empty so the authenticator offers every
// resident credential it holds for the relying party.
type BeginAuthenticationResult struct {
	Options     *protocol.CredentialAssertion
	ChallengeID string
}

// BeginAuthenticationUseCase starts a usernameless login
type BeginAuthenticationUseCase struct {
	webAuthnService *auth.WebAuthnService
	challengeStore  challenge.Store
	challengeTTL    time.Duration
	logger          logger.Interface
	now             func() time.Time
}

func NewBeginAuthenticationUseCase(
	webAuthnService *auth.WebAuthnService,
	challengeStore challenge.Store,
	challengeTTL time.Duration,
	logger logger.Interface,
) *BeginAuthenticationUseCase {
	return &BeginAuthenticationUseCase{
		webAuthnService: webAuthnService,
		challengeStore:  challengeStore,
		challengeTTL:    challengeTTL,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *BeginAuthenticationUseCase) Execute(ctx context.Context) (*BeginAuthenticationResult, error) {
	options, sessionData, err := uc.webAuthnService.BeginDiscoverableLogin()
	if err != nil {
		uc.logger.Errorw("failed to begin discoverable login", "error", err)
		return nil, fmt.Errorf("failed to begin discoverable login: %w", err)
	}

	challengeID, err := issueChallenge(ctx, uc.challengeStore, sessionData, uc.now(), uc.challengeTTL)
	if err != nil {
		uc.logger.Errorw("failed to store authentication challenge", "error", err)
		return nil, err
	}

	uc.logger.Debugw("passkey authentication started", "challenge_id", challengeID)

	return &BeginAuthenticationResult{
		Options:     options,
		ChallengeID: challengeID,
	}, nil
}
