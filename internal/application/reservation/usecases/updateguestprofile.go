package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// UpdateGuestProfileCommand represents the command to fill in the guest registry
type UpdateGuestProfileCommand struct {
	ReservationID string
	Profile       dto.GuestProfileRequest
}

// UpdateGuestProfileUseCase stores the guest registry entry before check-in.
type UpdateGuestProfileUseCase struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
	policy          *bluemonday.Policy
	logger          logger.Interface
	now             func() time.Time
}

func NewUpdateGuestProfileUseCase(
	reservationRepo reservation.Repository,
	passkeyRepo passkey.Repository,
	logger logger.Interface,
) *UpdateGuestProfileUseCase {
	return &UpdateGuestProfileUseCase{
		reservationRepo: reservationRepo,
		passkeyRepo:     passkeyRepo,
		policy:          bluemonday.StrictPolicy(),
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *UpdateGuestProfileUseCase) Execute(ctx context.Context, cmd UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error) {
	if cmd.ReservationID == "" {
		return nil, errors.NewValidationError("reservation id is required")
	}

	req := uc.sanitize(cmd.Profile)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	res, err := uc.reservationRepo.GetByID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, errors.NewReservationNotFoundError()
	}

	profile := reservation.GuestProfile{
		Name:              req.Name,
		NameKana:          req.NameKana,
		Address:           req.Address,
		Contact:           req.Contact,
		Occupation:        req.Occupation,
		IsForeignNational: req.IsForeignNational,
		Nationality:       req.Nationality,
		PassportNumber:    req.PassportNumber,
	}
	if err := res.UpdateGuestProfile(profile, uc.now()); err != nil {
		if stderrors.Is(err, reservation.ErrAlreadyCheckedIn) {
			return nil, errors.NewConflictError("Guest profile cannot be changed after check-in")
		}
		return nil, errors.NewValidationError(err.Error())
	}

	updated, err := uc.reservationRepo.UpdateGuestProfile(ctx, res)
	if err != nil {
		uc.logger.Errorw("failed to update guest profile", "reservation_id", res.ID(), "error", err)
		return nil, fmt.Errorf("failed to update guest profile: %w", err)
	}
	if !updated {
		uc.logger.Warnw("guest profile update raced with check-in", "reservation_id", res.ID())
		return nil, errors.NewConflictError("Guest profile cannot be changed after check-in")
	}

	uc.logger.Infow("guest profile updated", "reservation_id", res.ID())

	creds, err := uc.passkeyRepo.GetByReservationID(ctx, res.ID())
	if err != nil {
		uc.logger.Errorw("failed to get passkeys", "reservation_id", res.ID(), "error", err)
		return nil, fmt.Errorf("failed to get passkeys: %w", err)
	}

	return dto.ToGuestReservationResponse(res, len(creds) > 0), nil
}

// sanitize strips markup and surrounding whitespace from every text field.
// The policy entity-escapes the text it keeps; fields are stored as plain
// text, so the escaping is undone.
func (uc *UpdateGuestProfileUseCase) sanitize(in dto.GuestProfileRequest) dto.GuestProfileRequest {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(uc.policy.Sanitize(s)))
	}
	out := in
	out.Name = clean(in.Name)
	out.NameKana = clean(in.NameKana)
	out.Address = clean(in.Address)
	out.Contact = clean(in.Contact)
	out.Occupation = clean(in.Occupation)
	out.Nationality = clean(in.Nationality)
	out.PassportNumber = clean(in.PassportNumber)
	return out
}
