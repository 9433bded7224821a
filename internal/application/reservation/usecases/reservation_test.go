package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	"github.com/smartcheckin/smartcheckin/internal/application/testutil"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

var fixedNow = time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

func errType(err error) errors.ErrorType {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Type
	}
	return ""
}

// sequence returns the given codes in order, then keeps repeating the last one.
func sequence(codes ...string) func() (reservation.SecretCode, error) {
	i := 0
	return func() (reservation.SecretCode, error) {
		code := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return reservation.ReconstructSecretCode(code), nil
	}
}

func newCreateUseCase(repo reservation.Repository, codes func() (reservation.SecretCode, error)) *CreateReservationUseCase {
	uc := NewCreateReservationUseCase(repo, logger.NewNop())
	uc.generateCode = codes
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func seed(t *testing.T, repo *testutil.ReservationRepo, id, code string) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(id, reservation.ReconstructSecretCode(code), "4821", fixedNow)
	require.NoError(t, err)
	repo.Put(r)
	return r
}

func TestCreateReservation_Success(t *testing.T) {
	repo := testutil.NewReservationRepo()
	uc := NewCreateReservationUseCase(repo, logger.NewNop())

	result, err := uc.Execute(context.Background(), CreateReservationCommand{DoorPIN: "4821"})
	require.NoError(t, err)

	assert.Len(t, result.ID, 36)
	assert.Regexp(t, `^[2-9A-HJ-NP-Z]{3}-[2-9A-HJ-NP-Z]{3}-[2-9A-HJ-NP-Z]{3}$`, result.SecretCode)
	assert.Equal(t, "4821", result.DoorPIN)
	assert.False(t, result.IsCheckedIn)

	stored, err := repo.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.SecretCode, stored.SecretCode().String())
}

func TestCreateReservation_Validation(t *testing.T) {
	repo := testutil.NewReservationRepo()
	uc := NewCreateReservationUseCase(repo, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateReservationCommand{})
	assert.Equal(t, errors.ErrorTypeValidation, errType(err))

	_, err = uc.Execute(context.Background(), CreateReservationCommand{DoorPIN: "123456789012345678901234567890123"})
	assert.Equal(t, errors.ErrorTypeValidation, errType(err))
	assert.Equal(t, 0, repo.CreateCalls)
}

func TestCreateReservation_RetriesOnCollision(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "existing", "AAA-AAA-AAA")
	repo.TakenCodes["BBB-BBB-BBB"] = true

	uc := newCreateUseCase(repo, sequence("AAA-AAA-AAA", "BBB-BBB-BBB", "CCC-CCC-CCC"))

	result, err := uc.Execute(context.Background(), CreateReservationCommand{DoorPIN: "4821"})
	require.NoError(t, err)
	assert.Equal(t, "CCC-CCC-CCC", result.SecretCode)
	// the pre-check skips AAA without an insert; BBB fails on insert
	assert.Equal(t, 2, repo.CreateCalls)
}

func TestCreateReservation_GivesUpAfterFiveAttempts(t *testing.T) {
	repo := testutil.NewReservationRepo()
	repo.TakenCodes["AAA-AAA-AAA"] = true

	uc := newCreateUseCase(repo, sequence("AAA-AAA-AAA"))

	_, err := uc.Execute(context.Background(), CreateReservationCommand{DoorPIN: "4821"})
	assert.Equal(t, errors.ErrorTypeInternal, errType(err))
	assert.Equal(t, maxSecretCodeAttempts, repo.CreateCalls)
}

func TestCreateReservation_RepositoryFailure(t *testing.T) {
	repo := testutil.NewReservationRepo()
	repo.Err = stderrors.New("database error")

	_, err := NewCreateReservationUseCase(repo, logger.NewNop()).Execute(context.Background(), CreateReservationCommand{DoorPIN: "4821"})
	require.Error(t, err)
	assert.Nil(t, errors.GetAppError(err))
}

func TestGetReservation(t *testing.T) {
	repo := testutil.NewReservationRepo()
	passkeys := testutil.NewPasskeyRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")
	uc := NewGetReservationUseCase(repo, passkeys, logger.NewNop())
	ctx := context.Background()

	view, err := uc.Execute(ctx, GetReservationQuery{ReservationID: "res-1"})
	require.NoError(t, err)
	assert.Equal(t, "res-1", view.ID)
	assert.False(t, view.HasPasskey)
	assert.Nil(t, view.Guest)

	cred, err := passkey.NewCredential("res-1", &webauthn.Credential{
		ID:        []byte("cred-123"),
		PublicKey: []byte("public-key"),
	}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, passkeys.Create(ctx, cred))

	view, err = uc.Execute(ctx, GetReservationQuery{ReservationID: "res-1"})
	require.NoError(t, err)
	assert.True(t, view.HasPasskey)

	_, err = uc.Execute(ctx, GetReservationQuery{ReservationID: "res-404"})
	assert.Equal(t, errors.ErrorTypeNotFound, errType(err))
}

func validProfile() dto.GuestProfileRequest {
	return dto.GuestProfileRequest{
		Name:       "Yamada Taro",
		NameKana:   "ヤマダ タロウ",
		Address:    "1-2-3 Shibuya, Tokyo",
		Contact:    "+81-90-0000-0000",
		Occupation: "Engineer",
	}
}

func newUpdateUseCase(repo reservation.Repository) *UpdateGuestProfileUseCase {
	uc := NewUpdateGuestProfileUseCase(repo, testutil.NewPasskeyRepo(), logger.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestUpdateGuestProfile_Success(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")

	profile := validProfile()
	profile.Name = "  <b>Yamada</b> Taro<script>alert(1)</script> "

	view, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-1",
		Profile:       profile,
	})
	require.NoError(t, err)
	require.NotNil(t, view.Guest)
	assert.Equal(t, "Yamada Taro", view.Guest.Name)

	stored, err := repo.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Yamada Taro", stored.Profile().Name)
	assert.Equal(t, "1-2-3 Shibuya, Tokyo", stored.Profile().Address)
}

func TestUpdateGuestProfile_KeepsPunctuation(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")

	profile := validProfile()
	profile.Name = "Sean O'Brien"
	profile.Address = "1-2 Smith & Sons Bldg"
	profile.Occupation = `"Chef" <i>& owner</i>`

	view, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-1",
		Profile:       profile,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sean O'Brien", view.Guest.Name)

	stored, err := repo.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Sean O'Brien", stored.Profile().Name)
	assert.Equal(t, "1-2 Smith & Sons Bldg", stored.Profile().Address)
	assert.Equal(t, `"Chef" & owner`, stored.Profile().Occupation)
}

func TestUpdateGuestProfile_LengthCountsPlainText(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")

	// 100 characters once unescaped, well over 100 if stored as entities
	profile := validProfile()
	profile.Name = strings.Repeat("O'Neil & ", 11) + "O"
	require.Len(t, profile.Name, 100)

	_, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-1",
		Profile:       profile,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, profile.Name, stored.Profile().Name)
}

func TestUpdateGuestProfile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *dto.GuestProfileRequest)
	}{
		{"missing name", func(p *dto.GuestProfileRequest) { p.Name = "" }},
		{"name only markup", func(p *dto.GuestProfileRequest) { p.Name = "<script></script>" }},
		{"missing address", func(p *dto.GuestProfileRequest) { p.Address = "   " }},
		{"missing contact", func(p *dto.GuestProfileRequest) { p.Contact = "" }},
		{"foreign national without passport", func(p *dto.GuestProfileRequest) {
			p.IsForeignNational = true
			p.Nationality = "FR"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewReservationRepo()
			seed(t, repo, "res-1", "A1B-2C3-D4E")

			profile := validProfile()
			tt.modify(&profile)

			_, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
				ReservationID: "res-1",
				Profile:       profile,
			})
			assert.Equal(t, errors.ErrorTypeValidation, errType(err))
		})
	}
}

func TestUpdateGuestProfile_ForeignNational(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")

	profile := validProfile()
	profile.IsForeignNational = true
	profile.Nationality = "FR"
	profile.PassportNumber = "19AB12345"

	view, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-1",
		Profile:       profile,
	})
	require.NoError(t, err)
	assert.Equal(t, "19AB12345", view.Guest.PassportNumber)
}

func TestUpdateGuestProfile_ClosedAfterCheckIn(t *testing.T) {
	repo := testutil.NewReservationRepo()
	seed(t, repo, "res-1", "A1B-2C3-D4E")
	_, err := repo.MarkCheckedIn(context.Background(), "res-1", fixedNow)
	require.NoError(t, err)

	_, err = newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-1",
		Profile:       validProfile(),
	})
	assert.Equal(t, errors.ErrorTypeConflict, errType(err))
}

func TestUpdateGuestProfile_NotFound(t *testing.T) {
	repo := testutil.NewReservationRepo()

	_, err := newUpdateUseCase(repo).Execute(context.Background(), UpdateGuestProfileCommand{
		ReservationID: "res-404",
		Profile:       validProfile(),
	})
	assert.Equal(t, errors.ErrorTypeNotFound, errType(err))
}
