package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	reservationUsecases "github.com/smartcheckin/smartcheckin/internal/application/reservation/usecases"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/handlers/testutil"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
)

type mockCreateReservation struct {
	fn func(ctx context.Context, cmd reservationUsecases.CreateReservationCommand) (*dto.ReservationResponse, error)
}

func (m *mockCreateReservation) Execute(ctx context.Context, cmd reservationUsecases.CreateReservationCommand) (*dto.ReservationResponse, error) {
	return m.fn(ctx, cmd)
}

type mockGetReservation struct {
	fn func(ctx context.Context, query reservationUsecases.GetReservationQuery) (*dto.GuestReservationResponse, error)
}

func (m *mockGetReservation) Execute(ctx context.Context, query reservationUsecases.GetReservationQuery) (*dto.GuestReservationResponse, error) {
	return m.fn(ctx, query)
}

type mockUpdateGuestProfile struct {
	fn func(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error)
}

func (m *mockUpdateGuestProfile) Execute(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error) {
	return m.fn(ctx, cmd)
}

func newReservationHandlerWithMocks() (*ReservationHandler, *mockCreateReservation, *mockGetReservation, *mockUpdateGuestProfile) {
	create := &mockCreateReservation{}
	get := &mockGetReservation{}
	update := &mockUpdateGuestProfile{}
	return NewReservationHandler(create, get, update, testutil.NewMockLogger()), create, get, update
}

type reservationBody struct {
	Reservation json.RawMessage `json:"reservation"`
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	h, create, _, _ := newReservationHandlerWithMocks()
	create.fn = func(ctx context.Context, cmd reservationUsecases.CreateReservationCommand) (*dto.ReservationResponse, error) {
		assert.Equal(t, "4821", cmd.DoorPIN)
		return &dto.ReservationResponse{ID: testReservationID, SecretCode: "A1B-2C3-D4E", DoorPIN: "4821"}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/reservations", map[string]string{"door_pin": "4821"})
	h.CreateReservation(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var body reservationBody
	require.NoError(t, testutil.ParseResponse(w, &body))
	var created dto.ReservationResponse
	require.NoError(t, json.Unmarshal(body.Reservation, &created))
	assert.Equal(t, "A1B-2C3-D4E", created.SecretCode)
	assert.Equal(t, "4821", created.DoorPIN)
}

func TestReservationHandler_CreateReservation_Errors(t *testing.T) {
	t.Run("missing door pin", func(t *testing.T) {
		h, _, _, _ := newReservationHandlerWithMocks()

		c, w := testutil.NewTestContext(http.MethodPost, "/api/reservations", map[string]string{})
		h.CreateReservation(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("collision retries exhausted", func(t *testing.T) {
		h, create, _, _ := newReservationHandlerWithMocks()
		create.fn = func(ctx context.Context, cmd reservationUsecases.CreateReservationCommand) (*dto.ReservationResponse, error) {
			return nil, errors.NewInternalError("failed to allocate a unique secret code")
		}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/reservations", map[string]string{"door_pin": "4821"})
		h.CreateReservation(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestReservationHandler_GetReservation(t *testing.T) {
	h, _, get, _ := newReservationHandlerWithMocks()
	get.fn = func(ctx context.Context, query reservationUsecases.GetReservationQuery) (*dto.GuestReservationResponse, error) {
		if query.ReservationID != testReservationID {
			return nil, errors.NewReservationNotFoundError()
		}
		return &dto.GuestReservationResponse{ID: testReservationID, HasPasskey: true}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/reservations/"+testReservationID, nil)
	testutil.SetURLParam(c, "id", testReservationID)
	h.GetReservation(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret_code")
	assert.NotContains(t, w.Body.String(), "door_pin")
	assert.Contains(t, w.Body.String(), `"has_passkey":true`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/reservations/"+otherReservationID, nil)
	testutil.SetURLParam(c, "id", otherReservationID)
	h.GetReservation(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationHandler_MalformedID(t *testing.T) {
	h, _, get, update := newReservationHandlerWithMocks()
	calls := 0
	get.fn = func(ctx context.Context, query reservationUsecases.GetReservationQuery) (*dto.GuestReservationResponse, error) {
		calls++
		return nil, errors.NewReservationNotFoundError()
	}
	update.fn = func(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error) {
		calls++
		return nil, errors.NewReservationNotFoundError()
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/reservations/res-1", nil)
	testutil.SetURLParam(c, "id", "res-1")
	h.GetReservation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errors.ErrorTypeValidation), testutil.ErrorType(t, w))

	c, w = testutil.NewTestContext(http.MethodPatch, "/api/reservations/res-1", map[string]string{
		"name":    "Yamada Taro",
		"address": "Tokyo",
		"contact": "090",
	})
	testutil.SetURLParam(c, "id", "res-1")
	h.UpdateGuestProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, calls)
}

func TestReservationHandler_UpdateGuestProfile(t *testing.T) {
	h, _, _, update := newReservationHandlerWithMocks()

	var got reservationUsecases.UpdateGuestProfileCommand
	update.fn = func(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error) {
		got = cmd
		return &dto.GuestReservationResponse{
			ID:    cmd.ReservationID,
			Guest: &dto.GuestProfileResponse{Name: cmd.Profile.Name},
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/reservations/"+testReservationID, map[string]interface{}{
		"name":    "Hanako Yamada",
		"address": "1-1 Chiyoda, Tokyo",
		"contact": "090-0000-0000",
	})
	testutil.SetURLParam(c, "id", testReservationID)
	h.UpdateGuestProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testReservationID, got.ReservationID)
	assert.Equal(t, "Hanako Yamada", got.Profile.Name)
	assert.Equal(t, "090-0000-0000", got.Profile.Contact)
}

func TestReservationHandler_UpdateGuestProfile_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", errors.NewValidationError("name is required"), http.StatusBadRequest},
		{"not found", errors.NewReservationNotFoundError(), http.StatusNotFound},
		{"checked in", errors.NewConflictError("reservation is already checked in"), http.StatusConflict},
		{"repository", stderrors.New("deadlock"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _, update := newReservationHandlerWithMocks()
			update.fn = func(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error) {
				return nil, tt.err
			}

			c, w := testutil.NewTestContext(http.MethodPatch, "/api/reservations/"+testReservationID, map[string]string{"name": "x"})
			testutil.SetURLParam(c, "id", testReservationID)
			h.UpdateGuestProfile(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestReservationHandler_UpdateGuestProfile_InvalidJSON(t *testing.T) {
	h, _, _, _ := newReservationHandlerWithMocks()

	c, w := testutil.NewRawTestContext(http.MethodPatch, "/api/reservations/"+testReservationID, `{"name":`)
	testutil.SetURLParam(c, "id", testReservationID)
	h.UpdateGuestProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
