package dto

import (
	"time"

	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
)

// CreateReservationRequest represents the admin request to open a reservation
type CreateReservationRequest struct {
	DoorPIN string `json:"door_pin" binding:"required,max=32"`
}

// GuestProfileRequest carries the guest registry fields
type GuestProfileRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	NameKana          string `json:"name_kana" validate:"omitempty,max=100,kana"`
	Address           string `json:"address" validate:"required,max=255"`
	Contact           string `json:"contact" validate:"required,max=100"`
	Occupation        string `json:"occupation" validate:"max=100"`
	IsForeignNational bool   `json:"is_foreign_national"`
	Nationality       string `json:"nationality" validate:"required_if=IsForeignNational true,max=100"`
	PassportNumber    string `json:"passport_number" validate:"required_if=IsForeignNational true,max=50"`
}

// GuestProfileResponse is the stored guest profile
type GuestProfileResponse struct {
	Name              string `json:"name"`
	NameKana          string `json:"name_kana,omitempty"`
	Address           string `json:"address"`
	Contact           string `json:"contact"`
	Occupation        string `json:"occupation,omitempty"`
	IsForeignNational bool   `json:"is_foreign_national"`
	Nationality       string `json:"nationality,omitempty"`
	PassportNumber    string `json:"passport_number,omitempty"`
}

// GuestReservationResponse is the view shown on the guest's device. It never
// carries the secret code or the door PIN.
type GuestReservationResponse struct {
	ID          string                `json:"id"`
	Guest       *GuestProfileResponse `json:"guest,omitempty"`
	IsCheckedIn bool                  `json:"is_checked_in"`
	HasPasskey  bool                  `json:"has_passkey"`
}

// ReservationResponse is the full admin view
type ReservationResponse struct {
	ID          string                `json:"id"`
	SecretCode  string                `json:"secret_code"`
	DoorPIN     string                `json:"door_pin"`
	Guest       *GuestProfileResponse `json:"guest,omitempty"`
	IsCheckedIn bool                  `json:"is_checked_in"`
	CheckedInAt *time.Time            `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toGuestProfileResponse(p reservation.GuestProfile) *GuestProfileResponse {
	if p.IsEmpty() {
		return nil
	}
	return &GuestProfileResponse{
		Name:              p.Name,
		NameKana:          p.NameKana,
		Address:           p.Address,
		Contact:           p.Contact,
		Occupation:        p.Occupation,
		IsForeignNational: p.IsForeignNational,
		Nationality:       p.Nationality,
		PassportNumber:    p.PassportNumber,
	}
}

// ToGuestReservationResponse converts a reservation to the guest view
func ToGuestReservationResponse(r *reservation.Reservation, hasPasskey bool) *GuestReservationResponse {
	return &GuestReservationResponse{
		ID:          r.ID(),
		Guest:       toGuestProfileResponse(r.Profile()),
		IsCheckedIn: r.IsCheckedIn(),
		HasPasskey:  hasPasskey,
	}
}

// ToReservationResponse converts a reservation to the admin view
func ToReservationResponse(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          r.ID(),
		SecretCode:  r.SecretCode().String(),
		DoorPIN:     r.DoorPIN(),
		Guest:       toGuestProfileResponse(r.Profile()),
		IsCheckedIn: r.IsCheckedIn(),
		CheckedInAt: r.CheckedInAt(),
		CreatedAt:   r.CreatedAt(),
	}
}
