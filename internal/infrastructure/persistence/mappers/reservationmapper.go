package mappers

import (
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
)

// ReservationMapper handles the conversion between reservation entities and persistence models
type ReservationMapper interface {
	ToEntity(model *models.ReservationModel) *reservation.Reservation
	ToModel(entity *reservation.Reservation) *models.ReservationModel
}

type reservationMapper struct{}

func NewReservationMapper() ReservationMapper {
	return &reservationMapper{}
}

func (m *reservationMapper) ToEntity(model *models.ReservationModel) *reservation.Reservation {
	if model == nil {
		return nil
	}

	profile := reservation.GuestProfile{
		Name:              model.GuestName,
		NameKana:          model.GuestNameKana,
		Address:           model.GuestAddress,
		Contact:           model.GuestContact,
		Occupation:        model.GuestOccupation,
		IsForeignNational: model.IsForeignNational,
		Nationality:       model.Nationality,
		PassportNumber:    model.PassportNumber,
	}

	return reservation.ReconstructReservation(
		model.ID,
		profile,
		reservation.ReconstructSecretCode(model.SecretCode),
		model.DoorPIN,
		model.IsCheckedIn,
		model.CheckedInAt,
		model.IsArchived,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *reservationMapper) ToModel(entity *reservation.Reservation) *models.ReservationModel {
	if entity == nil {
		return nil
	}

	p := entity.Profile()
	return &models.ReservationModel{
		ID:                entity.ID(),
		GuestName:         p.Name,
		GuestNameKana:     p.NameKana,
		GuestAddress:      p.Address,
		GuestContact:      p.Contact,
		GuestOccupation:   p.Occupation,
		IsForeignNational: p.IsForeignNational,
		Nationality:       p.Nationality,
		PassportNumber:    p.PassportNumber,
		SecretCode:        entity.SecretCode().String(),
		DoorPIN:           entity.DoorPIN(),
		IsCheckedIn:       entity.IsCheckedIn(),
		CheckedInAt:       entity.CheckedInAt(),
		IsArchived:        entity.IsArchived(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}
