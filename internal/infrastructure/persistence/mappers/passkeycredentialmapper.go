package mappers

import (
	"fmt"

	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
	"github.com/smartcheckin/smartcheckin/internal/shared/mapper"
)

// PasskeyCredentialMapper converts between passkey.Credential and its row.
// Rows that fail the entity's invariants (empty credential ID or public key,
// no owning reservation) are reported as errors rather than skipped.
type PasskeyCredentialMapper interface {
	ToEntity(model *models.PasskeyCredentialModel) (*passkey.Credential, error)
	ToModel(entity *passkey.Credential) *models.PasskeyCredentialModel
	ToEntities(models []*models.PasskeyCredentialModel) ([]*passkey.Credential, error)
}

type passkeyCredentialMapper struct{}

func NewPasskeyCredentialMapper() PasskeyCredentialMapper {
	return passkeyCredentialMapper{}
}

func (m passkeyCredentialMapper) ToEntity(model *models.PasskeyCredentialModel) (*passkey.Credential, error) {
	if model == nil {
		return nil, nil
	}

	credential, err := passkey.ReconstructCredential(
		model.ID,
		model.CredentialID,
		model.ReservationID,
		model.PublicKey,
		model.AttestationType,
		model.AAGUID,
		model.SignCount,
		model.BackupEligible,
		model.BackupState,
		[]string(model.Transports),
		model.LastUsedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("passkey credential row %d: %w", model.ID, err)
	}
	return credential, nil
}

func (m passkeyCredentialMapper) ToModel(entity *passkey.Credential) *models.PasskeyCredentialModel {
	if entity == nil {
		return nil
	}

	return &models.PasskeyCredentialModel{
		ID:              entity.ID(),
		CredentialID:    entity.CredentialID(),
		ReservationID:   entity.ReservationID(),
		PublicKey:       entity.PublicKey(),
		AttestationType: entity.AttestationType(),
		AAGUID:          entity.AAGUID(),
		SignCount:       entity.SignCount(),
		BackupEligible:  entity.BackupEligible(),
		BackupState:     entity.BackupState(),
		Transports:      entity.Transports(),
		LastUsedAt:      entity.LastUsedAt(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}
}

// ToEntities fails on the first unusable row, naming its ID.
func (m passkeyCredentialMapper) ToEntities(modelList []*models.PasskeyCredentialModel) ([]*passkey.Credential, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PasskeyCredentialModel) uint { return model.ID })
}
