package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func MedicationToResponse(m *entity.Medication) *dto.MedicationResponse {
	return &dto.MedicationResponse{
		ID:            m.ID,
		Name:          m.Name,
		GenericName:   m.GenericName,
		DosageForm:    m.DosageForm,
		Strength:      m.Strength,
		Description:   m.Description,
		Manufacturer:  m.Manufacturer,
		UnitPrice:     m.UnitPrice,
		StockQuantity: m.StockQuantity,
		ReorderLevel:  m.ReorderLevel,
		ExpiryDate:    formatOptionalDate(m.ExpiryDate),
		LowStock:      m.IsLowStock(),
	}
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i])
	}
	return responses
}
