package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func prescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	response := &dto.PrescriptionResponse{
		ID:               p.ID,
		PatientID:        p.PatientID,
		DoctorID:         p.DoctorID,
		AppointmentID:    p.AppointmentID,
		PrescriptionDate: p.PrescriptionDate,
		Diagnosis:        p.Diagnosis,
		Notes:            p.Notes,
	}
	for _, line := range p.Medications {
		item := dto.PrescriptionMedicationResponse{
			ID:           line.ID,
			MedicationID: line.MedicationID,
			Dosage:       line.Dosage,
			Frequency:    line.Frequency,
			Duration:     line.Duration,
			Instructions: line.Instructions,
		}
		if line.Medication != nil {
			item.MedicationName = line.Medication.Name
			item.Strength = line.Medication.Strength
		}
		response.Medications = append(response.Medications, item)
	}
	return response
}

// PrescriptionToResponse converts a freshly created prescription
func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}
	return prescriptionToResponse(p)
}

// PrescriptionDetailToResponse converts an enriched prescription
func PrescriptionDetailToResponse(d *entity.PrescriptionDetail) *dto.PrescriptionResponse {
	if d == nil {
		return nil
	}
	response := prescriptionToResponse(&d.Prescription)
	response.PatientName = d.PatientName
	response.DoctorName = d.DoctorName
	return response
}

func PrescriptionDetailsToResponses(details []entity.PrescriptionDetail) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(details))
	for i := range details {
		responses[i] = *PrescriptionDetailToResponse(&details[i])
	}
	return responses
}
