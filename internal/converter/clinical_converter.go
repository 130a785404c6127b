package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func PatientAlertToResponse(a *entity.PatientAlert) *dto.PatientAlertResponse {
	return &dto.PatientAlertResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		AlertType: a.AlertType,
		Severity:  string(a.Severity),
		Message:   a.Message,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func PatientAlertsToResponses(alerts []entity.PatientAlert) []dto.PatientAlertResponse {
	responses := make([]dto.PatientAlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = *PatientAlertToResponse(&alerts[i])
	}
	return responses
}

func HealthVitalToResponse(v *entity.HealthVital) *dto.HealthVitalResponse {
	return &dto.HealthVitalResponse{
		ID:                     v.ID,
		PatientID:              v.PatientID,
		RecordedDate:           v.RecordedDate,
		BloodPressureSystolic:  v.BloodPressureSystolic,
		BloodPressureDiastolic: v.BloodPressureDiastolic,
		HeartRate:              v.HeartRate,
		Temperature:            v.Temperature,
		BloodSugar:             v.BloodSugar,
		Weight:                 v.Weight,
		Height:                 v.Height,
		OxygenSaturation:       v.OxygenSaturation,
		Notes:                  v.Notes,
	}
}

func HealthVitalsToResponses(vitals []entity.HealthVital) []dto.HealthVitalResponse {
	responses := make([]dto.HealthVitalResponse, len(vitals))
	for i := range vitals {
		responses[i] = *HealthVitalToResponse(&vitals[i])
	}
	return responses
}

func VaccinationToResponse(v *entity.Vaccination) *dto.VaccinationResponse {
	return &dto.VaccinationResponse{
		ID:               v.ID,
		PatientID:        v.PatientID,
		VaccineName:      v.VaccineName,
		AdministeredDate: formatDate(v.AdministeredDate),
		AdministeredBy:   v.AdministeredBy,
		BatchNumber:      v.BatchNumber,
		NextDoseDate:     formatOptionalDate(v.NextDoseDate),
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
	}
}

func VaccinationDetailsToResponses(details []entity.VaccinationDetail) []dto.VaccinationResponse {
	responses := make([]dto.VaccinationResponse, len(details))
	for i := range details {
		response := VaccinationToResponse(&details[i].Vaccination)
		response.AdministeredByName = details[i].AdministeredByName
		responses[i] = *response
	}
	return responses
}
