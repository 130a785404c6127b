package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func LabTestToResponse(t *entity.LabTest) *dto.LabTestResponse {
	return &dto.LabTestResponse{
		ID:                      t.ID,
		TestName:                t.TestName,
		TestCode:                t.TestCode,
		Category:                t.Category,
		Description:             t.Description,
		Price:                   t.Price,
		NormalRange:             t.NormalRange,
		PreparationInstructions: t.PreparationInstructions,
	}
}

func LabTestsToResponses(tests []entity.LabTest) []dto.LabTestResponse {
	responses := make([]dto.LabTestResponse, len(tests))
	for i := range tests {
		responses[i] = *LabTestToResponse(&tests[i])
	}
	return responses
}

func TestOrderToResponse(o *entity.TestOrder) *dto.TestOrderResponse {
	return &dto.TestOrderResponse{
		ID:            o.ID,
		PatientID:     o.PatientID,
		DoctorID:      o.DoctorID,
		LabTestID:     o.LabTestID,
		OrderDate:     o.OrderDate,
		Status:        string(o.Status),
		CollectedDate: o.CollectedDate,
		ReportedDate:  o.ReportedDate,
		Results:       o.Results,
		Notes:         o.Notes,
	}
}

func TestOrderDetailsToResponses(details []entity.TestOrderDetail) []dto.TestOrderResponse {
	responses := make([]dto.TestOrderResponse, len(details))
	for i := range details {
		response := TestOrderToResponse(&details[i].TestOrder)
		response.PatientName = details[i].PatientName
		response.DoctorName = details[i].DoctorName
		response.TestName = details[i].TestName
		response.NormalRange = details[i].NormalRange
		responses[i] = *response
	}
	return responses
}
