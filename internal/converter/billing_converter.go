package converter

import (
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// BillToResponse converts a bill and its paid sum, deriving status as of now
func BillToResponse(bill *entity.Bill, paid decimal.Decimal, now time.Time) *dto.BillResponse {
	if bill == nil {
		return nil
	}

	return &dto.BillResponse{
		ID:          bill.ID,
		PatientID:   bill.PatientID,
		BillDate:    bill.BillDate,
		TotalAmount: bill.TotalAmount,
		PaidAmount:  paid,
		Balance:     bill.Balance(paid),
		Status:      string(bill.EffectiveStatus(paid, now)),
		DueDate:     formatOptionalDate(bill.DueDate),
		Description: bill.Description,
	}
}

func BillSummariesToResponses(bills []entity.BillSummary, now time.Time) []dto.BillResponse {
	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		response := BillToResponse(&bills[i].Bill, bills[i].PaidAmount, now)
		response.PatientName = bills[i].PatientName
		responses[i] = *response
	}
	return responses
}

func PaymentToResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		BillID:        p.BillID,
		PaymentDate:   p.PaymentDate,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
	}
}

func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *PaymentToResponse(&payments[i])
	}
	return responses
}
