package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func DepartmentToResponse(d *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Floor:       d.Floor,
	}
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}

func RoomToResponse(r *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:           r.ID,
		RoomNumber:   r.RoomNumber,
		DepartmentID: r.DepartmentID,
		RoomType:     r.RoomType,
		Floor:        r.Floor,
		Capacity:     r.Capacity,
	}
}

func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *RoomToResponse(&rooms[i])
	}
	return responses
}

func BedToResponse(b *entity.Bed) *dto.BedResponse {
	return &dto.BedResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomNumber:   b.Room.RoomNumber,
		BedNumber:    b.BedNumber,
		Status:       string(b.Status),
		PatientID:    b.PatientID,
		AssignedDate: b.AssignedDate,
	}
}

func BedsToResponses(beds []entity.Bed) []dto.BedResponse {
	responses := make([]dto.BedResponse, len(beds))
	for i := range beds {
		responses[i] = *BedToResponse(&beds[i])
	}
	return responses
}
