package create_blackout

import (
	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

// CreateBlackoutRequest HTTP request model
type CreateBlackoutRequest struct {
	EmployeeID *int64  `json:"employeeId,omitempty"`
	StartDate  string  `json:"startDate"` // "2025-10-15"
	EndDate    string  `json:"endDate"`   // "2025-10-20", включительно
	Reason     *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlackoutRequest) ToServiceRequest(businessID, userID int64) *models.CreateBlackoutRequest {
	return &models.CreateBlackoutRequest{
		UserID:     userID,
		BusinessID: businessID,
		EmployeeID: r.EmployeeID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
	}
}
