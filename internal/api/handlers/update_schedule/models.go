package update_schedule

import (
	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	EmployeeID *int64                  `json:"employeeId,omitempty"`
	Days       []models.DayScheduleDTO `json:"days"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(businessID, userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:     userID,
		BusinessID: businessID,
		EmployeeID: r.EmployeeID,
		Days:       r.Days,
	}
}
