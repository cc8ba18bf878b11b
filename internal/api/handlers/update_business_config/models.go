package update_business_config

import (
	"github.com/appointly/booking-engine/internal/service/config/models"
)

// UpdateBusinessConfigRequest HTTP request model
type UpdateBusinessConfigRequest struct {
	EmployeeID         *int64 `json:"employeeId,omitempty"`
	GranularityMinutes *int   `json:"granularityMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBusinessConfigRequest) ToServiceRequest(businessID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:             userID,
		BusinessID:         businessID,
		EmployeeID:         r.EmployeeID,
		GranularityMinutes: r.GranularityMinutes,
	}
}
