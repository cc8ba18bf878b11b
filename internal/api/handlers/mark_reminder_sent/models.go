package mark_reminder_sent

import (
	"time"

	"github.com/appointly/booking-engine/internal/service/bookings/models"
)

// MarkReminderSentRequest HTTP request model
type MarkReminderSentRequest struct {
	SentAt *time.Time `json:"sentAt,omitempty"` // nil = текущее время
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *MarkReminderSentRequest) ToServiceRequest(userID int64) *models.MarkReminderSentRequest {
	return &models.MarkReminderSentRequest{
		UserID: userID,
		SentAt: r.SentAt,
	}
}
