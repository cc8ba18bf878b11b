package get_day_schedule

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	getDaySchedule "github.com/appointly/booking-engine/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date               string `json:"date"`
	BusinessID         int64  `json:"businessId"`
	EmployeeID         *int64 `json:"employeeId,omitempty"`
	ServiceID          int64  `json:"serviceId"`
	GranularityMinutes int    `json:"granularityMinutes"`
	Slots              []Slot `json:"slots"`
}

// Slot модель классифицированного слота
type Slot struct {
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime: slot.StartTime.String(),
			Status:    string(slot.Status),
			Reason:    slot.Reason,
		}
	}

	return &DayScheduleResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		BusinessID:         resp.BusinessID,
		EmployeeID:         resp.EmployeeID,
		ServiceID:          resp.ServiceID,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(userID, businessID, serviceID int64, employeeID *int64, dateStr string) (*getDaySchedule.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDaySchedule.Request{
		UserID:     userID,
		BusinessID: businessID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
