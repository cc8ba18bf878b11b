package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

var (
	// ErrInvalidRange возвращается при некорректном рабочем интервале
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// TimeRangeDTO рабочий интервал дня в локальном времени бизнеса
type TimeRangeDTO struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// DayScheduleDTO расписание одного дня недели
type DayScheduleDTO struct {
	Weekday int            `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	Enabled bool           `json:"enabled"`
	Ranges  []TimeRangeDTO `json:"ranges"`
}

// Request модели

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	UserID     int64            `json:"userId"`
	BusinessID int64            `json:"businessId"`
	EmployeeID *int64           `json:"employeeId,omitempty"` // NULL = расписание бизнеса
	Days       []DayScheduleDTO `json:"days"`
}

// ToDomainWeek конвертирует запрос в domain модель с валидацией:
// формат меток, start < end, непересекающиеся интервалы дня.
// Не упомянутые в запросе дни недели считаются выключенными.
func (r *UpdateScheduleRequest) ToDomainWeek() (*domain.WeekSchedule, error) {
	var week domain.WeekSchedule

	for _, day := range r.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, day.Weekday)
		}
		if len(day.Ranges) > domain.MaxRangesPerDay {
			return nil, fmt.Errorf("%w: day %d has more than %d ranges", ErrInvalidRange, day.Weekday, domain.MaxRangesPerDay)
		}

		schedule := domain.DaySchedule{Enabled: day.Enabled}
		for _, rng := range day.Ranges {
			timeRange := domain.TimeRange{
				Start: types.TimeString(rng.Start),
				End:   types.TimeString(rng.End),
			}
			if !timeRange.IsValid() {
				return nil, fmt.Errorf("%w: %s-%s", ErrInvalidRange, rng.Start, rng.End)
			}
			schedule.Ranges = append(schedule.Ranges, timeRange)
		}

		// Интервалы одного дня не должны пересекаться
		for i := 0; i < len(schedule.Ranges); i++ {
			for j := i + 1; j < len(schedule.Ranges); j++ {
				a, b := schedule.Ranges[i], schedule.Ranges[j]
				if a.Start.IsBefore(b.End) && b.Start.IsBefore(a.End) {
					return nil, fmt.Errorf("%w: overlapping ranges on day %d", ErrInvalidRange, day.Weekday)
				}
			}
		}

		week.SetDay(time.Weekday(day.Weekday), schedule)
	}

	return &week, nil
}

// CreateBlackoutRequest запрос на создание периода блокировки
type CreateBlackoutRequest struct {
	UserID     int64   `json:"userId"`
	BusinessID int64   `json:"businessId"`
	EmployeeID *int64  `json:"employeeId,omitempty"` // NULL = блокировка всего бизнеса
	StartDate  string  `json:"startDate"`            // "2025-10-15"
	EndDate    string  `json:"endDate"`              // "2025-10-20", включительно
	Reason     *string `json:"reason,omitempty"`
}

// Response модели

// WeekScheduleResponse ответ с недельным расписанием
type WeekScheduleResponse struct {
	BusinessID int64            `json:"businessId"`
	EmployeeID *int64           `json:"employeeId,omitempty"`
	IsDefault  bool             `json:"isDefault"` // true = расписание не настроено, отдано дефолтное
	Days       []DayScheduleDTO `json:"days"`
}

// FromDomainWeek конвертирует domain модель в DTO
func FromDomainWeek(owner domain.ScheduleOwner, week domain.WeekSchedule, isDefault bool) *WeekScheduleResponse {
	resp := &WeekScheduleResponse{
		BusinessID: owner.BusinessID,
		EmployeeID: owner.EmployeeID,
		IsDefault:  isDefault,
		Days:       make([]DayScheduleDTO, 7),
	}

	for weekday := 0; weekday < 7; weekday++ {
		day := week.ForDay(time.Weekday(weekday))
		dto := DayScheduleDTO{
			Weekday: weekday,
			Enabled: day.Enabled,
			Ranges:  make([]TimeRangeDTO, 0, len(day.Ranges)),
		}
		for _, rng := range day.Ranges {
			dto.Ranges = append(dto.Ranges, TimeRangeDTO{
				Start: rng.Start.String(),
				End:   rng.End.String(),
			})
		}
		resp.Days[weekday] = dto
	}

	return resp
}

// BlackoutResponse ответ с данными периода блокировки
type BlackoutResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	EmployeeID *int64    `json:"employeeId,omitempty"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlackoutListResponse ответ со списком периодов блокировок
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// FromDomainBlackout конвертирует domain модель в DTO
func FromDomainBlackout(b *domain.BlackoutPeriod) *BlackoutResponse {
	if b == nil {
		return nil
	}
	return &BlackoutResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		EmployeeID: b.EmployeeID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlackoutList конвертирует список domain моделей в DTO
func FromDomainBlackoutList(periods []domain.BlackoutPeriod) *BlackoutListResponse {
	resp := &BlackoutListResponse{
		Blackouts: make([]BlackoutResponse, 0, len(periods)),
	}
	for i := range periods {
		resp.Blackouts = append(resp.Blackouts, *FromDomainBlackout(&periods[i]))
	}
	return resp
}
