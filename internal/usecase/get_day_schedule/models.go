package get_day_schedule

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

// Request модель запроса расписания дня
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	BusinessID int64     // ID бизнеса
	EmployeeID *int64    // ID сотрудника; nil = бизнес без ресурсной модели
	ServiceID  int64     // ID услуги (определяет длительность серии слотов)
	Date       time.Time // Дата, на которую строится расписание (без времени)
}

// Response модель ответа с классифицированными слотами дня
type Response struct {
	Date               time.Time
	BusinessID         int64
	EmployeeID         *int64
	ServiceID          int64
	GranularityMinutes int
	Slots              []Slot
}

// Slot один кандидат-слот с классификацией
type Slot struct {
	StartTime types.TimeString // Локальное время начала ("10:00")
	Status    domain.SlotStatus
	Reason    string // Причина для blocked-слотов, пустая иначе
}
