package domain

import "time"

// BlackoutScope владелец периода недоступности
type BlackoutScope string

const (
	BlackoutScopeBusiness BlackoutScope = "business"
	BlackoutScopeEmployee BlackoutScope = "employee"
)

// BlackoutPeriod an inclusive whole-day exclusion window (business holiday
// or employee leave). Created and deleted, never mutated in place.
// Invariant: StartDate <= EndDate.
type BlackoutPeriod struct {
	ID         int64
	BusinessID int64
	EmployeeID *int64 // nil = блэкаут всего бизнеса
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	CreatedAt  time.Time
}

// Scope возвращает область действия периода
func (b *BlackoutPeriod) Scope() BlackoutScope {
	if b.EmployeeID != nil {
		return BlackoutScopeEmployee
	}
	return BlackoutScopeBusiness
}

// AppliesTo проверяет, действует ли блэкаут для указанного ресурса:
// блэкаут бизнеса действует для всех, блэкаут сотрудника - только для него
func (b *BlackoutPeriod) AppliesTo(employeeID *int64) bool {
	if b.EmployeeID == nil {
		return true
	}
	return employeeID != nil && *employeeID == *b.EmployeeID
}
