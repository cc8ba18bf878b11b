package domain

import "time"

// BusinessSlotsConfig represents the slot-grid configuration for a business.
// Supports two levels:
// 1. Employee-specific (business_id, employee_id)
// 2. Business-wide (business_id, NULL)
// GranularityMinutes == nil means the granularity is inferred from the
// shortest service duration (see InferGranularity).
type BusinessSlotsConfig struct {
	ID                 int64
	BusinessID         int64
	EmployeeID         *int64 // NULL = конфигурация для всего бизнеса
	GranularityMinutes *int   // NULL = вывести из длительностей услуг
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsBusinessWide returns true if this is a business-wide configuration
func (c *BusinessSlotsConfig) IsBusinessWide() bool {
	return c.EmployeeID == nil
}

// HasExplicitGranularity returns true if the grid step is configured
// rather than inferred
func (c *BusinessSlotsConfig) HasExplicitGranularity() bool {
	return c.GranularityMinutes != nil
}

// EffectiveGranularity возвращает шаг сетки: настроенный явно либо
// выведенный из длительностей услуг
func (c *BusinessSlotsConfig) EffectiveGranularity(serviceDurations []int) int {
	if c != nil && c.GranularityMinutes != nil {
		return *c.GranularityMinutes
	}
	return InferGranularity(serviceDurations)
}
