package models

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации сетки
// GranularityMinutes == nil сбрасывает явный шаг: он снова будет выводиться
// из длительности самой короткой услуги
type UpsertConfigRequest struct {
	UserID             int64  `json:"userId"`
	BusinessID         int64  `json:"businessId"`
	EmployeeID         *int64 `json:"employeeId,omitempty"` // NULL = для всего бизнеса
	GranularityMinutes *int   `json:"granularityMinutes,omitempty"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.BusinessSlotsConfig {
	return &domain.BusinessSlotsConfig{
		BusinessID:         r.BusinessID,
		EmployeeID:         r.EmployeeID,
		GranularityMinutes: r.GranularityMinutes,
	}
}

// DeleteConfigRequest запрос на удаление конфигурации уровня
type DeleteConfigRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации сетки слотов
type ConfigResponse struct {
	ID                 int64     `json:"id"`
	BusinessID         int64     `json:"businessId"`
	EmployeeID         *int64    `json:"employeeId,omitempty"`
	GranularityMinutes *int      `json:"granularityMinutes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// EffectiveConfigResponse ответ с действующим шагом сетки:
// явным либо выведенным из длительностей услуг
type EffectiveConfigResponse struct {
	BusinessID         int64  `json:"businessId"`
	EmployeeID         *int64 `json:"employeeId,omitempty"`
	GranularityMinutes int    `json:"granularityMinutes"`
	Inferred           bool   `json:"inferred"` // true = шаг выведен, а не настроен
}

// ConfigListResponse ответ со списком конфигураций бизнеса
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BusinessSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		ID:                 c.ID,
		BusinessID:         c.BusinessID,
		EmployeeID:         c.EmployeeID,
		GranularityMinutes: c.GranularityMinutes,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.BusinessSlotsConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}
	for _, config := range configs {
		if dto := FromDomainConfig(config); dto != nil {
			resp.Configs = append(resp.Configs, *dto)
		}
	}
	return resp
}
