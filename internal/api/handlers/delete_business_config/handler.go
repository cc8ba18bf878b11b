package delete_business_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appointly/booking-engine/internal/api/handlers"
	"github.com/appointly/booking-engine/internal/api/middleware"
	"github.com/appointly/booking-engine/internal/service/config"
	"github.com/appointly/booking-engine/internal/service/config/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgNotFound          = "конфигурация не найдена"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/businesses/{businessId}/config
// Query params: employeeId (опционально, без него удаляется конфигурация бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /businesses/{id}/config - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	req := &models.DeleteConfigRequest{
		UserID:     userID,
		BusinessID: businessID,
		EmployeeID: employeeID,
	}

	// Удаляем конфигурацию (сервис сам проверит права менеджера)
	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/config - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("DELETE /businesses/{id}/config - Config not found: business_id=%d, employee_id=%v",
				businessID, employeeID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, config.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/config - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("DELETE /businesses/{id}/config - Failed to delete config: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/config - Config deleted successfully: business_id=%d, employee_id=%v",
		businessID, employeeID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
