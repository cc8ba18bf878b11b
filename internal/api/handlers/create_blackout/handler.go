package create_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appointly/booking-engine/internal/api/handlers"
	"github.com/appointly/booking-engine/internal/api/middleware"
	"github.com/appointly/booking-engine/internal/service/timetable"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgBusinessNotFound   = "бизнес не найден"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgInvalidBlackout    = "некорректный период блокировки"
)

type Handler struct {
	service TimetableService
	logger  Logger
}

func NewHandler(service TimetableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/blackouts - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/blackouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем период блокировки (сервис сам проверит права менеджера)
	result, err := h.service.CreateBlackout(r.Context(), req.ToServiceRequest(businessID, userID))
	if err != nil {
		switch {
		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/blackouts - Invalid blackout: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBlackout)

		case errors.Is(err, timetable.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/blackouts - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timetable.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/blackouts - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, timetable.ErrEmployeeNotFound):
			h.logger.Warn("POST /businesses/{id}/blackouts - Employee not found: business_id=%d, employee_id=%v",
				businessID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("POST /businesses/{id}/blackouts - Failed to create blackout: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/blackouts - Blackout created successfully: business_id=%d, blackout_id=%d",
		businessID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
