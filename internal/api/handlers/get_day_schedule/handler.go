package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appointly/booking-engine/internal/api/handlers"
	"github.com/appointly/booking-engine/internal/api/middleware"
	getDaySchedule "github.com/appointly/booking-engine/internal/usecase/get_day_schedule"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgInvalidEmployeeID     = "некорректный ID сотрудника"
	msgMissingServiceID      = "ID услуги обязателен"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidScheduleDate   = "некорректная дата расписания"
	msgBusinessNotFound      = "бизнес не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgEmployeeNotFound      = "сотрудник не найден"
	msgServiceNotForEmployee = "услуга недоступна у выбранного сотрудника"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/day-schedule
// Query params: serviceId (required), date (required, YYYY-MM-DD), employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessIDStr := vars["businessId"]
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/day-schedule - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /businesses/{id}/day-schedule - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/day-schedule - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/day-schedule - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/day-schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Эндпоинт публичный: userID нужен только для логирования
	userID, _ := middleware.GetUserID(r.Context())

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(userID, businessID, serviceID, employeeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/day-schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getDaySchedule.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/day-schedule - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getDaySchedule.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/day-schedule - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getDaySchedule.ErrEmployeeNotFound):
			h.logger.Warn("GET /businesses/{id}/day-schedule - Employee not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getDaySchedule.ErrServiceNotAvailableForEmployee):
			h.logger.Warn("GET /businesses/{id}/day-schedule - Service not available for employee: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotForEmployee)

		case errors.Is(err, getDaySchedule.ErrInvalidDate):
			h.logger.Warn("GET /businesses/{id}/day-schedule - Invalid schedule date: business_id=%d, date=%s",
				businessID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidScheduleDate)

		default:
			h.logger.Error("GET /businesses/{id}/day-schedule - Failed to build schedule: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/day-schedule - Schedule built successfully: business_id=%d, service_id=%d, slots_count=%d",
		businessID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
