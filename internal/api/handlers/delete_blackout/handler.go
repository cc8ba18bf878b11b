package delete_blackout

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
	msgInvalidBlackoutID = "некорректный ID периода блокировки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgNotFound          = "период блокировки не найден"
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

// Handle DELETE /api/v1/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем blackoutId из URL
	vars := mux.Vars(r)
	blackoutIDStr := vars["blackoutId"]

	blackoutID, err := strconv.ParseInt(blackoutIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /blackouts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем период блокировки (сервис сам проверит права менеджера)
	if err := h.service.DeleteBlackout(r.Context(), blackoutID, userID); err != nil {
		switch {
		case errors.Is(err, timetable.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timetable.ErrAccessDenied):
			h.logger.Warn("DELETE /blackouts/{id} - Access denied: blackout_id=%d, user_id=%d",
				blackoutID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /blackouts/{id} - Failed to delete blackout: blackout_id=%d, error=%v",
				blackoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blackouts/{id} - Blackout deleted successfully: blackout_id=%d, user_id=%d",
		blackoutID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
