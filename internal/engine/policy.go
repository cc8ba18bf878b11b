package engine

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
)

// Фиксированные сообщения политики. Показываются клиенту дословно,
// поэтому их формулировки - часть контракта, а не косметика.
const (
	MsgTooSoon                  = "бронирование возможно не позднее чем за 2 часа до начала"
	MsgCancellationWindowClosed = "отменить запись можно не позднее чем за 23 часа до начала"
	MsgReminderGraceExpired     = "после напоминания на отмену отводится 1 час, это время истекло"
	MsgSlotUnavailable          = "это время только что стало недоступно"
	MsgSlotBlocked              = "это время недоступно для записи"
	MsgInsufficientRun          = "недостаточно свободного времени подряд для выбранной услуги"
)

// Длительности политики, производные от доменных констант
var (
	minBookingLead    = time.Duration(domain.MinBookingLeadMinutes) * time.Minute
	cancellationLimit = time.Duration(domain.CancellationLimitMinutes) * time.Minute
	reminderGrace     = time.Duration(domain.ReminderGraceMinutes) * time.Minute
)

// CheckLeadTime проверяет минимальный интервал до начала бронирования.
// Слот, начинающийся ровно через MinBookingLead, забронировать можно;
// на секунду раньше - уже нет.
func CheckLeadTime(start, now time.Time) (bool, string) {
	if start.Sub(now) < minBookingLead {
		return false, MsgTooSoon
	}
	return true, ""
}

// CheckCancellation проверяет, разрешена ли отмена бронирования сейчас.
//
// Общее правило: отмена доступна, пока до начала остаётся не меньше
// CancellationLimit. Если по бронированию уже отправлено напоминание,
// действует более строгое правило: отмена доступна только в течение
// ReminderGrace после отметки времени напоминания - даже если до самой
// записи ещё далеко.
//
// Бизнес и его сотрудники обходят оба правила: это осознанный люк
// для операционной гибкости.
func CheckCancellation(start, now time.Time, reminderSentAt *time.Time, elevated bool) (bool, string) {
	if elevated {
		return true, ""
	}

	if reminderSentAt != nil {
		if now.After(reminderSentAt.Add(reminderGrace)) {
			return false, MsgReminderGraceExpired
		}
		return true, ""
	}

	if start.Sub(now) < cancellationLimit {
		return false, MsgCancellationWindowClosed
	}

	return true, ""
}
