package engine

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
)

// MatchBlackout проверяет, пересекает ли полуинтервал [start, end)
// какой-либо из периодов недоступности, действующих для указанного ресурса.
// Возвращает первый совпавший период (его reason показывается клиенту)
// либо nil. Совпадения разрешаются в порядке следования во входном списке.
func MatchBlackout(
	n Normalizer,
	start, end time.Time,
	employeeID *int64,
	blackouts []domain.BlackoutPeriod,
) *domain.BlackoutPeriod {
	for i := range blackouts {
		b := &blackouts[i]
		if !b.AppliesTo(employeeID) {
			continue
		}

		bStart, bEnd := n.BlackoutBounds(b)

		// Строгий тест пересечения интервалов
		if start.Before(bEnd) && end.After(bStart) {
			return b
		}
	}

	return nil
}
