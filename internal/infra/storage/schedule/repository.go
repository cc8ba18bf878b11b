package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/dbmetrics"
	"github.com/appointly/booking-engine/pkg/psqlbuilder"
	"github.com/appointly/booking-engine/pkg/types"
)

// DBExecutor интерфейс для выполнения запросов (sql.DB или sql.Tx)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с недельными расписаниями
//
// Хранение построчное: одна строка на каждый рабочий интервал дня недели.
// Выключенный день хранится строкой с enabled=false и NULL интервалом,
// чтобы отличать "владелец явно закрыл день" от "расписания вообще нет".
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwner возвращает недельное расписание владельца (бизнеса или сотрудника).
// Если у владельца нет ни одной строки расписания, возвращает ErrScheduleNotFound -
// вызывающий код обязан подставить дефолтное окно.
func (r *Repository) GetByOwner(ctx context.Context, owner domain.ScheduleOwner) (*domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("weekday", "enabled", "start_time", "end_time").
		From("working_schedules").
		Where(squirrel.Eq{"business_id": owner.BusinessID}).
		OrderBy("weekday ASC", "start_time ASC NULLS FIRST")

	if owner.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"employee_id": *owner.EmployeeID})
	} else {
		builder = builder.Where("employee_id IS NULL")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var week domain.WeekSchedule
	found := false

	for rows.Next() {
		var (
			weekday int
			enabled bool
			start   types.TimeString
			end     types.TimeString
		)
		if err := rows.Scan(&weekday, &enabled, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			continue
		}
		found = true

		day := week[weekday]
		day.Enabled = day.Enabled || enabled
		if enabled && !start.IsZero() && !end.IsZero() {
			day.Ranges = append(day.Ranges, domain.TimeRange{Start: start, End: end})
		}
		week[weekday] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	return &week, nil
}

// Replace полностью заменяет расписание владельца: удаляет старые строки
// и вставляет новые. Вызывается внутри транзакции, чтобы читатели не
// увидели наполовину записанную неделю.
func (r *Repository) Replace(ctx context.Context, owner domain.ScheduleOwner, week *domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("working_schedules").
		Where(squirrel.Eq{"business_id": owner.BusinessID})
	if owner.EmployeeID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"employee_id": *owner.EmployeeID})
	} else {
		deleteBuilder = deleteBuilder.Where("employee_id IS NULL")
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	now := time.Now().UTC()
	insertBuilder := psqlbuilder.Insert("working_schedules").
		Columns("business_id", "employee_id", "weekday", "enabled", "start_time", "end_time", "created_at", "updated_at")

	hasRows := false
	for weekday := 0; weekday < 7; weekday++ {
		day := week[weekday]
		if !day.Enabled || len(day.Ranges) == 0 {
			// 1. Закрытый день - одна строка-маркер без интервала
			insertBuilder = insertBuilder.Values(
				owner.BusinessID, owner.EmployeeID, weekday, false, nil, nil, now, now,
			)
			hasRows = true
			continue
		}
		for _, rng := range day.Ranges {
			insertBuilder = insertBuilder.Values(
				owner.BusinessID, owner.EmployeeID, weekday, true, rng.Start, rng.End, now, now,
			)
			hasRows = true
		}
	}

	if !hasRows {
		return nil
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	return nil
}
