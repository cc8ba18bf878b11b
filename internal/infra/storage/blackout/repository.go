package blackout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/dbmetrics"
	"github.com/appointly/booking-engine/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (sql.DB или sql.Tx)
type DBExecutor = dbmetrics.DBExecutor

var blackoutColumns = []string{
	"id",
	"business_id",
	"employee_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с периодами блокировок
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый период блокировки
func (r *Repository) Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_periods").
		Columns("business_id", "employee_id", "start_date", "end_date", "reason").
		Values(
			period.BusinessID,
			period.EmployeeID,
			period.StartDate,
			period.EndDate,
			period.Reason,
		).
		Suffix("RETURNING " + joinColumns(blackoutColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	created, err := scanBlackout(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID возвращает период блокировки по идентификатору
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	period, err := scanBlackout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlackoutNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	return period, nil
}

// Delete удаляет период блокировки
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

// ListByBusiness возвращает все периоды блокировок бизнеса
// (и общие, и привязанные к сотрудникам)
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// ListForDate возвращает периоды блокировок бизнеса, действующие на дату.
// Фильтрация по сотруднику не делается здесь: область действия периода
// проверяет вызывающий код, которому известен контекст запроса.
func (r *Repository) ListForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlackout(row rowScanner) (*domain.BlackoutPeriod, error) {
	var period domain.BlackoutPeriod

	err := row.Scan(
		&period.ID,
		&period.BusinessID,
		&period.EmployeeID,
		&period.StartDate,
		&period.EndDate,
		&period.Reason,
		&period.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &period, nil
}

func scanBlackouts(rows *sql.Rows) ([]domain.BlackoutPeriod, error) {
	var periods []domain.BlackoutPeriod

	for rows.Next() {
		period, err := scanBlackout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	return periods, nil
}

func joinColumns(columns []string) string {
	result := ""
	for i, column := range columns {
		if i > 0 {
			result += ", "
		}
		result += column
	}
	return result
}
