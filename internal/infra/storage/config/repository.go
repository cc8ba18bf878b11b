package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/dbmetrics"
	"github.com/appointly/booking-engine/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (sql.DB или sql.Tx)
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"business_id",
	"employee_id",
	"granularity_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией сетки слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndEmployee получает конфигурацию точного уровня:
// employeeID == nil возвращает только общебизнесовую строку
func (r *Repository) GetByBusinessAndEmployee(ctx context.Context, businessID int64, employeeID *int64) (*domain.BusinessSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("business_slots_config").
		Where(squirrel.Eq{"business_id": businessID})

	if employeeID == nil {
		selectBuilder = selectBuilder.Where("employee_id IS NULL")
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndEmployee - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.BusinessSlotsConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.BusinessID,
		&config.EmployeeID,
		&config.GranularityMinutes,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndEmployee - scan config: %v", ErrScanRow, err)
	}

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретного сотрудника (businessID, employeeID)
// 2. Общая конфигурация бизнеса (businessID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound -
// вызывающий код выводит шаг сетки из длительностей услуг
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, businessID int64, employeeID *int64) (*domain.BusinessSlotsConfig, error) {
	if employeeID != nil {
		config, err := r.GetByBusinessAndEmployee(ctx, businessID, employeeID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - employee level: %v", ErrExecQuery, err)
		}
	}

	config, err := r.GetByBusinessAndEmployee(ctx, businessID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - business level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByBusiness получает все конфигурации бизнеса (общую и по сотрудникам)
func (r *Repository) GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.BusinessSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("business_slots_config").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("employee_id ASC NULLS FIRST"). // Общая конфигурация первой
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.BusinessSlotsConfig, 0)

	for rows.Next() {
		var config domain.BusinessSlotsConfig
		err := rows.Scan(
			&config.ID,
			&config.BusinessID,
			&config.EmployeeID,
			&config.GranularityMinutes,
			&config.CreatedAt,
			&config.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByBusiness - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, &config)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию уровня (businessID, employeeID).
// Опирается на уникальный индекс по (business_id, coalesce(employee_id, 0))
func (r *Repository) Upsert(ctx context.Context, config *domain.BusinessSlotsConfig) (*domain.BusinessSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_slots_config").
		Columns("business_id", "employee_id", "granularity_minutes").
		Values(config.BusinessID, config.EmployeeID, config.GranularityMinutes).
		Suffix(`ON CONFLICT (business_id, COALESCE(employee_id, 0))
			DO UPDATE SET granularity_minutes = EXCLUDED.granularity_minutes, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return config, nil
}

// Delete удаляет конфигурацию уровня (businessID, employeeID)
func (r *Repository) Delete(ctx context.Context, businessID int64, employeeID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("business_slots_config").
		Where(squirrel.Eq{"business_id": businessID})

	if employeeID == nil {
		deleteBuilder = deleteBuilder.Where("employee_id IS NULL")
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
