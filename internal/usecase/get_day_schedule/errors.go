package get_day_schedule

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не принадлежит бизнесу
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrServiceNotAvailableForEmployee возвращается, когда услугу
	// не оказывает указанный сотрудник
	ErrServiceNotAvailableForEmployee = errors.New("service is not available for this employee")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid schedule date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
