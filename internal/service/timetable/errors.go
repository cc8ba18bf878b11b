package timetable

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не принадлежит бизнесу
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrBlackoutNotFound возвращается, когда период блокировки не найден
	ErrBlackoutNotFound = errors.New("blackout period not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
