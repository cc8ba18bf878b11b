package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не принадлежит бизнесу
	ErrEmployeeNotFound = errors.New("create_booking: employee not found")

	// ErrServiceNotAvailableForEmployee возвращается, когда услугу
	// не оказывает указанный сотрудник
	ErrServiceNotAvailableForEmployee = errors.New("create_booking: service is not available for this employee")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке
	// рабочих часов запрошенного дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот занят другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotBlocked возвращается, когда слот закрыт блокировкой или политикой
	ErrSlotBlocked = errors.New("create_booking: slot is blocked")

	// ErrTooLateToBook возвращается при нарушении минимального интервала
	// до начала бронирования
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
