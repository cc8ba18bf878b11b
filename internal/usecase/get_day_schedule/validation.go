package get_day_schedule

import (
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом по локальному календарю бизнеса
func validateDate(requestDate time.Time, now time.Time, loc *time.Location) error {
	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	requested := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, loc)

	if requested.Before(today) {
		return ErrInvalidDate
	}
	return nil
}

// validateEmployee проверяет, что сотрудник принадлежит бизнесу и оказывает услугу
// Пустой список сотрудников услуги означает отсутствие ресурсной модели:
// услуга доступна у любого сотрудника
func validateEmployee(business *businessservice.Business, service *businessservice.Service, employeeID int64) error {
	if !business.IsEmployee(employeeID) {
		return ErrEmployeeNotFound
	}
	if len(service.EmployeeIDs) > 0 && !service.AvailableFor(employeeID) {
		return ErrServiceNotAvailableForEmployee
	}
	return nil
}
