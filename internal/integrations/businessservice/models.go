package businessservice

// Business профиль бизнеса из BusinessService
type Business struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Timezone        string  `json:"timezone"` // IANA имя, например "Europe/Moscow"
	ConsentRequired bool    `json:"consent_required"`
	ManagerIDs      []int64 `json:"manager_ids"`
	EmployeeIDs     []int64 `json:"employee_ids"`
}

// IsManager проверяет, что пользователь управляет бизнесом
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsEmployee проверяет, что пользователь - сотрудник бизнеса
func (b *Business) IsEmployee(userID int64) bool {
	for _, id := range b.EmployeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasElevatedAccess проверяет, что пользователь обходит ограничения
// политики бронирования (менеджер или сотрудник)
func (b *Business) HasElevatedAccess(userID int64) bool {
	return b.IsManager(userID) || b.IsEmployee(userID)
}

// Service услуга бизнеса
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	EmployeeIDs     []int64  `json:"employee_ids"` // сотрудники, оказывающие услугу
}

// AvailableFor проверяет, что услугу оказывает указанный сотрудник
// Пустой список означает, что услуга доступна без ресурсной модели
func (s *Service) AvailableFor(employeeID int64) bool {
	for _, id := range s.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
