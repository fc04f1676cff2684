package vetservice

// Vet модель ветеринара из VetService
type Vet struct {
	ID         int64    `json:"id"`
	ClinicID   int64    `json:"clinic_id"`
	Name       string   `json:"name"`
	ClinicName string   `json:"clinic_name"`
	ManagerIDs []int64  `json:"manager_ids"` // Пользователи, управляющие расписанием
	VisitTypes []string `json:"visit_types"` // Типы приёмов, которые ведёт ветеринар
	IsActive   bool     `json:"is_active"`
}

// OffersVisitType проверяет, что ветеринар ведёт приёмы указанного типа
func (v *Vet) OffersVisitType(visitType string) bool {
	for _, vt := range v.VisitTypes {
		if vt == visitType {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от VetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
