package userservice

// Pet модель питомца из UserService
type Pet struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	Species    string `json:"species"` // Вид (dog, cat, bird, ...)
	Breed      string `json:"breed"`
	IsSelected bool   `json:"is_selected"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
