package dto

// Envelope форматы ответов единые для всего API:
// успех   {status, data}
// ошибка  {status, message}

type DataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// ListResponse is the paginated getAll envelope.
type ListResponse struct {
	Status         string `json:"status"`
	ResultsFound   int    `json:"resultsFound"`
	ResultsPerPage int    `json:"resultsPerPage"`
	ResultsTotal   int64  `json:"resultsTotal"`
	CurrentPage    int    `json:"currentPage"`
	Pages          int64  `json:"pages"`
	Data           any    `json:"data"`
}

func NewData(key string, doc any) DataResponse {
	return DataResponse{Status: "success", Data: map[string]any{key: doc}}
}

type SignupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Data   any    `json:"data"`
}
