package models

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type ApiError struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ApiError `json:"error"`
}
