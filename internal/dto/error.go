package dto

// FieldError describes one rejected request field.
type FieldError struct {
	Field  string `json:"field" example:"password"`
	Reason string `json:"reason" example:"must be exactly 4 digits"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string       `json:"code" example:"ACCOUNT_NOT_FOUND"`
	Message string       `json:"message" example:"account not found"`
	Fields  []FieldError `json:"fields,omitempty"`
}
