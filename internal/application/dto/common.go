package dto

// ErrorResponse cuerpo de error HTTP. Code es estable: el cliente distingue por
// código, el mensaje es informativo.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
