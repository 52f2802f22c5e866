package dto

import "time"

// RegisterRequest entrada para registrar un empleado (password se hashea en el use case).
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FarmaciaID string `json:"farmacia_id" validate:"required,uuid"`
	Nombre     string `json:"nombre" validate:"omitempty,max=200"`
	Rol        string `json:"rol" validate:"omitempty,oneof=cajero gerente"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	FarmaciaID string    `json:"farmacia_id"`
	Email      string    `json:"email"`
	Nombre     string    `json:"nombre"`
	Rol        string    `json:"rol"`
	Estado     string    `json:"estado"`
	CreadoEn   time.Time `json:"creado_en"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
