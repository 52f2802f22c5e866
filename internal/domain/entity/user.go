package entity

import "time"

// Roles de usuario del punto de venta.
const (
	RolCajero  = "cajero"
	RolGerente = "gerente"
)

// Usuario es una cuenta de empleado (cajero o gerente de sucursal).
type Usuario struct {
	ID           string
	FarmaciaID   string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Estado       string // active | disabled
	CreadoEn     time.Time
	ActualizadoEn time.Time
}
