package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// UsuarioRepository define el puerto de cuentas de empleados (auth).
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
}
