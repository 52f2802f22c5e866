package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// FarmaciaRepository define el puerto de sucursales.
type FarmaciaRepository interface {
	GetByID(id string) (*entity.Farmacia, error)
}
