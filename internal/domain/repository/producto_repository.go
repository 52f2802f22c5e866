package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// ProductoRepository define el puerto de lectura del catálogo. El catálogo lo
// administra otro módulo; el motor de ventas solo lee.
type ProductoRepository interface {
	GetByID(id string) (*entity.Producto, error)
	// GetLote obtiene varios productos en una sola ida al store, indexados por ID.
	GetLote(ids []string) (map[string]*entity.Producto, error)
	List() ([]*entity.Producto, error)
}
