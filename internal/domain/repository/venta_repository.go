package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// VentaRepository define el puerto de persistencia de ventas. Create y
// CreateDetalle se usan solo dentro de la transacción del orquestador; una
// venta persistida no se modifica jamás.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	CreateDetalle(detalle *entity.DetalleVenta) error
	GetByID(id string) (*entity.Venta, error)
	GetDetalles(ventaID string) ([]*entity.DetalleVenta, error)
}
