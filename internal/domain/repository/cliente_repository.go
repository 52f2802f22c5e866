package repository

import (
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
)

// ClienteRepository define el puerto de clientes y su monedero de lealtad.
type ClienteRepository interface {
	GetByID(id string) (*entity.Cliente, error)
	// GetForUpdate bloquea el renglón del cliente (SELECT FOR UPDATE) para
	// revalidar el saldo dentro de la transacción de venta.
	GetForUpdate(id string) (*entity.Cliente, error)
	ActualizarSaldo(id string, saldo money.Cents) error
	CrearMovimiento(mov *entity.MovimientoMonedero) error
	ListMovimientos(clienteID string) ([]*entity.MovimientoMonedero, error)
}
