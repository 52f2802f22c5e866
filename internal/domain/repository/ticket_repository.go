package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// TicketRepository define el puerto del ticket de consulta en su frontera de
// cierre por cobro. El resto del flujo de turnos vive en el módulo clínico.
type TicketRepository interface {
	// GetForUpdate recarga el ticket bloqueando el renglón, para validar sus
	// precondiciones dentro de la transacción de venta.
	GetForUpdate(id string) (*entity.TicketConsulta, error)
	// MarcarAtendido transiciona el ticket a atendido y liga la venta.
	MarcarAtendido(id, ventaID string) error
}
