package entity

import "time"

// Estados del ticket de consulta. El flujo completo de turnos vive en el módulo
// clínico; este core solo consume la transición por_pagar → atendido al cobrar.
const (
	TicketPorPagar = "por_pagar"
	TicketAtendido = "atendido"
)

// TicketConsulta es el ticket de una consulta médica pendiente de cobro.
// CajeroID queda fijado cuando un cajero lo toma en caja; si está fijado, solo
// ese cajero puede cerrar el ticket con una venta.
type TicketConsulta struct {
	ID         string
	FarmaciaID string
	Paciente   string
	Estado     string
	CajeroID   *string
	VentaID    *string
	CreadoEn   time.Time
	ActualizadoEn time.Time
}
