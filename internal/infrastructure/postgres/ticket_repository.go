package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository (usable con pool o tx).
// Solo expone la frontera de cierre por cobro; el resto del flujo de turnos
// vive en el módulo clínico.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// GetForUpdate recarga el ticket bloqueando el renglón (SELECT FOR UPDATE).
func (r *TicketRepo) GetForUpdate(id string) (*entity.TicketConsulta, error) {
	query := `
		SELECT id, farmacia_id, paciente, estado, cajero_id, venta_id, creado_en, actualizado_en
		FROM tickets_consulta WHERE id = $1
		FOR UPDATE`
	var t entity.TicketConsulta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.FarmaciaID, &t.Paciente, &t.Estado, &t.CajeroID, &t.VentaID, &t.CreadoEn, &t.ActualizadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// MarcarAtendido transiciona el ticket a atendido y liga la venta. El WHERE
// repite las precondiciones: si otro proceso movió el ticket entre la
// validación y este UPDATE, no se modifica renglón y se regresa error.
func (r *TicketRepo) MarcarAtendido(id, ventaID string) error {
	query := `
		UPDATE tickets_consulta
		SET estado = $3, venta_id = $2, actualizado_en = now()
		WHERE id = $1 AND estado = $4 AND venta_id IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, ventaID, entity.TicketAtendido, entity.TicketPorPagar)
	if err != nil {
		return fmt.Errorf("marcar atendido: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrCierreTicketFallido
	}
	return nil
}
