package usecase

import (
	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// ClienteUseCase consultas de clientes y su monedero.
type ClienteUseCase struct {
	clienteRepo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(clienteRepo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{clienteRepo: clienteRepo}
}

// GetMonedero devuelve el saldo vigente y el ledger completo del cliente.
func (uc *ClienteUseCase) GetMonedero(clienteID string) (*dto.MonederoResponse, error) {
	cliente, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.clienteRepo.ListMovimientos(clienteID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MonederoResponse{
		ClienteID:   cliente.ID,
		Nombre:      cliente.Nombre,
		Saldo:       cliente.SaldoMonedero.Decimal(),
		Movimientos: make([]dto.MovimientoMonederoResponse, 0, len(movs)),
	}
	for _, m := range movs {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoMonederoResponse{
			FarmaciaID: m.FarmaciaID,
			Abono:      m.Abono.Decimal(),
			Cargo:      m.Cargo.Decimal(),
			Motivo:     m.Motivo,
			Fecha:      m.Fecha,
		})
	}
	return resp, nil
}
