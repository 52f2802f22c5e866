package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoMonederoResponse una entrada del ledger del monedero.
type MovimientoMonederoResponse struct {
	FarmaciaID string          `json:"farmacia_id"`
	Abono      decimal.Decimal `json:"abono"`
	Cargo      decimal.Decimal `json:"cargo"`
	Motivo     string          `json:"motivo"`
	Fecha      time.Time       `json:"fecha"`
}

// MonederoResponse saldo vigente más el ledger del cliente.
type MonederoResponse struct {
	ClienteID   string                       `json:"cliente_id"`
	Nombre      string                       `json:"nombre"`
	Saldo       decimal.Decimal              `json:"saldo"`
	Movimientos []MovimientoMonederoResponse `json:"movimientos"`
}
