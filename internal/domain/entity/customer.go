package entity

import (
	"time"

	"github.com/farmapunto/pos-api/internal/domain/money"
)

// Cliente es un cliente registrado con monedero de lealtad. SaldoMonedero es un
// cache del acumulado del ledger: siempre debe igualar la suma corrida de
// MovimientoMonedero y nunca puede quedar negativo.
type Cliente struct {
	ID            string
	Nombre        string
	Telefono      string
	INAPAM        bool // acreditó credencial de la tercera edad
	SaldoMonedero money.Cents
	CreadoEn      time.Time
	ActualizadoEn time.Time
}

// MovimientoMonedero es una entrada inmutable del ledger del monedero
// (solo-apéndice; las correcciones se registran como movimientos nuevos).
type MovimientoMonedero struct {
	ID         string
	ClienteID  string
	FarmaciaID string
	Abono      money.Cents
	Cargo      money.Cents
	Motivo     string
	Fecha      time.Time
}
