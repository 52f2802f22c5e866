package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmapunto/pos-api/internal/domain"
)

// Cents representa un monto en centavos (unidades menores de peso).
// Toda la aritmética interna del motor de ventas se hace en centavos;
// los decimales solo aparecen en la frontera (HTTP y columnas NUMERIC).
type Cents int64

// FromDecimal convierte un monto decimal a centavos con redondeo bancario
// a dos posiciones (half-even), igual que lo hace el punto de venta al capturar pagos.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.RoundBank(2).Shift(2).IntPart())
}

// Decimal devuelve el monto como decimal con dos posiciones.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formatea el monto para mensajes de error y logs ("$80.00").
func (c Cents) String() string {
	return "$" + c.Decimal().StringFixed(2)
}

// AplicarDescuento devuelve el precio tras aplicar un descuento porcentual,
// redondeado al centavo (bancario). Porcentajes fuera de [0,100] no descuentan.
func AplicarDescuento(precio Cents, porcentaje int) Cents {
	if porcentaje <= 0 || porcentaje > 100 {
		return precio
	}
	factor := decimal.New(int64(100-porcentaje), -2)
	return FromDecimal(precio.Decimal().Mul(factor))
}

// Porcentaje devuelve el pct% de un monto, redondeado al centavo (bancario).
// Se usa para el abono de monedero (2% del precio final).
func Porcentaje(monto Cents, pct int) Cents {
	return FromDecimal(monto.Decimal().Mul(decimal.New(int64(pct), -2)))
}

// Pago es el desglose de instrumentos ya convertido a centavos.
type Pago struct {
	Efectivo      Cents
	Tarjeta       Cents
	Transferencia Cents
	Monedero      Cents
}

// Suma devuelve el total pagado entre los cuatro instrumentos.
func (p Pago) Suma() Cents {
	return p.Efectivo + p.Tarjeta + p.Transferencia + p.Monedero
}

// toleranciaCentavos absorbe el ruido de redondeo por línea que arrastra el
// cliente al capturar montos: un centavo de diferencia se acepta, dos no.
const toleranciaCentavos = 1

// ConciliarPago convierte los montos recibidos a centavos y los coteja contra el
// total calculado de la venta. Corre antes de abrir la transacción; si descuadra,
// el error incluye ambos montos legibles y no se escribe nada.
func ConciliarPago(efectivo, tarjeta, transferencia, monedero decimal.Decimal, total Cents) (Pago, error) {
	p := Pago{
		Efectivo:      FromDecimal(efectivo),
		Tarjeta:       FromDecimal(tarjeta),
		Transferencia: FromDecimal(transferencia),
		Monedero:      FromDecimal(monedero),
	}
	diff := int64(p.Suma() - total)
	if diff < 0 {
		diff = -diff
	}
	if diff > toleranciaCentavos {
		return Pago{}, fmt.Errorf("%w: pagado %s, total %s", domain.ErrPagoDescuadrado, p.Suma(), total)
	}
	return p, nil
}
