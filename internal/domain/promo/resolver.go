package promo

import (
	"fmt"
	"time"

	"github.com/farmapunto/pos-api/internal/domain/money"
)

// Etiquetas de promoción que viajan en cada línea de venta.
const (
	EtiquetaNinguno   = "Ninguno"
	EtiquetaCliente   = "Cliente"
	EtiquetaINAPAM    = "INAPAM"
	EtiquetaTemporada = "Temporada"
)

var nombresDia = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// categoriasSinMonedero no acumulan abono de lealtad aunque el cliente esté registrado.
var categoriasSinMonedero = map[string]bool{
	"Recargas":        true,
	"Servicio Médico": true,
}

// topeINAPAM: el 5% adicional de INAPAM solo se apila si el descuento ya aplicado
// es estrictamente menor a este porcentaje. Evita apilar sobre promociones profundas.
const topeINAPAM = 25

// porcentajeMonedero es el abono de lealtad sobre el precio final de la unidad.
const porcentajeMonedero = 2

// Flags del contexto de la venta que afectan la resolución de precio.
type Flags struct {
	ClienteRegistrado bool
	ClienteINAPAM     bool // el cliente pidió y acreditó el descuento de la tercera edad
	AplicaINAPAM      bool // el producto es elegible para INAPAM
}

// Decision es el precio resuelto para una unidad junto con su etiqueta,
// anotación y elegibilidad de monedero.
type Decision struct {
	PrecioUnitario    money.Cents
	PrecioOriginal    money.Cents
	DescuentoUnitario money.Cents
	Etiqueta          string
	Anotacion         string
	Monedero          bool
}

// AbonoUnitario devuelve el abono de monedero por unidad pagada (2% del precio
// final), o cero si la línea no es elegible.
func (d Decision) AbonoUnitario() money.Cents {
	if !d.Monedero {
		return 0
	}
	return money.Porcentaje(d.PrecioUnitario, porcentajeMonedero)
}

// Resolver calcula el mejor precio unitario aplicable hoy para unidades que NO
// están cubiertas por una promoción de cantidad activa (esa exclusión la decide
// el asignador, ver allocator.go). Es una función pura: no toca el store.
//
// Orden de evaluación:
//  1. regla del día de la semana de hoy
//  2. temporada, solo si queda estrictamente más barata
//  3. apilado INAPAM (5% adicional, tope 25% de descuento previo)
//  4. default de lealtad para clientes registrados (Cliente / INAPAM-Cliente, 2%)
//  5. Ninguno
func Resolver(cfg Config, precioBase money.Cents, categoria string, hoy time.Time, f Flags) Decision {
	precio := precioBase
	etiqueta := ""
	anotacion := ""
	monedero := false

	dia := cfg.Dias[hoy.Weekday()]
	if dia.Activa(hoy) {
		precio = money.AplicarDescuento(precioBase, dia.Porcentaje)
		etiqueta = nombresDia[hoy.Weekday()]
		anotacion = fmt.Sprintf("%d%%", dia.Porcentaje)
		monedero = dia.Monedero
	}

	if cfg.Temporada.Activa(hoy) {
		precioTemporada := money.AplicarDescuento(precioBase, cfg.Temporada.Porcentaje)
		if etiqueta == "" || precioTemporada < precio {
			precio = precioTemporada
			etiqueta = EtiquetaTemporada
			anotacion = fmt.Sprintf("%d%%", cfg.Temporada.Porcentaje)
			monedero = cfg.Temporada.Monedero
		}
	}

	if f.AplicaINAPAM && f.ClienteINAPAM && descuentoMenorA(precioBase, precio, topeINAPAM) {
		precio = money.AplicarDescuento(precio, 5)
		if etiqueta == "" {
			etiqueta = EtiquetaINAPAM
			anotacion = "5%"
		} else {
			etiqueta += "-" + EtiquetaINAPAM
			anotacion += "+5%"
		}
	}

	if f.ClienteRegistrado && !categoriasSinMonedero[categoria] {
		switch etiqueta {
		case "":
			// Sin descuento pero cliente registrado: acumula monedero de todas formas.
			etiqueta = EtiquetaCliente
			monedero = true
		case EtiquetaINAPAM:
			etiqueta = EtiquetaINAPAM + "-" + EtiquetaCliente
			monedero = true
		}
	}

	if etiqueta == "" {
		etiqueta = EtiquetaNinguno
	}

	return Decision{
		PrecioUnitario:    precio,
		PrecioOriginal:    precioBase,
		DescuentoUnitario: precioBase - precio,
		Etiqueta:          etiqueta,
		Anotacion:         anotacion,
		Monedero:          monedero,
	}
}

// ResolverPagadasCantidad calcula el precio de las unidades PAGADAS de una línea
// cubierta por una promoción de cantidad activa. Mientras la promoción de cantidad
// esté vigente para el producto, los descuentos de día y temporada no aplican
// (exclusión mutua intencional); solo se apila INAPAM sobre el precio base.
// Estas unidades no acumulan monedero.
func ResolverPagadasCantidad(asig Asignacion, precioBase money.Cents, f Flags) Decision {
	precio := precioBase
	etiqueta := asig.Etiqueta()
	anotacion := ""
	if f.AplicaINAPAM && f.ClienteINAPAM {
		// Descuento previo 0%, siempre debajo del tope.
		precio = money.AplicarDescuento(precio, 5)
		etiqueta += "-" + EtiquetaINAPAM
		anotacion = "5%"
	}
	return Decision{
		PrecioUnitario:    precio,
		PrecioOriginal:    precioBase,
		DescuentoUnitario: precioBase - precio,
		Etiqueta:          etiqueta,
		Anotacion:         anotacion,
		Monedero:          false,
	}
}

// ResolverGratisCantidad arma la decisión de las unidades GRATIS: precio cero,
// descuento igual al precio base completo, sin monedero.
func ResolverGratisCantidad(asig Asignacion, precioBase money.Cents) Decision {
	return Decision{
		PrecioUnitario:    0,
		PrecioOriginal:    precioBase,
		DescuentoUnitario: precioBase,
		Etiqueta:          asig.EtiquetaGratis(),
		Anotacion:         "100%",
		Monedero:          false,
	}
}

// descuentoMenorA verifica en aritmética entera exacta que el descuento base→precio
// sea estrictamente menor a pct% del precio base.
func descuentoMenorA(base, precio money.Cents, pct int) bool {
	return 100*int64(base-precio) < int64(pct)*int64(base)
}
