package promo

import (
	"fmt"
	"time"

	"github.com/farmapunto/pos-api/internal/domain"
)

// Asignacion es el reparto de la cantidad solicitada de una línea entre unidades
// gratis y pagadas bajo la promoción "compra N lleva 1 gratis".
type Asignacion struct {
	Activa  bool // la regla de cantidad aplica hoy
	N       int
	Gratis  int
	Pagadas int
}

// AsignarCantidad reparte la cantidad total de una línea. Con la regla activa,
// gratis = floor(cantidad / N) y el resto se paga. Con la regla inactiva todo se paga.
func AsignarCantidad(regla *ReglaCantidad, hoy time.Time, cantidad int) Asignacion {
	if !regla.Activa(hoy) {
		return Asignacion{Pagadas: cantidad}
	}
	gratis := cantidad / regla.N
	return Asignacion{
		Activa:  true,
		N:       regla.N,
		Gratis:  gratis,
		Pagadas: cantidad - gratis,
	}
}

// ValidarDeclaradas coteja las unidades gratis que declaró el cliente (líneas con
// precio cero) contra el reparto calculado por el servidor. Cualquier diferencia
// tumba la venta completa antes de cualquier escritura; también se rechaza declarar
// gratis cuando la regla no está vigente.
func (a Asignacion) ValidarDeclaradas(declaradas int) error {
	if declaradas == a.Gratis {
		return nil
	}
	return fmt.Errorf("%w: declaradas %d, corresponden %d", domain.ErrPromoCantidadNoCoincide, declaradas, a.Gratis)
}

// EtiquetaGratis es la etiqueta de las unidades regaladas, p. ej. "3x2-Gratis".
func (a Asignacion) EtiquetaGratis() string {
	return a.Etiqueta() + "-Gratis"
}

// Etiqueta es la etiqueta base de la promoción, p. ej. "3x2".
func (a Asignacion) Etiqueta() string {
	return fmt.Sprintf("%dx%d", a.N, a.N-1)
}
