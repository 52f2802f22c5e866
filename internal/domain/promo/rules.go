package promo

import "time"

// Config agrupa las promociones configuradas de un producto: una regla por día
// de la semana, una promoción de cantidad ("compra N lleva 1 gratis") y una de
// temporada. Es un catálogo cerrado: el motor evalúa este conjunto fijo, no
// compone reglas arbitrarias.
type Config struct {
	Dias      [7]ReglaDia     `json:"dias"` // indexado por time.Weekday (0 = domingo)
	Cantidad  *ReglaCantidad  `json:"cantidad,omitempty"`
	Temporada *ReglaTemporada `json:"temporada,omitempty"`
}

// ReglaDia es un descuento porcentual válido solo el día de la semana configurado.
type ReglaDia struct {
	Porcentaje int       `json:"porcentaje"`
	Desde      time.Time `json:"desde"`
	Hasta      time.Time `json:"hasta"`
	Monedero   bool      `json:"monedero"`
}

// ReglaCantidad es la promoción "compra N lleva 1 gratis", con N en {2, 3, 4}.
type ReglaCantidad struct {
	N     int       `json:"n"`
	Desde time.Time `json:"desde"`
	Hasta time.Time `json:"hasta"`
}

// ReglaTemporada es un descuento porcentual de temporada, independiente del día.
type ReglaTemporada struct {
	Porcentaje int       `json:"porcentaje"`
	Desde      time.Time `json:"desde"`
	Hasta      time.Time `json:"hasta"`
	Monedero   bool      `json:"monedero"`
}

// vigente compara por día calendario completo (no por instante): la regla aplica
// si el día de hoy cae dentro de [desde, hasta] inclusive. Cada fecha se compara
// con el año/mes/día que tiene en su propia zona.
func vigente(desde, hasta, hoy time.Time) bool {
	d := soloFecha(desde)
	h := soloFecha(hasta)
	t := soloFecha(hoy)
	return !t.Before(d) && !t.After(h)
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Activa indica si la regla del día aplica hoy.
func (r ReglaDia) Activa(hoy time.Time) bool {
	return r.Porcentaje > 0 && vigente(r.Desde, r.Hasta, hoy)
}

// Activa indica si la promoción de cantidad aplica hoy.
func (r *ReglaCantidad) Activa(hoy time.Time) bool {
	return r != nil && r.N >= 2 && r.N <= 4 && vigente(r.Desde, r.Hasta, hoy)
}

// Activa indica si la regla de temporada aplica hoy.
func (r *ReglaTemporada) Activa(hoy time.Time) bool {
	return r != nil && r.Porcentaje > 0 && vigente(r.Desde, r.Hasta, hoy)
}
