package entity

import "time"

// Farmacia es una sucursal. ZonaHoraria (nombre IANA, p. ej. "America/Mexico_City")
// define el día calendario local con el que se evalúa la vigencia de promociones.
type Farmacia struct {
	ID          string
	Nombre      string
	Direccion   string
	ZonaHoraria string
	CreadoEn    time.Time
}

// Ubicacion resuelve la zona horaria de la sucursal; si el nombre es inválido o
// está vacío regresa la zona local del servidor.
func (f *Farmacia) Ubicacion() *time.Location {
	if f.ZonaHoraria == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(f.ZonaHoraria)
	if err != nil {
		return time.Local
	}
	return loc
}
