package dto

import "github.com/shopspring/decimal"

// ProductoResponse salida de catálogo (lectura; la administración del catálogo
// vive en otro módulo).
type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	Costo        decimal.Decimal `json:"costo"`
	AplicaINAPAM bool            `json:"aplica_inapam"`
}
