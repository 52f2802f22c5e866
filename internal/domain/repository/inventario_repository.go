package repository

import "github.com/farmapunto/pos-api/internal/domain/entity"

// InventarioRepository define el puerto de existencias por farmacia+producto.
type InventarioRepository interface {
	// GetLote lee en una sola consulta la existencia y precio de varios productos
	// en una farmacia. Productos sin renglón de inventario simplemente no aparecen.
	GetLote(farmaciaID string, productoIDs []string) (map[string]*entity.Inventario, error)
	// DescontarExistencia ejecuta el decremento condicional
	// "existencia = existencia - cantidad SOLO SI existencia >= cantidad".
	// Devuelve false si la condición no se cumplió (carrera con otra venta);
	// usado dentro de la transacción es la guarda optimista contra sobreventa.
	DescontarExistencia(farmaciaID, productoID string, cantidad int) (bool, error)
}
