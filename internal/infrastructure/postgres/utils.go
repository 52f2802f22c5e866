package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation de PostgreSQL.
const codigoUnicidad = "23505"

// isUniqueViolation detecta violaciones de constraint único para traducirlas a
// errores de dominio (p. ej. email de empleado duplicado).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codigoUnicidad
}
