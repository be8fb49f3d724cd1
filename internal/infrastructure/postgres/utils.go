package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de violación de índice único; en este esquema solo lo produce el
// email duplicado dentro de un pool.
const codeUniqueViolation = "23505"

// isUniqueViolation indica si el error del store es una colisión de clave única.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
