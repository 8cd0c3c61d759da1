package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para traducir errores de integridad.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	e, ok := pgError(err)
	return ok && e.Code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	e, ok := pgError(err)
	return ok && e.Code == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	e, ok := pgError(err)
	return ok && e.Code == codeCheckViolation
}

// constraintName nombre de la restricción violada (vacío si no es un error de PostgreSQL).
func constraintName(err error) string {
	if e, ok := pgError(err); ok {
		return e.ConstraintName
	}
	return ""
}
