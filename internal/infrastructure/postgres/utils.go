package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// foreignKeyField devuelve la columna de una violación de llave foránea (23503), p.ej.
// stock_movements_supplier_id_fkey -> supplier_id.
func foreignKeyField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return "", false
	}
	field := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	field = strings.TrimPrefix(field, pgErr.TableName+"_")
	return field, true
}

// mapWriteError traduce errores de escritura a errores de dominio.
func mapWriteError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if field, ok := foreignKeyField(err); ok {
		return domain.NewValidationError(field, "referencia inexistente")
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
