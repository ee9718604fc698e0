package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx, para que los repos funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translateWrite traduce errores de escritura a errores de dominio.
// En inserciones/actualizaciones una FK rota es entrada inválida; en borrados es conflicto.
func translateWrite(op string, err error, deleting bool) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	case isForeignKeyViolation(err) && deleting:
		return fmt.Errorf("%w: %s: existen registros que dependen de este", domain.ErrConflict, op)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: referencia inexistente", domain.ErrInvalidInput, op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func expectRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
