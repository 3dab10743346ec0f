package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/storetrack-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateError lleva las violaciones de constraints a errores de dominio; el resto se envuelve con op.
func translateError(op string, err error) error {
	switch pgCode(err) {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s referencia un registro inexistente", domain.ErrNotFound, op)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s viola una restricción", domain.ErrInvalidInput, op)
	case codeUniqueViolation:
		return fmt.Errorf("%s: registro duplicado: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// argList acumula argumentos posicionales ($1, $2, ...) para consultas armadas dinámicamente.
type argList []any

func (a *argList) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
