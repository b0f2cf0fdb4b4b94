package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	pgNotNullViolation    = "23502"
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgUndefinedTable      = "42P01"
	errOperationFailedFmt = "%s %s: %w"
)

// translate converte erros do driver nos sentinels do domínio.
// Um id que não é UUID válido é tratado como registro inexistente.
func translate(err error, op, table string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgInvalidTextRepr:
			return entity.ErrNotFound
		case pgNotNullViolation:
			return fmt.Errorf("%w: %s", entity.ErrMissingField, pqErr.Column)
		}
	}

	return fmt.Errorf(errOperationFailedFmt, op, table, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUndefinedTable
}
