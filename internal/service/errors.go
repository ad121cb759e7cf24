package service

import (
	"context"
	"errors"
	"strings"

	"crmgas/internal/apierror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
// Lock waits are bounded so a stuck client holding a row lock turns into
// a retryable conflito instead of an unbounded hang.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL lock_timeout = '3s'").Error; err != nil {
			return err
		}
		return fn(tx)
	})
}

// translate maps store errors onto the service error taxonomy. Errors that
// already carry a Kind pass through untouched, so business-rule errors
// raised inside a transaction survive the rollback path.
func translate(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	var ae *apierror.Error
	if errors.As(err, &ae) {
		return ae
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NaoEncontrado(notFoundMsg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			// serialization failure / deadlock / lock_timeout —
			// the whole operation can be retried from scratch
			return &apierror.Error{
				Kind:   apierror.KindConflito,
				Detail: "Operação concorrente em andamento, tente novamente",
				Err:    err,
			}
		case "23505":
			if strings.Contains(pgErr.ConstraintName, "uq_caixas_aberto") {
				return apierror.Conflito("Já existe um caixa aberto para este usuário")
			}
			return &apierror.Error{
				Kind:   apierror.KindConflito,
				Detail: "Registro duplicado",
				Err:    err,
			}
		case "23514":
			if strings.Contains(pgErr.ConstraintName, "estoque") {
				return apierror.RegraNegocio("Estoque insuficiente")
			}
		case "23503":
			return apierror.RegraNegocio("Registro referenciado não existe")
		}
	}

	return apierror.Infra(err)
}
