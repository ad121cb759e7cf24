package service

import (
	"errors"
	"testing"

	"crmgas/internal/apierror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate_RecordNotFound(t *testing.T) {
	err := translate(gorm.ErrRecordNotFound, "Produto não encontrado")
	assert.Equal(t, apierror.KindNaoEncontrado, apierror.KindOf(err))
	assert.EqualError(t, err, "Produto não encontrado")
}

func TestTranslate_PassthroughKind(t *testing.T) {
	orig := apierror.RegraNegocio("Estoque insuficiente")
	assert.Same(t, orig, translate(orig, "ignorado").(*apierror.Error))
}

func TestTranslate_LockTimeout(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "55P03"}, "")
	assert.Equal(t, apierror.KindConflito, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Operação concorrente")
}

func TestTranslate_CaixaDuplicado(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "uq_caixas_aberto_por_usuario"}, "")
	assert.Equal(t, apierror.KindConflito, apierror.KindOf(err))
	assert.ErrorContains(t, err, "caixa aberto")
}

func TestTranslate_UniqueGenerico(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_username_key"}, "")
	assert.Equal(t, apierror.KindConflito, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Registro duplicado")
}

func TestTranslate_CheckEstoque(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23514", ConstraintName: "chk_produtos_estoque_nao_negativo"}, "")
	assert.Equal(t, apierror.KindRegraNegocio, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Estoque insuficiente")
}

func TestTranslate_Desconhecido(t *testing.T) {
	err := translate(errors.New("conexão recusada"), "")
	assert.Equal(t, apierror.KindInfra, apierror.KindOf(err))
	// Internal detail never leaks to the client-facing message
	assert.EqualError(t, err, "Erro interno do servidor")
}
