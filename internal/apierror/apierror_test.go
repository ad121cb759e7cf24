package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validacao("quantidade deve ser maior que zero"), http.StatusBadRequest},
		{RegraNegocio("Estoque insuficiente"), http.StatusBadRequest},
		{NaoEncontrado("Cliente não encontrado"), http.StatusNotFound},
		{Conflito("Já existe um caixa aberto para este usuário"), http.StatusConflict},
		{Infra(errors.New("connection refused")), http.StatusInternalServerError},
		{errors.New("erro qualquer"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), "err: %v", tc.err)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("registrar venda: %w", RegraNegocio("Estoque insuficiente"))
	assert.Equal(t, KindRegraNegocio, KindOf(wrapped))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestInfra_NaoVazaDetalhe(t *testing.T) {
	cause := errors.New("pq: connection reset by peer")
	err := Infra(cause)
	assert.Equal(t, "Erro interno do servidor", err.Error())
	assert.ErrorIs(t, err, cause)
}
