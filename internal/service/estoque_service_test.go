package service

import (
	"context"
	"testing"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEstoqueSvc() (EstoqueService, *stubProdutoRepo, *stubMovimentoEstoqueRepo) {
	produtoRepo := newStubProdutoRepo()
	movRepo := &stubMovimentoEstoqueRepo{}
	return NewEstoqueService(produtoRepo, movRepo), produtoRepo, movRepo
}

func TestRegistrarEntrada(t *testing.T) {
	svc, produtoRepo, movRepo := buildEstoqueSvc()
	produto := seedProduto(produtoRepo, "Botijão P13", "gas", "110.00", 4)

	resp, err := svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  produto.ID.String(),
		Quantidade: 20,
		Motivo:     "Carga da distribuidora",
	})
	require.NoError(t, err)
	assert.Equal(t, "entrada", resp.Tipo)
	assert.Equal(t, 20, resp.Quantidade)
	assert.Equal(t, 4, resp.EstoqueAnterior)
	assert.Equal(t, 24, resp.EstoqueNovo)
	assert.Equal(t, 24, produtoRepo.produtos[produto.ID].Estoque)
	require.Len(t, movRepo.movimentos, 1)
}

func TestRegistrarAvaria(t *testing.T) {
	svc, produtoRepo, _ := buildEstoqueSvc()
	produto := seedProduto(produtoRepo, "Galão 20L", "agua", "12.00", 10)

	resp, err := svc.RegistrarAvaria(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  produto.ID.String(),
		Quantidade: 3,
		Motivo:     "Galões furados na entrega",
	})
	require.NoError(t, err)
	assert.Equal(t, "avaria", resp.Tipo)
	assert.Equal(t, -3, resp.Quantidade)
	assert.Equal(t, 7, resp.EstoqueNovo)
	assert.Equal(t, 7, produtoRepo.produtos[produto.ID].Estoque)
}

func TestRegistrarAvaria_MaiorQueEstoque(t *testing.T) {
	svc, produtoRepo, movRepo := buildEstoqueSvc()
	produto := seedProduto(produtoRepo, "Galão 20L", "agua", "12.00", 2)

	_, err := svc.RegistrarAvaria(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  produto.ID.String(),
		Quantidade: 5,
		Motivo:     "Queda da pilha",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindRegraNegocio, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Avaria maior que o estoque")

	// Stock untouched, no ledger row
	assert.Equal(t, 2, produtoRepo.produtos[produto.ID].Estoque)
	assert.Empty(t, movRepo.movimentos)
}

func TestRegistrarEntrada_ProdutoInexistente(t *testing.T) {
	svc, _, _ := buildEstoqueSvc()

	_, err := svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  uuid.NewString(),
		Quantidade: 5,
		Motivo:     "Carga",
	})
	assert.Equal(t, apierror.KindNaoEncontrado, apierror.KindOf(err))
}

func TestListMovimentos_FiltraPorTipo(t *testing.T) {
	svc, produtoRepo, _ := buildEstoqueSvc()
	produto := seedProduto(produtoRepo, "Botijão P45", "gas", "420.00", 10)

	_, err := svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID: produto.ID.String(), Quantidade: 5, Motivo: "Carga",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarAvaria(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID: produto.ID.String(), Quantidade: 1, Motivo: "Vazamento",
	})
	require.NoError(t, err)

	list, err := svc.ListMovimentos(context.Background(), dto.MovimentoEstoqueFilter{Tipo: "avaria"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "avaria", list.Data[0].Tipo)
}
