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

func TestCriarCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)

	bairro := "Centro"
	resp, err := svc.Criar(context.Background(), dto.CriarClienteRequest{
		Nome:     "João Silva",
		Telefone: "5511999990000",
		Bairro:   &bairro,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ativo)
	assert.Equal(t, "João Silva", resp.Nome)
	require.NotNil(t, resp.Bairro)
	assert.Equal(t, "Centro", *resp.Bairro)
}

func TestAtualizarCliente_Parcial(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	bairro := "Centro"
	cliente := seedCliente(repo, "Maria", "5511988880000")
	cliente.Bairro = &bairro

	// Only the telefone changes; nome and bairro stay as they were
	resp, err := svc.Atualizar(context.Background(), cliente.ID, dto.AtualizarClienteRequest{
		Telefone: "5511900001111",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", resp.Nome)
	assert.Equal(t, "5511900001111", resp.Telefone)
	require.NotNil(t, resp.Bairro)
	assert.Equal(t, "Centro", *resp.Bairro)
}

func TestDesativarEReativarCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	cliente := seedCliente(repo, "Pedro", "5511977770000")

	require.NoError(t, svc.Desativar(context.Background(), cliente.ID))
	stored, _ := repo.FindByID(context.Background(), cliente.ID)
	assert.False(t, stored.Ativo)

	require.NoError(t, svc.Reativar(context.Background(), cliente.ID))
	stored, _ = repo.FindByID(context.Background(), cliente.ID)
	assert.True(t, stored.Ativo)
}

func TestObterCliente_NaoEncontrado(t *testing.T) {
	svc := NewClienteService(newStubClienteRepo())

	_, err := svc.ObterPorID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNaoEncontrado, apierror.KindOf(err))
	assert.EqualError(t, err, "Cliente não encontrado")
}

func TestListBairros(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	centro := "Centro"
	c1 := seedCliente(repo, "A", "5511900000001")
	c1.Bairro = &centro
	c2 := seedCliente(repo, "B", "5511900000002")
	c2.Bairro = &centro

	bairros, err := svc.ListBairros(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Centro"}, bairros)
}
