package service

import (
	"context"
	"testing"
	"time"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVenda(r *stubVendaRepo, valor string, estado string, criada time.Time) {
	v := &model.Venda{
		ID:         uuid.New(),
		ClienteID:  uuid.New(),
		ProdutoID:  uuid.New(),
		UsuarioID:  uuid.New(),
		Quantidade: 1,
		ValorTotal: decimal.RequireFromString(valor),
		Estado:     estado,
		CreatedAt:  criada,
	}
	r.vendas[v.ID] = v
}

func TestLucro(t *testing.T) {
	vendaRepo := newStubVendaRepo()
	svc := NewRelatorioService(vendaRepo, newStubClienteRepo())

	dia := func(d string) time.Time {
		ts, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		return ts.Add(10 * time.Hour)
	}
	seedVenda(vendaRepo, "110.00", "concluida", dia("2026-08-01"))
	seedVenda(vendaRepo, "25.50", "concluida", dia("2026-08-05"))
	// On the last day of the period — fim is inclusive
	seedVenda(vendaRepo, "12.00", "concluida", dia("2026-08-10"))
	// Excluded: estornada, and outside the period
	seedVenda(vendaRepo, "999.00", "estornada", dia("2026-08-05"))
	seedVenda(vendaRepo, "50.00", "concluida", dia("2026-08-11"))

	resp, err := svc.Lucro(context.Background(), dto.LucroFilter{Inicio: "2026-08-01", Fim: "2026-08-10"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Vendas)
	assert.Equal(t, "147.50", resp.Total.StringFixed(2))
}

func TestLucro_DatasInvalidas(t *testing.T) {
	svc := NewRelatorioService(newStubVendaRepo(), newStubClienteRepo())

	_, err := svc.Lucro(context.Background(), dto.LucroFilter{Inicio: "01/08/2026", Fim: "2026-08-10"})
	assert.Equal(t, apierror.KindValidacao, apierror.KindOf(err))

	_, err = svc.Lucro(context.Background(), dto.LucroFilter{Inicio: "2026-08-10", Fim: "2026-08-01"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "anterior a inicio")
}

func TestClientesPorBairro(t *testing.T) {
	clienteRepo := newStubClienteRepo()
	svc := NewRelatorioService(newStubVendaRepo(), clienteRepo)

	centro := "Centro"
	jardim := "Jardim América"
	for i := 0; i < 3; i++ {
		c := seedCliente(clienteRepo, "Cliente Centro", "5511900000000")
		c.Bairro = &centro
	}
	c := seedCliente(clienteRepo, "Cliente Jardim", "5511911111111")
	c.Bairro = &jardim
	inativo := seedCliente(clienteRepo, "Inativo", "5511922222222")
	inativo.Bairro = &centro
	inativo.Ativo = false

	items, err := svc.ClientesPorBairro(context.Background())
	require.NoError(t, err)

	counts := map[string]int64{}
	for _, item := range items {
		counts[item.Bairro] = item.Count
	}
	assert.Equal(t, int64(3), counts["Centro"])
	assert.Equal(t, int64(1), counts["Jardim América"])
}
