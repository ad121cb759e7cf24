package service

import (
	"context"
	"testing"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCaixaSvc() (CaixaService, *stubCaixaRepo, *stubUsuarioRepo, uuid.UUID) {
	caixaRepo := newStubCaixaRepo()
	usuarioRepo := newStubUsuarioRepo()
	u := &model.Usuario{ID: uuid.New(), Username: "operador1", Nome: "Operador", Rol: "operador", Ativo: true}
	usuarioRepo.usuarios[u.ID] = u
	svc := NewCaixaService(caixaRepo, usuarioRepo, nil, "")
	return svc, caixaRepo, usuarioRepo, u.ID
}

func TestAbrirCaixa(t *testing.T) {
	svc, _, _, usuarioID := buildCaixaSvc()

	resp, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "aberto", resp.Estado)
	assert.Equal(t, "150.00", resp.SaldoInicial.StringFixed(2))
	assert.Equal(t, usuarioID.String(), resp.UsuarioID)
}

func TestAbrirCaixa_JaAberto(t *testing.T) {
	svc, _, _, usuarioID := buildCaixaSvc()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("50.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflito, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Já existe um caixa aberto")
}

func TestAbrirCaixa_OutroUsuarioNaoConflita(t *testing.T) {
	svc, _, usuarioRepo, usuarioID := buildCaixaSvc()
	outro := &model.Usuario{ID: uuid.New(), Username: "operador2", Nome: "Outro", Rol: "operador", Ativo: true}
	usuarioRepo.usuarios[outro.ID] = outro

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	// The one-open-caixa rule is per operator
	_, err = svc.Abrir(context.Background(), outro.ID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("80.00"),
	})
	assert.NoError(t, err)
}

func TestAbrirCaixa_SaldoNegativo(t *testing.T) {
	svc, _, _, usuarioID := buildCaixaSvc()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("-10.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidacao, apierror.KindOf(err))
}

func TestFecharCaixa_SemDiferenca(t *testing.T) {
	svc, caixaRepo, _, usuarioID := buildCaixaSvc()

	aberto, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	// One sale of 76.50 recorded on the caixa ledger
	require.NoError(t, caixaRepo.CreateMovimentoTx(nil, &model.MovimentoCaixa{
		CaixaID:   uuid.MustParse(aberto.ID),
		Tipo:      "venda",
		Valor:     decimal.RequireFromString("76.50"),
		Descricao: "Venda Botijão P13 x3",
	}))

	resp, err := svc.Fechar(context.Background(), usuarioID, dto.FecharCaixaRequest{
		SaldoContado: decimal.RequireFromString("176.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "176.50", resp.SaldoEsperado.StringFixed(2))
	assert.Equal(t, "0.00", resp.Diferenca.StringFixed(2))
	assert.Equal(t, "fechado", resp.Estado)

	fechado, err := caixaRepo.FindByID(context.Background(), uuid.MustParse(aberto.ID))
	require.NoError(t, err)
	assert.Equal(t, "fechado", fechado.Estado)
	require.NotNil(t, fechado.FechadoEm)
}

func TestFecharCaixa_ComFalta(t *testing.T) {
	svc, caixaRepo, _, usuarioID := buildCaixaSvc()

	aberto, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	require.NoError(t, caixaRepo.CreateMovimentoTx(nil, &model.MovimentoCaixa{
		CaixaID:   uuid.MustParse(aberto.ID),
		Tipo:      "venda",
		Valor:     decimal.RequireFromString("76.50"),
		Descricao: "Venda",
	}))

	resp, err := svc.Fechar(context.Background(), usuarioID, dto.FecharCaixaRequest{
		SaldoContado: decimal.RequireFromString("170.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-6.50", resp.Diferenca.StringFixed(2))
}

func TestFecharCaixa_EstornoEntraNaSoma(t *testing.T) {
	svc, caixaRepo, _, usuarioID := buildCaixaSvc()

	aberto, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	caixaID := uuid.MustParse(aberto.ID)

	// Sale then its reversal: expected balance returns to the opening float
	require.NoError(t, caixaRepo.CreateMovimentoTx(nil, &model.MovimentoCaixa{
		CaixaID: caixaID, Tipo: "venda", Valor: decimal.RequireFromString("110.00"), Descricao: "Venda",
	}))
	require.NoError(t, caixaRepo.CreateMovimentoTx(nil, &model.MovimentoCaixa{
		CaixaID: caixaID, Tipo: "estorno", Valor: decimal.RequireFromString("-110.00"), Descricao: "Estorno",
	}))

	resp, err := svc.Fechar(context.Background(), usuarioID, dto.FecharCaixaRequest{
		SaldoContado: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.SaldoEsperado.StringFixed(2))
	assert.Equal(t, "0.00", resp.Diferenca.StringFixed(2))
}

func TestFecharCaixa_SemCaixaAberto(t *testing.T) {
	svc, _, _, usuarioID := buildCaixaSvc()

	_, err := svc.Fechar(context.Background(), usuarioID, dto.FecharCaixaRequest{
		SaldoContado: decimal.RequireFromString("100.00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindRegraNegocio, apierror.KindOf(err))
	assert.ErrorContains(t, err, "Não há caixa aberto")
}

func TestGetAtual_CalculaSaldoEsperado(t *testing.T) {
	svc, caixaRepo, _, usuarioID := buildCaixaSvc()

	aberto, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	require.NoError(t, caixaRepo.CreateMovimentoTx(nil, &model.MovimentoCaixa{
		CaixaID: uuid.MustParse(aberto.ID), Tipo: "venda",
		Valor: decimal.RequireFromString("25.50"), Descricao: "Venda",
	}))

	atual, err := svc.GetAtual(context.Background(), usuarioID)
	require.NoError(t, err)
	require.NotNil(t, atual.SaldoEsperado)
	assert.Equal(t, "75.50", atual.SaldoEsperado.StringFixed(2))
}

func TestReabrirAposFechamento(t *testing.T) {
	svc, _, _, usuarioID := buildCaixaSvc()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	_, err = svc.Fechar(context.Background(), usuarioID, dto.FecharCaixaRequest{
		SaldoContado: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	// A fresh caixa can be opened once the previous one is fechado
	_, err = svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		SaldoInicial: decimal.RequireFromString("120.00"),
	})
	assert.NoError(t, err)
}
