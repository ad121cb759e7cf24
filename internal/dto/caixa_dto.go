package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type FecharCaixaRequest struct {
	SaldoContado decimal.Decimal `json:"saldo_contado" validate:"min=0"`
	Observacoes  *string         `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID            string           `json:"id"`
	UsuarioID     string           `json:"usuario_id"`
	SaldoInicial  decimal.Decimal  `json:"saldo_inicial"`
	SaldoEsperado *decimal.Decimal `json:"saldo_esperado,omitempty"`
	SaldoContado  *decimal.Decimal `json:"saldo_contado,omitempty"`
	Diferenca     *decimal.Decimal `json:"diferenca,omitempty"`
	Estado        string           `json:"estado"`
	Observacoes   *string          `json:"observacoes,omitempty"`
	AbertoEm      string           `json:"aberto_em"`
	FechadoEm     *string          `json:"fechado_em,omitempty"`
}

type FechamentoResponse struct {
	CaixaID       string          `json:"caixa_id"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	SaldoContado  decimal.Decimal `json:"saldo_contado"`
	Diferenca     decimal.Decimal `json:"diferenca"`
	Estado        string          `json:"estado"`
}

type MovimentoCaixaResponse struct {
	ID             string          `json:"id"`
	Tipo           string          `json:"tipo"`
	FormaPagamento *string         `json:"forma_pagamento,omitempty"`
	Valor          decimal.Decimal `json:"valor"`
	Descricao      string          `json:"descricao"`
	CreatedAt      string          `json:"created_at"`
}
