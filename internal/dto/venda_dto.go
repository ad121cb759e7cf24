package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VendaFilter is bound from query string of GET /v1/vendas.
type VendaFilter struct {
	Data      string `form:"data"`                     // YYYY-MM-DD; empty = today
	Estado    string `form:"estado,default=concluida"` // concluida | estornada | all
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarVendaRequest struct {
	ClienteID      string `json:"cliente_id"      validate:"required,uuid"`
	ProdutoID      string `json:"produto_id"      validate:"required,uuid"`
	Quantidade     int    `json:"quantidade"      validate:"required,min=1"`
	FormaPagamento string `json:"forma_pagamento" validate:"required,oneof=pix dinheiro cartao fiado"`
}

type EstornarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID             string          `json:"id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome,omitempty"`
	ProdutoID      string          `json:"produto_id"`
	ProdutoNome    string          `json:"produto_nome,omitempty"`
	Quantidade     int             `json:"quantidade"`
	PrecoUnitario  decimal.Decimal `json:"preco_unitario"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	FormaPagamento string          `json:"forma_pagamento"`
	Estado         string          `json:"estado"`
	CreatedAt      string          `json:"created_at"`
}
