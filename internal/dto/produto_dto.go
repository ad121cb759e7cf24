package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProdutoFilter is bound from query string of GET /v1/produtos.
type ProdutoFilter struct {
	Nome  string `form:"nome"`
	Tipo  string `form:"tipo"`  // gas | agua | acessorio
	Ativo string `form:"ativo"` // "false" = inativos, "all" = todos, default ativos
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome    string          `json:"nome"    validate:"required,min=2"`
	Tipo    string          `json:"tipo"    validate:"required,oneof=gas agua acessorio"`
	Preco   decimal.Decimal `json:"preco"   validate:"required,gt=0"`
	Estoque int             `json:"estoque" validate:"min=0"`
}

type AtualizarProdutoRequest struct {
	Nome  string          `json:"nome"  validate:"omitempty,min=2"`
	Tipo  string          `json:"tipo"  validate:"omitempty,oneof=gas agua acessorio"`
	Preco decimal.Decimal `json:"preco" validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID        string          `json:"id"`
	Nome      string          `json:"nome"`
	Tipo      string          `json:"tipo"`
	Preco     decimal.Decimal `json:"preco"`
	Estoque   int             `json:"estoque"`
	Ativo     bool            `json:"ativo"`
	CreatedAt string          `json:"created_at"`
}
