package dto

import "github.com/shopspring/decimal"

// LucroFilter is bound from query string of GET /v1/relatorios/lucro.
type LucroFilter struct {
	Inicio string `form:"inicio" validate:"required,datetime=2006-01-02"`
	Fim    string `form:"fim"    validate:"required,datetime=2006-01-02"`
}

type LucroResponse struct {
	Inicio string          `json:"inicio"`
	Fim    string          `json:"fim"`
	Vendas int64           `json:"vendas"`
	Total  decimal.Decimal `json:"total"`
}

type ClientesPorBairroItem struct {
	Bairro string `json:"bairro"`
	Count  int64  `json:"count"`
}
