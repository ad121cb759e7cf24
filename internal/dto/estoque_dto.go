package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MovimentoEstoqueRequest covers both entrada (restock) and avaria (write-off).
type MovimentoEstoqueRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
	Motivo     string `json:"motivo"     validate:"required,min=3"`
}

// ─── Filter / Response DTOs ──────────────────────────────────────────────────

type MovimentoEstoqueFilter struct {
	ProdutoID string `form:"produto_id"`
	Tipo      string `form:"tipo"` // venda | entrada | avaria | estorno
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovimentoEstoqueResponse struct {
	ID              string `json:"id"`
	ProdutoID       string `json:"produto_id"`
	ProdutoNome     string `json:"produto_nome,omitempty"`
	Tipo            string `json:"tipo"`
	Quantidade      int    `json:"quantidade"`
	EstoqueAnterior int    `json:"estoque_anterior"`
	EstoqueNovo     int    `json:"estoque_novo"`
	Motivo          string `json:"motivo,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type MovimentoEstoqueListResponse struct {
	Data  []MovimentoEstoqueResponse `json:"data"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}
