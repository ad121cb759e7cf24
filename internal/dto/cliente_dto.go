package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// ClienteFilter is bound from query string of GET /v1/clientes.
type ClienteFilter struct {
	Search string `form:"search"` // matches nome OR telefone
	Bairro string `form:"bairro"`
	Ativo  string `form:"ativo"` // "false" = inativos, "all" = todos, default ativos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=100"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarClienteRequest struct {
	Nome        string  `json:"nome"        validate:"required,min=2"`
	Telefone    string  `json:"telefone"    validate:"required,min=8"`
	Endereco    *string `json:"endereco"`
	Bairro      *string `json:"bairro"`
	Observacoes *string `json:"observacoes"`
}

type AtualizarClienteRequest struct {
	Nome        string  `json:"nome"        validate:"omitempty,min=2"`
	Telefone    string  `json:"telefone"    validate:"omitempty,min=8"`
	Endereco    *string `json:"endereco"`
	Bairro      *string `json:"bairro"`
	Observacoes *string `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	Telefone    string  `json:"telefone"`
	Endereco    *string `json:"endereco,omitempty"`
	Bairro      *string `json:"bairro,omitempty"`
	Observacoes *string `json:"observacoes,omitempty"`
	Ativo       bool    `json:"ativo"`
	CreatedAt   string  `json:"created_at"`
}
