package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarRegraLembreteRequest struct {
	ProdutoTipo    string `json:"produto_tipo"     validate:"required,oneof=gas agua acessorio"`
	DiasAposCompra int    `json:"dias_apos_compra" validate:"required,min=1"`
	Template       string `json:"template"         validate:"required,min=2"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegraLembreteResponse struct {
	ID             string `json:"id"`
	ProdutoTipo    string `json:"produto_tipo"`
	DiasAposCompra int    `json:"dias_apos_compra"`
	Template       string `json:"template"`
	Ativo          bool   `json:"ativo"`
}

type MensagemResponse struct {
	ID           string `json:"id"`
	ClienteID    string `json:"cliente_id"`
	ClienteNome  string `json:"cliente_nome,omitempty"`
	RegraID      string `json:"regra_id"`
	Canal        string `json:"canal"`
	Payload      string `json:"payload"`
	AgendadaPara string `json:"agendada_para"`
	Status       string `json:"status"`
	Tentativas   int    `json:"tentativas"`
}

type MensagemFilter struct {
	Status string `form:"status,default=pendente"` // pendente | enviada | erro | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MensagemListResponse struct {
	Data  []MensagemResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
