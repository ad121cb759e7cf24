package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa represents the lifecycle of a daily cash register session.
// Estado: "aberto" | "fechado". At most one caixa aberto per operator —
// enforced by the open/close transaction plus a partial unique index.
type Caixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoEsperado is computed on close: SaldoInicial + SUM(movimentos)
	SaldoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoContado  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferenca     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado        string           `gorm:"type:varchar(20);not null;default:'aberto'"`
	Observacoes   *string
	AbertoEm      time.Time
	FechadoEm     *time.Time

	Movimentos []MovimentoCaixa `gorm:"foreignKey:CaixaID"`
}

func (Caixa) TableName() string { return "caixas" }

// MovimentoCaixa is an immutable event in the cash register ledger.
// Tipo: "venda" | "estorno" | "suprimento" | "sangria"
// Movements are NEVER modified or deleted — reversals create inverse entries.
type MovimentoCaixa struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo           string          `gorm:"type:varchar(20);not null"`
	FormaPagamento *string         `gorm:"type:varchar(20)"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao      string          `gorm:"not null"`
	// ReferenciaID links to the originating Venda or manual operation
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (MovimentoCaixa) TableName() string { return "movimentos_caixa" }
