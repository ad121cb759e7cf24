package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimentoEstoque registra cada mudança de estoque de um produto.
// Rows are append-only: the running ledger lets any stock figure be audited
// back to initial + entradas − vendas − avarias + estornos.
// Tipo: "venda" | "entrada" | "avaria" | "estorno"
type MovimentoEstoque struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo            string    `gorm:"type:varchar(20);not null"`
	Quantidade      int       `gorm:"not null"` // positive = entrada, negative = saída
	EstoqueAnterior int       `gorm:"not null"`
	EstoqueNovo     int       `gorm:"not null"`
	Motivo          string
	// ReferenciaID links to the originating venda, when applicable
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
