package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda is an immutable sale fact. ValorTotal is frozen at sale time
// (preco × quantidade); price changes never rewrite history.
// Estado: "concluida" | "estornada". An estorno flips the estado and creates
// compensating movimento rows — the original row is never deleted.
// FormaPagamento: "pix" | "dinheiro" | "cartao" | "fiado"
type Venda struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null"`
	CaixaID        *uuid.UUID      `gorm:"type:uuid;index"`
	Quantidade     int             `gorm:"not null"`
	PrecoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'concluida'"`
	MotivoEstorno  *string
	EstornadaEm    *time.Time
	CreatedAt      time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (Venda) TableName() string { return "vendas" }
