package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a sellable item (gas cylinder, water gallon, accessory).
// Estoque only changes through vendas, entradas, avarias and estornos —
// every mutation happens under a row lock and leaves a MovimentoEstoque.
// Tipo: "gas" | "agua" | "acessorio"
type Produto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string          `gorm:"index;not null"`
	Tipo      string          `gorm:"type:varchar(20);not null"`
	Preco     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estoque   int             `gorm:"not null;default:0"`
	Ativo     bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Produto) TableName() string { return "produtos" }
