package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a delivery customer. Bairro drives the route/filter views and
// the clientes-por-bairro report.
type Cliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"index;not null"`
	Telefone    string    `gorm:"index;not null"`
	Endereco    *string
	Bairro      *string `gorm:"index"`
	Observacoes *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Cliente) TableName() string { return "clientes" }
