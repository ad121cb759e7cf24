package model

import (
	"time"

	"github.com/google/uuid"
)

// RegraLembrete defines when a repurchase reminder should be proposed:
// N days after the last venda of a product of the given tipo.
type RegraLembrete struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoTipo    string    `gorm:"type:varchar(20);not null"`
	DiasAposCompra int       `gorm:"not null"`
	Template       string    `gorm:"not null"`
	Ativo          bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (RegraLembrete) TableName() string { return "regras_lembrete" }

// Mensagem is one queued outbound reminder. The cron inserts rows with
// status "pendente"; the delivery worker transitions them to "enviada" or
// "erro". Payload carries the raw fields the gateway renders — no template
// rendering happens here.
// Status: "pendente" | "enviada" | "erro"
type Mensagem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	RegraID      uuid.UUID      `gorm:"type:uuid;index;not null"`
	Canal        string         `gorm:"type:varchar(20);not null;default:'whatsapp'"`
	Payload      string         `gorm:"type:jsonb;not null"`
	AgendadaPara time.Time      `gorm:"not null"`
	Status       string         `gorm:"type:varchar(20);not null;default:'pendente'"`
	Tentativas   int            `gorm:"not null;default:0"`
	UltimoErro   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Mensagem) TableName() string { return "mensagens" }
