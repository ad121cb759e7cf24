package repository

import (
	"context"
	"time"

	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)

	// LockForUpdateTx serializes concurrent estornos on the same venda row —
	// the reversed-state check must happen under this lock.
	LockForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venda, error)

	// MarcarEstornadaTx flips estado and records motivo inside the caller's tx.
	MarcarEstornadaTx(tx *gorm.DB, id uuid.UUID, motivo string) error

	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)

	// SumPeriodo aggregates completed sales for the lucro report.
	SumPeriodo(ctx context.Context, inicio, fim time.Time) (decimal.Decimal, int64, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Produto").First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) LockForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) MarcarEstornadaTx(tx *gorm.DB, id uuid.UUID, motivo string) error {
	now := time.Now()
	return tx.Model(&model.Venda{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":         "estornada",
		"motivo_estorno": motivo,
		"estornada_em":   now,
	}).Error
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Produto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}

func (r *vendaRepo) SumPeriodo(ctx context.Context, inicio, fim time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total  decimal.Decimal
		Vendas int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(valor_total), 0) AS total, COUNT(*) AS vendas
		FROM vendas
		WHERE estado = 'concluida'
		  AND created_at >= ? AND created_at < ?
	`, inicio, fim).Scan(&row).Error
	return row.Total, row.Vendas, err
}
