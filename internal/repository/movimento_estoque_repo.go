package repository

import (
	"context"

	"crmgas/internal/dto"
	"crmgas/internal/model"

	"gorm.io/gorm"
)

type MovimentoEstoqueRepository interface {
	// CreateTx appends a ledger row inside the caller's transaction so the
	// movement commits or rolls back together with the stock change.
	CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	List(ctx context.Context, filter dto.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) List(ctx context.Context, filter dto.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error) {
	var movs []model.MovimentoEstoque
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{})
	if filter.ProdutoID != "" {
		q = q.Where("produto_id = ?", filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Produto").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}
