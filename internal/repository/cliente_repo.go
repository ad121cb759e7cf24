package repository

import (
	"context"

	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
	ListBairros(ctx context.Context) ([]string, error)
	CountPorBairro(ctx context.Context) ([]dto.ClientesPorBairroItem, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}

	if filter.Search != "" {
		q = q.Where("nome ILIKE ? OR telefone ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Bairro != "" {
		q = q.Where("bairro ILIKE ?", "%"+filter.Bairro+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *clienteRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("ativo", true).Error
}

func (r *clienteRepo) ListBairros(ctx context.Context) ([]string, error) {
	var bairros []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT bairro FROM clientes
		WHERE bairro IS NOT NULL AND bairro != '' AND ativo = true
		ORDER BY bairro ASC
	`).Scan(&bairros).Error
	return bairros, err
}

func (r *clienteRepo) CountPorBairro(ctx context.Context) ([]dto.ClientesPorBairroItem, error) {
	var items []dto.ClientesPorBairroItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(bairro, 'sem bairro') AS bairro, COUNT(*) AS count
		FROM clientes
		WHERE ativo = true
		GROUP BY bairro
		ORDER BY COUNT(*) DESC
	`).Scan(&items).Error
	return items, err
}
