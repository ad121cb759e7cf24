package repository

import (
	"context"

	"crmgas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaixaRepository interface {
	CreateTx(tx *gorm.DB, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	FindAbertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caixa, error)

	// FindAbertoPorUsuarioTx re-reads the open caixa under FOR UPDATE so the
	// close decision is made against the locked row.
	FindAbertoPorUsuarioTx(tx *gorm.DB, usuarioID uuid.UUID) (*model.Caixa, error)

	UpdateTx(tx *gorm.DB, c *model.Caixa) error
	CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoCaixa) error
	ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error)

	// SumMovimentosTx totals the ledger inside the closing transaction.
	SumMovimentosTx(tx *gorm.DB, caixaID uuid.UUID) (decimal.Decimal, error)

	Historico(ctx context.Context, page, limit int) ([]model.Caixa, int64, error)
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) CreateTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Preload("Movimentos").First(&c, id).Error
	return &c, err
}

func (r *caixaRepo) FindAbertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = 'aberto'", usuarioID).First(&c).Error
	return &c, err
}

func (r *caixaRepo) FindAbertoPorUsuarioTx(tx *gorm.DB, usuarioID uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("usuario_id = ? AND estado = 'aberto'", usuarioID).First(&c).Error
	return &c, err
}

func (r *caixaRepo) UpdateTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Save(c).Error
}

func (r *caixaRepo) CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoCaixa) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).Where("caixa_id = ?", caixaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SumMovimentosTx(tx *gorm.DB, caixaID uuid.UUID) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := tx.Raw(`
		SELECT COALESCE(SUM(valor), 0) AS total
		FROM movimentos_caixa
		WHERE caixa_id = ?
	`, caixaID).Scan(&row).Error
	return row.Total, err
}

func (r *caixaRepo) Historico(ctx context.Context, page, limit int) ([]model.Caixa, int64, error) {
	var caixas []model.Caixa
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Caixa{}).Where("estado = 'fechado'")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("fechado_em DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&caixas).Error
	return caixas, total, err
}
