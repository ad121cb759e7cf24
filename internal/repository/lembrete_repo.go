package repository

import (
	"context"

	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LembreteRepository interface {
	CreateRegra(ctx context.Context, r *model.RegraLembrete) error
	ListRegras(ctx context.Context) ([]model.RegraLembrete, error)
	DesativarRegra(ctx context.Context, id uuid.UUID) error

	// GerarMensagensPendentes runs the reminder proposal query: for each
	// active rule, clients whose most recent completed purchase of a matching
	// product tipo is at least dias_apos_compra days old, and who have no
	// pendente/enviada message for that rule yet, get one mensagem row.
	// Returns the ids of the newly created rows.
	GerarMensagensPendentes(ctx context.Context) ([]uuid.UUID, error)

	FindMensagemByID(ctx context.Context, id uuid.UUID) (*model.Mensagem, error)
	ListMensagens(ctx context.Context, filter dto.MensagemFilter) ([]model.Mensagem, int64, error)
	MarcarEnviada(ctx context.Context, id uuid.UUID) error
	MarcarErro(ctx context.Context, id uuid.UUID, motivo string) error
}

type lembreteRepo struct{ db *gorm.DB }

func NewLembreteRepository(db *gorm.DB) LembreteRepository { return &lembreteRepo{db: db} }

func (r *lembreteRepo) CreateRegra(ctx context.Context, regra *model.RegraLembrete) error {
	return r.db.WithContext(ctx).Create(regra).Error
}

func (r *lembreteRepo) ListRegras(ctx context.Context) ([]model.RegraLembrete, error) {
	var regras []model.RegraLembrete
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&regras).Error
	return regras, err
}

func (r *lembreteRepo) DesativarRegra(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.RegraLembrete{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *lembreteRepo) GerarMensagensPendentes(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO mensagens (cliente_id, regra_id, canal, payload, agendada_para, status)
		SELECT
			c.id AS cliente_id,
			rl.id AS regra_id,
			'whatsapp' AS canal,
			json_build_object(
				'primeiro_nome', split_part(c.nome, ' ', 1),
				'telefone', c.telefone,
				'dias', rl.dias_apos_compra,
				'template', rl.template
			) AS payload,
			now() + interval '5 minutes' AS agendada_para,
			'pendente' AS status
		FROM clientes c
		JOIN vendas v ON v.cliente_id = c.id AND v.estado = 'concluida'
		JOIN produtos p ON p.id = v.produto_id
		JOIN regras_lembrete rl ON rl.produto_tipo = p.tipo
		WHERE rl.ativo = TRUE
		  AND c.ativo = TRUE
		  AND now() - v.created_at >= (rl.dias_apos_compra * interval '1 day')
		  AND NOT EXISTS (
			SELECT 1 FROM mensagens m
			WHERE m.cliente_id = c.id
			  AND m.regra_id = rl.id
			  AND m.status IN ('pendente', 'enviada')
		  )
		GROUP BY c.id, rl.id, c.nome, c.telefone, rl.dias_apos_compra, rl.template
		RETURNING id
	`).Scan(&ids).Error
	return ids, err
}

func (r *lembreteRepo) FindMensagemByID(ctx context.Context, id uuid.UUID) (*model.Mensagem, error) {
	var m model.Mensagem
	err := r.db.WithContext(ctx).Preload("Cliente").First(&m, id).Error
	return &m, err
}

func (r *lembreteRepo) ListMensagens(ctx context.Context, filter dto.MensagemFilter) ([]model.Mensagem, int64, error) {
	var msgs []model.Mensagem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Mensagem{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").
		Order("agendada_para ASC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&msgs).Error
	return msgs, total, err
}

func (r *lembreteRepo) MarcarEnviada(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mensagem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     "enviada",
		"tentativas": gorm.Expr("tentativas + 1"),
	}).Error
}

func (r *lembreteRepo) MarcarErro(ctx context.Context, id uuid.UUID, motivo string) error {
	return r.db.WithContext(ctx).Model(&model.Mensagem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      "erro",
		"ultimo_erro": motivo,
		"tentativas":  gorm.Expr("tentativas + 1"),
	}).Error
}
