package service

import (
	"context"

	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
)

type LembreteService interface {
	CriarRegra(ctx context.Context, req dto.CriarRegraLembreteRequest) (*dto.RegraLembreteResponse, error)
	ListRegras(ctx context.Context) ([]dto.RegraLembreteResponse, error)
	DesativarRegra(ctx context.Context, id uuid.UUID) error
	ListMensagens(ctx context.Context, filter dto.MensagemFilter) (*dto.MensagemListResponse, error)

	// GerarAgora runs the reminder materialization on demand — same query the
	// cron ticks through, exposed for admins who don't want to wait a tick.
	GerarAgora(ctx context.Context) (int, error)
}

type lembreteService struct {
	repo repository.LembreteRepository
}

func NewLembreteService(repo repository.LembreteRepository) LembreteService {
	return &lembreteService{repo: repo}
}

func (s *lembreteService) CriarRegra(ctx context.Context, req dto.CriarRegraLembreteRequest) (*dto.RegraLembreteResponse, error) {
	regra := &model.RegraLembrete{
		ProdutoTipo:    req.ProdutoTipo,
		DiasAposCompra: req.DiasAposCompra,
		Template:       req.Template,
		Ativo:          true,
	}
	if err := s.repo.CreateRegra(ctx, regra); err != nil {
		return nil, translate(err, "")
	}
	return regraToResponse(regra), nil
}

func (s *lembreteService) ListRegras(ctx context.Context) ([]dto.RegraLembreteResponse, error) {
	regras, err := s.repo.ListRegras(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.RegraLembreteResponse, 0, len(regras))
	for i := range regras {
		items = append(items, *regraToResponse(&regras[i]))
	}
	return items, nil
}

func (s *lembreteService) DesativarRegra(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.DesativarRegra(ctx, id), "Regra não encontrada")
}

func (s *lembreteService) ListMensagens(ctx context.Context, filter dto.MensagemFilter) (*dto.MensagemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	msgs, total, err := s.repo.ListMensagens(ctx, filter)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.MensagemResponse, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		item := dto.MensagemResponse{
			ID:           m.ID.String(),
			ClienteID:    m.ClienteID.String(),
			RegraID:      m.RegraID.String(),
			Canal:        m.Canal,
			Payload:      m.Payload,
			AgendadaPara: m.AgendadaPara.Format("2006-01-02T15:04:05Z"),
			Status:       m.Status,
			Tentativas:   m.Tentativas,
		}
		if m.Cliente != nil {
			item.ClienteNome = m.Cliente.Nome
		}
		items = append(items, item)
	}
	return &dto.MensagemListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *lembreteService) GerarAgora(ctx context.Context) (int, error) {
	ids, err := s.repo.GerarMensagensPendentes(ctx)
	if err != nil {
		return 0, translate(err, "")
	}
	return len(ids), nil
}

func regraToResponse(r *model.RegraLembrete) *dto.RegraLembreteResponse {
	return &dto.RegraLembreteResponse{
		ID:             r.ID.String(),
		ProdutoTipo:    r.ProdutoTipo,
		DiasAposCompra: r.DiasAposCompra,
		Template:       r.Template,
		Ativo:          r.Ativo,
	}
}
