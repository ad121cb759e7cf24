package service

import (
	"context"

	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
	ListBairros(ctx context.Context) ([]string, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nome:        req.Nome,
		Telefone:    req.Telefone,
		Endereco:    req.Endereco,
		Bairro:      req.Bairro,
		Observacoes: req.Observacoes,
		Ativo:       true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, translate(err, "")
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Cliente não encontrado")
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Cliente não encontrado")
	}

	if req.Nome != "" {
		cliente.Nome = req.Nome
	}
	if req.Telefone != "" {
		cliente.Telefone = req.Telefone
	}
	if req.Endereco != nil {
		cliente.Endereco = req.Endereco
	}
	if req.Bairro != nil {
		cliente.Bairro = req.Bairro
	}
	if req.Observacoes != nil {
		cliente.Observacoes = req.Observacoes
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, translate(err, "")
	}
	return clienteToResponse(cliente), nil
}

// Desativar soft-deletes: the cliente disappears from listings but its vendas
// keep their reference for the reports.
func (s *clienteService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "Cliente não encontrado")
	}
	return translate(s.repo.SoftDelete(ctx, id), "")
}

func (s *clienteService) Reativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "Cliente não encontrado")
	}
	return translate(s.repo.Reativar(ctx, id), "")
}

func (s *clienteService) ListBairros(ctx context.Context) ([]string, error) {
	bairros, err := s.repo.ListBairros(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return bairros, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:          c.ID.String(),
		Nome:        c.Nome,
		Telefone:    c.Telefone,
		Endereco:    c.Endereco,
		Bairro:      c.Bairro,
		Observacoes: c.Observacoes,
		Ativo:       c.Ativo,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
