package service

import (
	"context"
	"encoding/json"
	"time"

	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const produtoCacheTTL = 4 * time.Hour

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto := &model.Produto{
		Nome:    req.Nome,
		Tipo:    req.Tipo,
		Preco:   req.Preco,
		Estoque: req.Estoque,
		Ativo:   true,
	}
	if err := s.repo.Create(ctx, produto); err != nil {
		return nil, translate(err, "")
	}
	return produtoToResponse(produto), nil
}

// ObterPorID reads through the Redis cache. Point lookups back the sale
// screen, so they get the cache; lists always hit the store. Stale estoque in
// a cached row is harmless — the sale transaction re-reads under lock.
func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	cacheKey := "produto:" + id.String()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ProdutoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Produto não encontrado")
	}

	resp := produtoToResponse(produto)
	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, data, produtoCacheTTL)
		}
	}
	return resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		items = append(items, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Produto não encontrado")
	}

	if req.Nome != "" {
		produto.Nome = req.Nome
	}
	if req.Tipo != "" {
		produto.Tipo = req.Tipo
	}
	if !req.Preco.IsZero() {
		produto.Preco = req.Preco
	}

	if err := s.repo.Update(ctx, produto); err != nil {
		return nil, translate(err, "")
	}
	s.invalidate(ctx, id)
	return produtoToResponse(produto), nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "Produto não encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return translate(err, "")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "Produto não encontrado")
	}
	if err := s.repo.Reativar(ctx, id); err != nil {
		return translate(err, "")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *produtoService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "produto:"+id.String())
	}
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:        p.ID.String(),
		Nome:      p.Nome,
		Tipo:      p.Tipo,
		Preco:     p.Preco,
		Estoque:   p.Estoque,
		Ativo:     p.Ativo,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
