package service

import (
	"context"
	"fmt"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstoqueService handles manual stock mutations: entradas (restock) and
// avarias (damaged/lost units). Sales and estornos mutate stock through
// VendaService; every path appends to the same movimento ledger.
type EstoqueService interface {
	RegistrarEntrada(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	RegistrarAvaria(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	ListMovimentos(ctx context.Context, filter dto.MovimentoEstoqueFilter) (*dto.MovimentoEstoqueListResponse, error)
}

type estoqueService struct {
	produtoRepo repository.ProdutoRepository
	movRepo     repository.MovimentoEstoqueRepository
}

func NewEstoqueService(produtoRepo repository.ProdutoRepository, movRepo repository.MovimentoEstoqueRepository) EstoqueService {
	return &estoqueService{produtoRepo: produtoRepo, movRepo: movRepo}
}

func (s *estoqueService) RegistrarEntrada(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	return s.registrar(ctx, req, "entrada")
}

func (s *estoqueService) RegistrarAvaria(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	return s.registrar(ctx, req, "avaria")
}

// registrar runs the same lock-then-check-then-write transaction as a sale:
// the product row lock keeps concurrent mutations from interleaving between
// the read and the delta.
func (s *estoqueService) registrar(ctx context.Context, req dto.MovimentoEstoqueRequest, tipo string) (*dto.MovimentoEstoqueResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, apierror.Validacao("produto_id inválido")
	}
	if req.Quantidade < 1 {
		return nil, apierror.Validacao("quantidade deve ser maior que zero")
	}

	delta := req.Quantidade
	if tipo == "avaria" {
		delta = -req.Quantidade
	}

	var mov model.MovimentoEstoque
	var produtoNome string
	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		produto, err := s.produtoRepo.LockForUpdateTx(tx, produtoID)
		if err != nil {
			return translate(err, "Produto não encontrado")
		}
		produtoNome = produto.Nome

		if tipo == "avaria" && produto.Estoque < req.Quantidade {
			return apierror.RegraNegocio(fmt.Sprintf(
				"Avaria maior que o estoque de %s: disponível %d, informado %d",
				produto.Nome, produto.Estoque, req.Quantidade))
		}

		if err := s.produtoRepo.UpdateEstoqueTx(tx, produtoID, delta); err != nil {
			return err
		}

		mov = model.MovimentoEstoque{
			ProdutoID:       produtoID,
			Tipo:            tipo,
			Quantidade:      delta,
			EstoqueAnterior: produto.Estoque,
			EstoqueNovo:     produto.Estoque + delta,
			Motivo:          req.Motivo,
		}
		return s.movRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, translate(txErr, "Produto não encontrado")
	}

	resp := movimentoToResponse(&mov)
	resp.ProdutoNome = produtoNome
	return resp, nil
}

func (s *estoqueService) ListMovimentos(ctx context.Context, filter dto.MovimentoEstoqueFilter) (*dto.MovimentoEstoqueListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movs, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for i := range movs {
		r := movimentoToResponse(&movs[i])
		if movs[i].Produto != nil {
			r.ProdutoNome = movs[i].Produto.Nome
		}
		items = append(items, *r)
	}
	return &dto.MovimentoEstoqueListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movimentoToResponse(m *model.MovimentoEstoque) *dto.MovimentoEstoqueResponse {
	return &dto.MovimentoEstoqueResponse{
		ID:              m.ID.String(),
		ProdutoID:       m.ProdutoID.String(),
		Tipo:            m.Tipo,
		Quantidade:      m.Quantidade,
		EstoqueAnterior: m.EstoqueAnterior,
		EstoqueNovo:     m.EstoqueNovo,
		Motivo:          m.Motivo,
		CreatedAt:       m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
