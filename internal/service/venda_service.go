package service

import (
	"context"
	"errors"
	"fmt"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/infra"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaService interface {
	RegistrarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	EstornarVenda(ctx context.Context, id uuid.UUID, motivo string) error
	ListVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	GerarRecibo(ctx context.Context, id uuid.UUID) (string, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	produtoRepo repository.ProdutoRepository
	clienteRepo repository.ClienteRepository
	caixaRepo   repository.CaixaRepository
	estoqueRepo repository.MovimentoEstoqueRepository
	recibo      *infra.ReciboGenerator
}

func NewVendaService(
	repo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	clienteRepo repository.ClienteRepository,
	caixaRepo repository.CaixaRepository,
	estoqueRepo repository.MovimentoEstoqueRepository,
	recibo *infra.ReciboGenerator,
) VendaService {
	return &vendaService{
		repo:        repo,
		produtoRepo: produtoRepo,
		clienteRepo: clienteRepo,
		caixaRepo:   caixaRepo,
		estoqueRepo: estoqueRepo,
		recibo:      recibo,
	}
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────
// Full ACID transaction:
//  1. Validate cliente exists and is ativo
//  2. BEGIN TX: lock the product row FOR UPDATE
//  3. Check estoque under the lock — concurrent sales of the same product
//     serialize here, so overselling is impossible
//  4. Freeze valor_total = preco × quantidade, create the venda
//  5. Decrement estoque + append movimento de estoque
//  6. If the operator has an open caixa, append movimento de caixa
//  7. COMMIT

func (s *vendaService) RegistrarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validacao("cliente_id inválido")
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, apierror.Validacao("produto_id inválido")
	}
	if req.Quantidade < 1 {
		return nil, apierror.Validacao("quantidade deve ser maior que zero")
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, translate(err, "Cliente não encontrado")
	}
	if !cliente.Ativo {
		return nil, apierror.RegraNegocio("Cliente está inativo")
	}

	var venda model.Venda
	var produtoNome string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		produto, err := s.produtoRepo.LockForUpdateTx(tx, produtoID)
		if err != nil {
			return translate(err, "Produto não encontrado")
		}
		if !produto.Ativo {
			return apierror.RegraNegocio(fmt.Sprintf("Produto %s está inativo e não pode ser vendido", produto.Nome))
		}
		if produto.Estoque < req.Quantidade {
			return apierror.RegraNegocio(fmt.Sprintf(
				"Estoque insuficiente para %s: disponível %d, solicitado %d",
				produto.Nome, produto.Estoque, req.Quantidade))
		}
		produtoNome = produto.Nome

		valorTotal := produto.Preco.Mul(decimal.NewFromInt(int64(req.Quantidade)))

		// The sale is recorded against the operator's open caixa when there
		// is one; fiado included — the forma_pagamento on the movimento lets
		// the closing report split cash from promises.
		var caixaID *uuid.UUID
		caixa, err := s.caixaRepo.FindAbertoPorUsuarioTx(tx, usuarioID)
		if err == nil && caixa != nil {
			caixaID = &caixa.ID
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return translate(err, "")
		}

		venda = model.Venda{
			ClienteID:      clienteID,
			ProdutoID:      produtoID,
			UsuarioID:      usuarioID,
			CaixaID:        caixaID,
			Quantidade:     req.Quantidade,
			PrecoUnitario:  produto.Preco,
			ValorTotal:     valorTotal,
			FormaPagamento: req.FormaPagamento,
			Estado:         "concluida",
		}
		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		if err := s.produtoRepo.UpdateEstoqueTx(tx, produtoID, -req.Quantidade); err != nil {
			return err
		}
		ref := venda.ID
		mov := &model.MovimentoEstoque{
			ProdutoID:       produtoID,
			Tipo:            "venda",
			Quantidade:      -req.Quantidade,
			EstoqueAnterior: produto.Estoque,
			EstoqueNovo:     produto.Estoque - req.Quantidade,
			Motivo:          fmt.Sprintf("Venda para %s", cliente.Nome),
			ReferenciaID:    &ref,
		}
		if err := s.estoqueRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		if caixaID != nil {
			forma := req.FormaPagamento
			movCaixa := &model.MovimentoCaixa{
				CaixaID:        *caixaID,
				Tipo:           "venda",
				FormaPagamento: &forma,
				Valor:          valorTotal,
				Descricao:      fmt.Sprintf("Venda %s x%d — %s", produtoNome, req.Quantidade, cliente.Nome),
				ReferenciaID:   &ref,
			}
			if err := s.caixaRepo.CreateMovimentoTx(tx, movCaixa); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, translate(txErr, "Produto não encontrado")
	}

	resp := vendaToResponse(&venda)
	resp.ClienteNome = cliente.Nome
	resp.ProdutoNome = produtoNome
	return resp, nil
}

// ── EstornarVenda ─────────────────────────────────────────────────────────────
// Reversal never rewrites the sale's monetary facts: it flips estado, returns
// the units to stock and appends compensating movimento rows. Locking the
// venda row first makes concurrent estornos of the same sale serialize, so
// stock is restored exactly once.

func (s *vendaService) EstornarVenda(ctx context.Context, id uuid.UUID, motivo string) error {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venda, err := s.repo.LockForUpdateTx(tx, id)
		if err != nil {
			return translate(err, "Venda não encontrada")
		}
		if venda.Estado == "estornada" {
			return apierror.RegraNegocio("Venda já foi estornada")
		}

		produto, err := s.produtoRepo.LockForUpdateTx(tx, venda.ProdutoID)
		if err != nil {
			return translate(err, "Produto não encontrado")
		}

		if err := s.produtoRepo.UpdateEstoqueTx(tx, venda.ProdutoID, venda.Quantidade); err != nil {
			return err
		}
		ref := venda.ID
		mov := &model.MovimentoEstoque{
			ProdutoID:       venda.ProdutoID,
			Tipo:            "estorno",
			Quantidade:      venda.Quantidade,
			EstoqueAnterior: produto.Estoque,
			EstoqueNovo:     produto.Estoque + venda.Quantidade,
			Motivo:          fmt.Sprintf("Estorno de venda — %s", motivo),
			ReferenciaID:    &ref,
		}
		if err := s.estoqueRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		// The inverse movimento lands on the caixa that took the sale even
		// when that caixa already closed — the ledger stays append-only and
		// auditable; nothing ever edits a fechado snapshot.
		if venda.CaixaID != nil {
			forma := venda.FormaPagamento
			movCaixa := &model.MovimentoCaixa{
				CaixaID:        *venda.CaixaID,
				Tipo:           "estorno",
				FormaPagamento: &forma,
				Valor:          venda.ValorTotal.Neg(),
				Descricao:      fmt.Sprintf("Estorno de venda — %s", motivo),
				ReferenciaID:   &ref,
			}
			if err := s.caixaRepo.CreateMovimentoTx(tx, movCaixa); err != nil {
				return err
			}
		}

		return s.repo.MarcarEstornadaTx(tx, id, motivo)
	})
	return translate(txErr, "Venda não encontrada")
}

// ListVendas returns a paginated list of sales, filtered by date and estado.
// Default filter: today's completed sales.
func (s *vendaService) ListVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = "concluida"
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		items = append(items, *vendaToResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// GerarRecibo renders the sale receipt PDF and returns its path.
func (s *vendaService) GerarRecibo(ctx context.Context, id uuid.UUID) (string, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", translate(err, "Venda não encontrada")
	}
	path, err := s.recibo.Gerar(venda)
	if err != nil {
		return "", apierror.Infra(err)
	}
	return path, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	resp := &dto.VendaResponse{
		ID:             v.ID.String(),
		ClienteID:      v.ClienteID.String(),
		ProdutoID:      v.ProdutoID.String(),
		Quantidade:     v.Quantidade,
		PrecoUnitario:  v.PrecoUnitario,
		ValorTotal:     v.ValorTotal,
		FormaPagamento: v.FormaPagamento,
		Estado:         v.Estado,
		CreatedAt:      v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.Cliente != nil {
		resp.ClienteNome = v.Cliente.Nome
	}
	if v.Produto != nil {
		resp.ProdutoNome = v.Produto.Nome
	}
	return resp
}
