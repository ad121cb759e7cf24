package service

import (
	"context"
	"time"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/repository"
)

type RelatorioService interface {
	Lucro(ctx context.Context, filter dto.LucroFilter) (*dto.LucroResponse, error)
	ClientesPorBairro(ctx context.Context) ([]dto.ClientesPorBairroItem, error)
}

type relatorioService struct {
	vendaRepo   repository.VendaRepository
	clienteRepo repository.ClienteRepository
}

func NewRelatorioService(vendaRepo repository.VendaRepository, clienteRepo repository.ClienteRepository) RelatorioService {
	return &relatorioService{vendaRepo: vendaRepo, clienteRepo: clienteRepo}
}

// Lucro sums valor_total of completed sales in [inicio, fim]. Estornadas are
// excluded by the aggregation itself, so a reversal after the report period
// closes still reads consistently.
func (s *relatorioService) Lucro(ctx context.Context, filter dto.LucroFilter) (*dto.LucroResponse, error) {
	inicio, err := time.Parse("2006-01-02", filter.Inicio)
	if err != nil {
		return nil, apierror.Validacao("inicio inválido, use YYYY-MM-DD")
	}
	fim, err := time.Parse("2006-01-02", filter.Fim)
	if err != nil {
		return nil, apierror.Validacao("fim inválido, use YYYY-MM-DD")
	}
	if fim.Before(inicio) {
		return nil, apierror.Validacao("fim não pode ser anterior a inicio")
	}

	// fim is inclusive: query up to the start of the following day.
	total, vendas, err := s.vendaRepo.SumPeriodo(ctx, inicio, fim.AddDate(0, 0, 1))
	if err != nil {
		return nil, translate(err, "")
	}

	return &dto.LucroResponse{
		Inicio: filter.Inicio,
		Fim:    filter.Fim,
		Vendas: vendas,
		Total:  total,
	}, nil
}

func (s *relatorioService) ClientesPorBairro(ctx context.Context) ([]dto.ClientesPorBairroItem, error) {
	items, err := s.clienteRepo.CountPorBairro(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return items, nil
}
