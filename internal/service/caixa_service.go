package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"
	"crmgas/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error)
	GetAtual(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error)
	Historico(ctx context.Context, page, limit int) ([]dto.CaixaResponse, int64, error)
	ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]dto.MovimentoCaixaResponse, error)
}

type caixaService struct {
	repo        repository.CaixaRepository
	usuarioRepo repository.UsuarioRepository
	dispatcher  *worker.Dispatcher
	reportEmail string
}

func NewCaixaService(
	repo repository.CaixaRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
	reportEmail string,
) CaixaService {
	return &caixaService{
		repo:        repo,
		usuarioRepo: usuarioRepo,
		dispatcher:  dispatcher,
		reportEmail: reportEmail,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Concurrent opens by the same operator serialize on the usuario row lock:
// the loser of the race sees the winner's committed caixa and gets a 409.
// The partial unique index on (usuario_id) WHERE estado='aberto' backstops
// the invariant at the store in case this path is ever bypassed.

func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, apierror.Validacao("saldo_inicial não pode ser negativo")
	}

	var caixa model.Caixa
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.usuarioRepo.LockTx(tx, usuarioID); err != nil {
			return translate(err, "Usuário não encontrado")
		}

		existing, err := s.repo.FindAbertoPorUsuarioTx(tx, usuarioID)
		if err == nil && existing != nil {
			return apierror.Conflito("Já existe um caixa aberto para este usuário")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return translate(err, "")
		}

		caixa = model.Caixa{
			UsuarioID:    usuarioID,
			SaldoInicial: req.SaldoInicial,
			Estado:       "aberto",
			AbertoEm:     time.Now(),
		}
		return s.repo.CreateTx(tx, &caixa)
	})
	if txErr != nil {
		return nil, translate(txErr, "Usuário não encontrado")
	}

	return caixaToResponse(&caixa), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────
// esperado = saldo_inicial + Σ(movimentos); diferenca = contado − esperado.
// The open caixa row is locked so a concurrent sale cannot slip a movimento
// between the sum and the close.

func (s *caixaService) Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error) {
	if req.SaldoContado.IsNegative() {
		return nil, apierror.Validacao("saldo_contado não pode ser negativo")
	}

	var caixa *model.Caixa
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		caixa, err = s.repo.FindAbertoPorUsuarioTx(tx, usuarioID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.RegraNegocio("Não há caixa aberto para este usuário")
			}
			return translate(err, "")
		}

		soma, err := s.repo.SumMovimentosTx(tx, caixa.ID)
		if err != nil {
			return err
		}

		esperado := caixa.SaldoInicial.Add(soma)
		contado := req.SaldoContado
		diferenca := contado.Sub(esperado)
		now := time.Now()

		caixa.SaldoEsperado = &esperado
		caixa.SaldoContado = &contado
		caixa.Diferenca = &diferenca
		caixa.Estado = "fechado"
		caixa.FechadoEm = &now
		caixa.Observacoes = req.Observacoes

		return s.repo.UpdateTx(tx, caixa)
	})
	if txErr != nil {
		return nil, translate(txErr, "")
	}

	// Closing summary for the owner — best effort, post-commit.
	if s.dispatcher != nil && s.reportEmail != "" {
		job := worker.EmailJobPayload{
			ToEmail: s.reportEmail,
			Subject: fmt.Sprintf("Fechamento de caixa — %s", time.Now().Format("02/01/2006")),
			Body: fmt.Sprintf(
				"Caixa fechado.\nSaldo inicial: R$ %s\nSaldo esperado: R$ %s\nSaldo contado: R$ %s\nDiferença: R$ %s",
				caixa.SaldoInicial.StringFixed(2),
				caixa.SaldoEsperado.StringFixed(2),
				caixa.SaldoContado.StringFixed(2),
				caixa.Diferenca.StringFixed(2)),
		}
		_ = s.dispatcher.EnqueueEmail(ctx, job)
	}

	return &dto.FechamentoResponse{
		CaixaID:       caixa.ID.String(),
		SaldoEsperado: *caixa.SaldoEsperado,
		SaldoContado:  *caixa.SaldoContado,
		Diferenca:     *caixa.Diferenca,
		Estado:        "fechado",
	}, nil
}

// GetAtual returns the operator's open caixa with the running saldo esperado.
func (s *caixaService) GetAtual(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindAbertoPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, translate(err, "Não há caixa aberto para este usuário")
	}

	resp := caixaToResponse(caixa)
	soma, err := s.repo.SumMovimentosTx(s.repo.DB(), caixa.ID)
	if err == nil {
		esperado := caixa.SaldoInicial.Add(soma)
		resp.SaldoEsperado = &esperado
	}
	return resp, nil
}

func (s *caixaService) Historico(ctx context.Context, page, limit int) ([]dto.CaixaResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	caixas, total, err := s.repo.Historico(ctx, page, limit)
	if err != nil {
		return nil, 0, translate(err, "")
	}
	items := make([]dto.CaixaResponse, 0, len(caixas))
	for i := range caixas {
		items = append(items, *caixaToResponse(&caixas[i]))
	}
	return items, total, nil
}

func (s *caixaService) ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]dto.MovimentoCaixaResponse, error) {
	if _, err := s.repo.FindByID(ctx, caixaID); err != nil {
		return nil, translate(err, "Caixa não encontrado")
	}
	movs, err := s.repo.ListMovimentos(ctx, caixaID)
	if err != nil {
		return nil, translate(err, "")
	}
	items := make([]dto.MovimentoCaixaResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.MovimentoCaixaResponse{
			ID:             m.ID.String(),
			Tipo:           m.Tipo,
			FormaPagamento: m.FormaPagamento,
			Valor:          m.Valor,
			Descricao:      m.Descricao,
			CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return items, nil
}

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:            c.ID.String(),
		UsuarioID:     c.UsuarioID.String(),
		SaldoInicial:  c.SaldoInicial,
		SaldoEsperado: c.SaldoEsperado,
		SaldoContado:  c.SaldoContado,
		Diferenca:     c.Diferenca,
		Estado:        c.Estado,
		Observacoes:   c.Observacoes,
		AbertoEm:      c.AbertoEm.Format("2006-01-02T15:04:05Z"),
	}
	if c.FechadoEm != nil {
		t := c.FechadoEm.Format("2006-01-02T15:04:05Z")
		resp.FechadoEm = &t
	}
	return resp
}
