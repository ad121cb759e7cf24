package service

// stubs_test.go
// In-memory repository stubs shared by the service unit tests. Every stub
// returns nil from DB(), which makes runTx skip the real transaction and call
// the body with a nil tx — the stubs ignore the tx handle entirely.

import (
	"context"
	"time"

	"crmgas/internal/dto"
	"crmgas/internal/model"
	"crmgas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Produto ───────────────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *stubProdutoRepo) Reativar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = true
	}
	return nil
}

// LockForUpdateTx returns a snapshot of the row, like a real SELECT FOR UPDATE
// read would: later UpdateEstoqueTx calls must not mutate the snapshot.
func (r *stubProdutoRepo) LockForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) UpdateEstoqueTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estoque += delta
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ── Venda ─────────────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *stubVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	cp := *v
	r.vendas[v.ID] = &cp
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVendaRepo) LockForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVendaRepo) MarcarEstornadaTx(_ *gorm.DB, id uuid.UUID, motivo string) error {
	v, ok := r.vendas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	v.Estado = "estornada"
	v.MotivoEstorno = &motivo
	v.EstornadaEm = &now
	return nil
}

func (r *stubVendaRepo) List(_ context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	out := make([]model.Venda, 0, len(r.vendas))
	for _, v := range r.vendas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) SumPeriodo(_ context.Context, inicio, fim time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, v := range r.vendas {
		if v.Estado != "concluida" {
			continue
		}
		if v.CreatedAt.Before(inicio) || !v.CreatedAt.Before(fim) {
			continue
		}
		total = total.Add(v.ValorTotal)
		count++
	}
	return total, count, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Ativo = false
	}
	return nil
}

func (r *stubClienteRepo) Reativar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Ativo = true
	}
	return nil
}

func (r *stubClienteRepo) ListBairros(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range r.clientes {
		if c.Bairro != nil && !seen[*c.Bairro] {
			seen[*c.Bairro] = true
			out = append(out, *c.Bairro)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) CountPorBairro(_ context.Context) ([]dto.ClientesPorBairroItem, error) {
	counts := map[string]int64{}
	for _, c := range r.clientes {
		if c.Bairro != nil && c.Ativo {
			counts[*c.Bairro]++
		}
	}
	out := make([]dto.ClientesPorBairroItem, 0, len(counts))
	for b, n := range counts {
		out = append(out, dto.ClientesPorBairroItem{Bairro: b, Count: n})
	}
	return out, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Caixa ─────────────────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	caixas     map[uuid.UUID]*model.Caixa
	movimentos []model.MovimentoCaixa
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *stubCaixaRepo) CreateTx(_ *gorm.DB, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.caixas[c.ID] = &cp
	return nil
}

func (r *stubCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCaixaRepo) FindAbertoPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caixa, error) {
	return r.findAberto(usuarioID)
}

func (r *stubCaixaRepo) FindAbertoPorUsuarioTx(_ *gorm.DB, usuarioID uuid.UUID) (*model.Caixa, error) {
	return r.findAberto(usuarioID)
}

func (r *stubCaixaRepo) findAberto(usuarioID uuid.UUID) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.UsuarioID == usuarioID && c.Estado == "aberto" {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) UpdateTx(_ *gorm.DB, c *model.Caixa) error {
	cp := *c
	r.caixas[c.ID] = &cp
	return nil
}

func (r *stubCaixaRepo) CreateMovimentoTx(_ *gorm.DB, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubCaixaRepo) ListMovimentos(_ context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var out []model.MovimentoCaixa
	for _, m := range r.movimentos {
		if m.CaixaID == caixaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) SumMovimentosTx(_ *gorm.DB, caixaID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movimentos {
		if m.CaixaID == caixaID {
			total = total.Add(m.Valor)
		}
	}
	return total, nil
}

func (r *stubCaixaRepo) Historico(_ context.Context, _, _ int) ([]model.Caixa, int64, error) {
	var out []model.Caixa
	for _, c := range r.caixas {
		if c.Estado == "fechado" {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)

// ── MovimentoEstoque ──────────────────────────────────────────────────────────

type stubMovimentoEstoqueRepo struct {
	movimentos []model.MovimentoEstoque
}

func (r *stubMovimentoEstoqueRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoEstoqueRepo) List(_ context.Context, filter dto.MovimentoEstoqueFilter) ([]model.MovimentoEstoque, int64, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.MovimentoEstoqueRepository = (*stubMovimentoEstoqueRepo)(nil)

// ── Usuario ───────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reativar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = true
	}
	return nil
}

func (r *stubUsuarioRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduto(r *stubProdutoRepo, nome, tipo string, preco string, estoque int) *model.Produto {
	p := &model.Produto{
		ID:      uuid.New(),
		Nome:    nome,
		Tipo:    tipo,
		Preco:   decimal.RequireFromString(preco),
		Estoque: estoque,
		Ativo:   true,
	}
	r.produtos[p.ID] = p
	return p
}

func seedCliente(r *stubClienteRepo, nome, telefone string) *model.Cliente {
	c := &model.Cliente{
		ID:       uuid.New(),
		Nome:     nome,
		Telefone: telefone,
		Ativo:    true,
	}
	r.clientes[c.ID] = c
	return c
}
