package router

import (
	"time"

	"crmgas/internal/config"
	"crmgas/internal/handler"
	"crmgas/internal/infra"
	"crmgas/internal/middleware"
	"crmgas/internal/repository"
	"crmgas/internal/service"
	"crmgas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	recibos := infra.NewReciboGenerator(cfg.ReciboStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	movEstoqueRepo := repository.NewMovimentoEstoqueRepository(db)
	lembreteRepo := repository.NewLembreteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	caixaSvc := service.NewCaixaService(caixaRepo, usuarioRepo, dispatcher, cfg.ReportEmail)
	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo, clienteRepo, caixaRepo, movEstoqueRepo, recibos)
	estoqueSvc := service.NewEstoqueService(produtoRepo, movEstoqueRepo)
	relatorioSvc := service.NewRelatorioService(vendaRepo, clienteRepo)
	lembreteSvc := service.NewLembreteService(lembreteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	lembretesH := handler.NewLembretesHandler(lembreteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("operador", "admin")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		v1.POST("/vendas", anyRole, vendasH.RegistrarVenda)
		v1.GET("/vendas", anyRole, vendasH.ListarVendas)
		v1.GET("/vendas/:id/recibo", anyRole, vendasH.GerarRecibo)
		v1.DELETE("/vendas/:id", adminOnly, vendasH.EstornarVenda)

		clientes := v1.Group("/clientes", anyRole)
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/bairros", clientesH.ListBairros)
			clientes.GET("/:id", clientesH.ObterPorID)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", clientesH.Desativar)
			clientes.POST("/:id/reativar", clientesH.Reativar)
		}

		// Produtos — reads for all authenticated roles, writes admin-only
		v1.GET("/produtos", anyRole, produtosH.Listar)
		v1.GET("/produtos/:id", anyRole, produtosH.ObterPorID)
		produtos := v1.Group("/produtos", adminOnly)
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Desativar)
			produtos.POST("/:id/reativar", produtosH.Reativar)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", anyRole, caixaH.Abrir)
			caixa.POST("/fechar", anyRole, caixaH.Fechar)
			caixa.GET("/atual", anyRole, caixaH.GetAtual)
			caixa.GET("/historico", adminOnly, caixaH.Historico)
			caixa.GET("/:id/movimentos", adminOnly, caixaH.ListMovimentos)
		}

		estoque := v1.Group("/estoque", adminOnly)
		{
			estoque.POST("/entrada", estoqueH.RegistrarEntrada)
			estoque.POST("/avaria", estoqueH.RegistrarAvaria)
			estoque.GET("/movimentos", estoqueH.ListMovimentos)
		}

		relatorios := v1.Group("/relatorios", adminOnly)
		{
			relatorios.GET("/lucro", relatoriosH.Lucro)
			relatorios.GET("/clientes-por-bairro", relatoriosH.ClientesPorBairro)
		}

		lembretes := v1.Group("/lembretes", adminOnly)
		{
			lembretes.POST("/regras", lembretesH.CriarRegra)
			lembretes.GET("/regras", lembretesH.ListRegras)
			lembretes.DELETE("/regras/:id", lembretesH.DesativarRegra)
			lembretes.GET("/mensagens", lembretesH.ListMensagens)
			lembretes.POST("/gerar", lembretesH.GerarAgora)
		}

		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.POST("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
