package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/auth"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/application/resumo"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AtividadeUC *atividade.UseCase
	EstoqueUC   *estoque.UseCase
	ResumoUC    *resumo.UseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra as rotas da API. RequireSetor() sem argumentos libera só a
// conta admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/usuarios", AuthMiddleware(deps.JWTSecret), RequireSetor(), authHandler.CriarUsuario)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Atividades: cadastro, edição e remoção são do admin; transições são de
	// qualquer conta de setor logada.
	atividades := protected.Group("/atividades")
	atividadeHandler := NewAtividadeHandler(deps.AtividadeUC)
	atividades.Get("/", atividadeHandler.Listar)
	atividades.Post("/", RequireSetor(), atividadeHandler.Cadastrar)
	atividades.Get("/:id", atividadeHandler.ObterPorID)
	atividades.Put("/:id", RequireSetor(), atividadeHandler.Editar)
	atividades.Delete("/:id", RequireSetor(), atividadeHandler.Apagar)
	atividades.Post("/:id/concluir", atividadeHandler.Concluir)
	atividades.Post("/:id/retornar", atividadeHandler.Retornar)
	atividades.Get("/:id/historico", atividadeHandler.Historico)

	// Estoque: cadastro e ajuste são do admin.
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.EstoqueUC)
	estoqueGroup.Get("/", estoqueHandler.Listar)
	estoqueGroup.Post("/", RequireSetor(), estoqueHandler.CriarMaterial)
	estoqueGroup.Post("/entrada", estoqueHandler.Entrada)
	estoqueGroup.Post("/saida", estoqueHandler.Saida)
	estoqueGroup.Post("/ajuste", RequireSetor(), estoqueHandler.Ajustar)
	estoqueGroup.Get("/alertas", estoqueHandler.Alertas)
	estoqueGroup.Get("/movimentacoes", estoqueHandler.Movimentacoes)

	// Painéis
	resumoHandler := NewResumoHandler(deps.ResumoUC)
	resumoGroup := protected.Group("/resumo")
	resumoGroup.Get("/batida/maquinas", resumoHandler.Maquinas)
	resumoGroup.Get("/batida/batedores", resumoHandler.Batedores)
	resumoGroup.Get("/:setor", resumoHandler.ResumoDoSetor)

	protected.Get("/historico", resumoHandler.HistoricoGeral)
}
