package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/auth"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/application/resumo"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
	"github.com/iurijampa/sistemanovofabrica/internal/infrastructure/eventos"
	"github.com/iurijampa/sistemanovofabrica/internal/infrastructure/observability"
	"github.com/iurijampa/sistemanovofabrica/internal/infrastructure/postgres"
	httpRouter "github.com/iurijampa/sistemanovofabrica/internal/interfaces/http"
	"github.com/iurijampa/sistemanovofabrica/pkg/config"
	"github.com/iurijampa/sistemanovofabrica/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.Fabrica.FusoHorario)
	if err != nil {
		log.Warn().Err(err).Str("fuso", cfg.Fabrica.FusoHorario).Msg("fuso horário inválido, usando UTC")
		loc = time.UTC
	}
	sequencia := setor.Nova(cfg.Fabrica.Setores)

	atividadeRepo := postgres.NewAtividadeRepository(pool)
	movRepo := postgres.NewMovimentacaoRepository(pool)
	estoqueRepo := postgres.NewEstoqueRepository(pool)
	movEstoqueRepo := postgres.NewMovimentacaoEstoqueRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registro := observability.NovoRegistro()
	publicador := eventos.NovoPublicador(cfg.Eventos.Brokers, cfg.Eventos.Topico, log)
	if cfg.Eventos.Brokers == "" {
		log.Info().Msg("Kafka desligado (KAFKA_BROKERS vazio), eventos só no log")
	}

	estoqueUC := estoque.NewUseCase(txRunner, estoqueRepo, movEstoqueRepo, publicador, registro)
	atividadeUC := atividade.NewUseCase(txRunner, atividadeRepo, movRepo, estoqueUC, sequencia, publicador, registro)
	resumoUC := resumo.NewUseCase(movRepo, sequencia, cfg.Fabrica.Metas, cfg.Fabrica.LimiteCicloDias, loc)
	authUC := auth.NewUseCase(usuarioRepo, sequencia, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sistema Novo Fábrica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(registro.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AtividadeUC: atividadeUC,
		EstoqueUC:   estoqueUC,
		ResumoUC:    resumoUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
