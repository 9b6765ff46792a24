// seed popula o banco com as contas de setor e os materiais padrão da
// fábrica (malhas e papéis com limite de alerta).
//
// Uso: go run ./cmd/seed
// Idempotente: cadastros já existentes são pulados.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/iurijampa/sistemanovofabrica/internal/application/auth"
	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
	"github.com/iurijampa/sistemanovofabrica/internal/infrastructure/postgres"
	"github.com/iurijampa/sistemanovofabrica/pkg/config"
)

var malhas = []string{
	"DRYFIT", "DRYFIT UV", "PIQUET", "HELANCA", "OXFORD",
	"TACTEL", "RIBANA", "MOLETOM", "MALHA FRIA", "ALGODAO",
}

// papéis identificados por nome + gramatura
var papeis = []struct {
	nome   string
	limite int
}{
	{"FOTOGRAFICO 75G", 500},
	{"FOTOGRAFICO 90G", 500},
	{"TERMICO 55G", 300},
	{"TERMICO 75G", 300},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	sequencia := setor.Nova(cfg.Fabrica.Setores)
	txRunner := postgres.NewTxRunner(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	estoqueRepo := postgres.NewEstoqueRepository(pool)
	movEstoqueRepo := postgres.NewMovimentacaoEstoqueRepository(pool)

	authUC := auth.NewUseCase(usuarioRepo, sequencia, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	estoqueUC := estoque.NewUseCase(txRunner, estoqueRepo, movEstoqueRepo, nil, nil)

	// Conta admin mais uma conta compartilhada por setor de produção.
	contas := []dto.CriarUsuarioRequest{
		{Email: "admin@fabrica.local", Senha: "admin123", Nome: "Administração", Setor: entity.SetorAdmin},
	}
	for _, s := range sequencia.Setores() {
		if s == sequencia.Final() {
			continue
		}
		contas = append(contas, dto.CriarUsuarioRequest{
			Email: fmt.Sprintf("%s@fabrica.local", normalizar(s)),
			Senha: "trocar123",
			Nome:  s,
			Setor: s,
		})
	}
	for _, conta := range contas {
		if _, err := authUC.CriarUsuario(conta); err != nil {
			if errors.Is(err, domain.ErrDuplicado) {
				fmt.Printf("usuário %s já existe, pulando\n", conta.Email)
				continue
			}
			fmt.Fprintf(os.Stderr, "criar usuário %s: %v\n", conta.Email, err)
			os.Exit(1)
		}
		fmt.Printf("usuário %s criado\n", conta.Email)
	}

	for _, m := range malhas {
		criarMaterial(ctx, estoqueUC, dto.CriarMaterialRequest{
			Material: m, Categoria: entity.CategoriaMalha, Usuario: "seed",
		})
	}
	for _, p := range papeis {
		limite := p.limite
		criarMaterial(ctx, estoqueUC, dto.CriarMaterialRequest{
			Material: p.nome, Categoria: entity.CategoriaPapel, LimiteAlerta: &limite, Usuario: "seed",
		})
	}

	fmt.Println("seed concluído")
}

func criarMaterial(ctx context.Context, uc *estoque.UseCase, in dto.CriarMaterialRequest) {
	if _, err := uc.CriarMaterial(ctx, in); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			fmt.Printf("material %s já existe, pulando\n", in.Material)
			return
		}
		fmt.Fprintf(os.Stderr, "criar material %s: %v\n", in.Material, err)
		os.Exit(1)
	}
	fmt.Printf("material %s criado\n", in.Material)
}

func normalizar(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
