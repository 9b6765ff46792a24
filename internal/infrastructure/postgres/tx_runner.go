package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

var _ atividade.TxRunner = (*TxRunner)(nil)
var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repositórios das transições de atividade
// (estado + razão + estoque) e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	atividadeRepo repository.AtividadeRepository,
	movRepo repository.MovimentacaoRepository,
	estoqueRepo repository.EstoqueRepository,
	movEstoqueRepo repository.MovimentacaoEstoqueRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewAtividadeRepository(tx),
		NewMovimentacaoRepository(tx),
		NewEstoqueRepository(tx),
		NewMovimentacaoEstoqueRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEstoque inicia uma transação só com os repositórios de estoque
// (entradas, saídas manuais e ajustes).
func (r *TxRunner) RunEstoque(ctx context.Context, fn func(
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoEstoqueRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEstoqueRepository(tx), NewMovimentacaoEstoqueRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
