package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

var _ repository.AtividadeRepository = (*AtividadeRepo)(nil)

const atividadeColunas = `
	id, pedido, cliente, descricao, imagem, setor_atual, tipo_produto, malha,
	quantidade_pecas, urgente, status_retorno, data_entrega, costureira,
	funcionario_envio, observacao_envio, data_envio, created_at, updated_at`

// AtividadeRepo implementação de AtividadeRepository sobre PostgreSQL
// (usável com pool ou tx).
type AtividadeRepo struct {
	q Querier
}

// NewAtividadeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAtividadeRepository(q Querier) *AtividadeRepo {
	return &AtividadeRepo{q: q}
}

// Criar persiste uma atividade nova.
func (r *AtividadeRepo) Criar(a *entity.Atividade) error {
	query := `
		INSERT INTO atividades (
			id, pedido, cliente, descricao, imagem, setor_atual, tipo_produto, malha,
			quantidade_pecas, urgente, status_retorno, data_entrega, costureira,
			funcionario_envio, observacao_envio, data_envio, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Pedido, a.Cliente, a.Descricao, a.Imagem, a.SetorAtual, a.TipoProduto, a.Malha,
		a.QuantidadePecas, a.Urgente, a.StatusRetorno, a.DataEntrega, a.Costureira,
		a.FuncionarioEnvio, a.ObservacaoEnvio, a.DataEnvio, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert atividade: %w", err)
	}
	return nil
}

// ObterPorID busca uma atividade; (nil, nil) se não existe.
func (r *AtividadeRepo) ObterPorID(id string) (*entity.Atividade, error) {
	query := `SELECT ` + atividadeColunas + ` FROM atividades WHERE id = $1`
	return r.buscarUma(query, id)
}

// ObterPorIDParaAtualizar busca bloqueando a linha (SELECT FOR UPDATE),
// para o read-modify-write das transições dentro de transação.
func (r *AtividadeRepo) ObterPorIDParaAtualizar(id string) (*entity.Atividade, error) {
	query := `SELECT ` + atividadeColunas + ` FROM atividades WHERE id = $1 FOR UPDATE`
	return r.buscarUma(query, id)
}

func (r *AtividadeRepo) buscarUma(query string, args ...any) (*entity.Atividade, error) {
	var a entity.Atividade
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.Pedido, &a.Cliente, &a.Descricao, &a.Imagem, &a.SetorAtual, &a.TipoProduto, &a.Malha,
		&a.QuantidadePecas, &a.Urgente, &a.StatusRetorno, &a.DataEntrega, &a.Costureira,
		&a.FuncionarioEnvio, &a.ObservacaoEnvio, &a.DataEnvio, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get atividade: %w", err)
	}
	return &a, nil
}

// Atualizar grava o estado atual da atividade.
func (r *AtividadeRepo) Atualizar(a *entity.Atividade) error {
	query := `
		UPDATE atividades SET
			pedido = $2, cliente = $3, descricao = $4, imagem = $5, setor_atual = $6,
			tipo_produto = $7, malha = $8, quantidade_pecas = $9, urgente = $10,
			status_retorno = $11, data_entrega = $12, costureira = $13,
			funcionario_envio = $14, observacao_envio = $15, data_envio = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Pedido, a.Cliente, a.Descricao, a.Imagem, a.SetorAtual,
		a.TipoProduto, a.Malha, a.QuantidadePecas, a.Urgente,
		a.StatusRetorno, a.DataEntrega, a.Costureira,
		a.FuncionarioEnvio, a.ObservacaoEnvio, a.DataEnvio, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update atividade: %w", err)
	}
	return nil
}

// Apagar remove a atividade. O razão de movimentações não é tocado.
func (r *AtividadeRepo) Apagar(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM atividades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete atividade: %w", err)
	}
	return nil
}

// Listar devolve as atividades ordenadas por data de entrega (urgentes
// primeiro); setorFiltro vazio devolve todas.
func (r *AtividadeRepo) Listar(setorFiltro string) ([]*entity.Atividade, error) {
	query := `SELECT ` + atividadeColunas + ` FROM atividades`
	var args []any
	if setorFiltro != "" {
		query += ` WHERE setor_atual = $1`
		args = append(args, setorFiltro)
	}
	query += ` ORDER BY urgente DESC, data_entrega ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list atividades: %w", err)
	}
	defer rows.Close()

	var list []*entity.Atividade
	for rows.Next() {
		var a entity.Atividade
		if err := rows.Scan(
			&a.ID, &a.Pedido, &a.Cliente, &a.Descricao, &a.Imagem, &a.SetorAtual, &a.TipoProduto, &a.Malha,
			&a.QuantidadePecas, &a.Urgente, &a.StatusRetorno, &a.DataEntrega, &a.Costureira,
			&a.FuncionarioEnvio, &a.ObservacaoEnvio, &a.DataEnvio, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan atividade: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
