package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

const movimentacaoColunas = `
	id, pedido_id, setor_origem, setor_destino, tipo, funcionario, observacao,
	data, costureira, batedores, maquina_batida, papel, maquina_impressao,
	quantidade_pecas`

// MovimentacaoRepo implementação do razão de movimentações sobre PostgreSQL.
// Append-only: só INSERT e SELECT. Batedores é persistido como texto separado
// por vírgula.
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Criar insere uma movimentação no razão.
func (r *MovimentacaoRepo) Criar(m *entity.Movimentacao) error {
	query := `
		INSERT INTO movimentacoes (
			id, pedido_id, setor_origem, setor_destino, tipo, funcionario, observacao,
			data, costureira, batedores, maquina_batida, papel, maquina_impressao,
			quantidade_pecas
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PedidoID, m.SetorOrigem, m.SetorDestino, m.Tipo, m.Funcionario, m.Observacao,
		m.Data, m.Costureira, juntarNomes(m.Batedores), m.MaquinaBatida, m.Papel, m.MaquinaImpressao,
		m.QuantidadePecas,
	)
	if err != nil {
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// ListarPorPedido devolve o histórico de um pedido, mais antiga primeiro.
func (r *MovimentacaoRepo) ListarPorPedido(pedidoID string) ([]*entity.Movimentacao, error) {
	query := `SELECT ` + movimentacaoColunas + `
		FROM movimentacoes WHERE pedido_id = $1 ORDER BY data ASC`
	return r.buscar(query, pedidoID)
}

// ListarConclusoes devolve as saídas de um setor (concluiu/concluiu_retorno)
// no intervalo, mais antiga primeiro. de/ate nulos não filtram.
func (r *MovimentacaoRepo) ListarConclusoes(setorOrigem string, de, ate *time.Time) ([]*entity.Movimentacao, error) {
	query := `SELECT ` + movimentacaoColunas + `
		FROM movimentacoes
		WHERE setor_origem = $1 AND tipo = ANY($2)`
	args := []any{setorOrigem, entity.TiposConclusao()}
	query, args = comIntervalo(query, args, de, ate)
	query += ` ORDER BY data ASC`
	return r.buscar(query, args...)
}

// ListarEntradas devolve as movimentações com destino no setor, mais antiga
// primeiro.
func (r *MovimentacaoRepo) ListarEntradas(setorDestino string, de, ate *time.Time) ([]*entity.Movimentacao, error) {
	query := `SELECT ` + movimentacaoColunas + `
		FROM movimentacoes
		WHERE setor_destino = $1`
	args := []any{setorDestino}
	query, args = comIntervalo(query, args, de, ate)
	query += ` ORDER BY data ASC`
	return r.buscar(query, args...)
}

// Listar devolve o histórico geral, mais recente primeiro.
func (r *MovimentacaoRepo) Listar(limit, offset int) ([]*entity.Movimentacao, error) {
	query := `SELECT ` + movimentacaoColunas + `
		FROM movimentacoes ORDER BY data DESC LIMIT $1 OFFSET $2`
	return r.buscar(query, limit, offset)
}

func (r *MovimentacaoRepo) buscar(query string, args ...any) ([]*entity.Movimentacao, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movimentacao
	for rows.Next() {
		var m entity.Movimentacao
		var batedores string
		if err := rows.Scan(
			&m.ID, &m.PedidoID, &m.SetorOrigem, &m.SetorDestino, &m.Tipo, &m.Funcionario, &m.Observacao,
			&m.Data, &m.Costureira, &batedores, &m.MaquinaBatida, &m.Papel, &m.MaquinaImpressao,
			&m.QuantidadePecas,
		); err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		m.Batedores = separarNomes(batedores)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// comIntervalo acrescenta os filtros de data opcionais à query.
func comIntervalo(query string, args []any, de, ate *time.Time) (string, []any) {
	if de != nil {
		args = append(args, *de)
		query += fmt.Sprintf(" AND data >= $%d", len(args))
	}
	if ate != nil {
		args = append(args, *ate)
		query += fmt.Sprintf(" AND data <= $%d", len(args))
	}
	return query, args
}

func juntarNomes(nomes []string) string {
	return strings.Join(nomes, ",")
}

func separarNomes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
