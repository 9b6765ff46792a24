package postgres

import (
	"context"
	"fmt"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

var _ repository.MovimentacaoEstoqueRepository = (*MovimentacaoEstoqueRepo)(nil)

// MovimentacaoEstoqueRepo rastro de auditoria do estoque sobre PostgreSQL.
// Append-only.
type MovimentacaoEstoqueRepo struct {
	q Querier
}

// NewMovimentacaoEstoqueRepository constrói o adaptador. Passar pool ou tx.
func NewMovimentacaoEstoqueRepository(q Querier) *MovimentacaoEstoqueRepo {
	return &MovimentacaoEstoqueRepo{q: q}
}

// Criar insere uma movimentação de estoque.
func (r *MovimentacaoEstoqueRepo) Criar(m *entity.MovimentacaoEstoque) error {
	query := `
		INSERT INTO movimentacoes_estoque (
			id, material, quantidade, tipo, usuario, observacao, pedido_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Material, m.Quantidade, m.Tipo, m.Usuario, m.Observacao, m.PedidoID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimentacao estoque: %w", err)
	}
	return nil
}

// Listar devolve movimentações mais recentes primeiro; material vazio devolve
// todas.
func (r *MovimentacaoEstoqueRepo) Listar(material string, limit, offset int) ([]*entity.MovimentacaoEstoque, error) {
	query := `
		SELECT id, material, quantidade, tipo, usuario, observacao, pedido_id, created_at
		FROM movimentacoes_estoque`
	args := []any{}
	if material != "" {
		query += ` WHERE material = $1`
		args = append(args, material)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes estoque: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimentacaoEstoque
	for rows.Next() {
		var m entity.MovimentacaoEstoque
		if err := rows.Scan(&m.ID, &m.Material, &m.Quantidade, &m.Tipo, &m.Usuario, &m.Observacao, &m.PedidoID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimentacao estoque: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
