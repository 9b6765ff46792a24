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

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

// EstoqueRepo implementação de EstoqueRepository sobre PostgreSQL
// (usável com pool ou tx). A chave é o nome normalizado do material.
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// Obter busca um material; (nil, nil) se não existe.
func (r *EstoqueRepo) Obter(material string) (*entity.ItemEstoque, error) {
	query := `
		SELECT material, categoria, quantidade, limite_alerta, updated_at
		FROM estoque WHERE material = $1`
	return r.buscarUm(query, material)
}

// ObterParaAtualizar busca bloqueando a linha (SELECT FOR UPDATE), para a
// verificação saldo >= quantidade sem corrida.
func (r *EstoqueRepo) ObterParaAtualizar(material string) (*entity.ItemEstoque, error) {
	query := `
		SELECT material, categoria, quantidade, limite_alerta, updated_at
		FROM estoque WHERE material = $1
		FOR UPDATE`
	return r.buscarUm(query, material)
}

func (r *EstoqueRepo) buscarUm(query string, args ...any) (*entity.ItemEstoque, error) {
	var i entity.ItemEstoque
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&i.Material, &i.Categoria, &i.Quantidade, &i.LimiteAlerta, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item estoque: %w", err)
	}
	return &i, nil
}

// Criar cadastra um material.
func (r *EstoqueRepo) Criar(item *entity.ItemEstoque) error {
	query := `
		INSERT INTO estoque (material, categoria, quantidade, limite_alerta, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.Material, item.Categoria, item.Quantidade, item.LimiteAlerta, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert item estoque: %w", err)
	}
	return nil
}

// Atualizar grava quantidade e limite de alerta.
func (r *EstoqueRepo) Atualizar(item *entity.ItemEstoque) error {
	query := `
		UPDATE estoque SET quantidade = $2, limite_alerta = $3, updated_at = $4
		WHERE material = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.Material, item.Quantidade, item.LimiteAlerta, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item estoque: %w", err)
	}
	return nil
}

// Listar devolve os itens por nome; categoria vazia devolve todos.
func (r *EstoqueRepo) Listar(categoria string) ([]*entity.ItemEstoque, error) {
	query := `
		SELECT material, categoria, quantidade, limite_alerta, updated_at
		FROM estoque`
	var args []any
	if categoria != "" {
		query += ` WHERE categoria = $1`
		args = append(args, categoria)
	}
	query += ` ORDER BY material ASC`
	return r.buscarVarios(query, args...)
}

// ListarAbaixoDoLimite devolve os materiais no nível de alerta.
func (r *EstoqueRepo) ListarAbaixoDoLimite() ([]*entity.ItemEstoque, error) {
	query := `
		SELECT material, categoria, quantidade, limite_alerta, updated_at
		FROM estoque
		WHERE limite_alerta IS NOT NULL AND quantidade <= limite_alerta
		ORDER BY material ASC`
	return r.buscarVarios(query)
}

func (r *EstoqueRepo) buscarVarios(query string, args ...any) ([]*entity.ItemEstoque, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list estoque: %w", err)
	}
	defer rows.Close()

	var list []*entity.ItemEstoque
	for rows.Next() {
		var i entity.ItemEstoque
		if err := rows.Scan(&i.Material, &i.Categoria, &i.Quantidade, &i.LimiteAlerta, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item estoque: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
