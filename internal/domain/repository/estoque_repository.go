package repository

import "github.com/iurijampa/sistemanovofabrica/internal/domain/entity"

// EstoqueRepository define o porto de consulta/atualização do estoque de
// materiais. Obter* devolvem (nil, nil) para material desconhecido — a
// tradução para erro de domínio é responsabilidade do caso de uso.
type EstoqueRepository interface {
	Obter(material string) (*entity.ItemEstoque, error)
	// ObterParaAtualizar bloqueia a linha (SELECT FOR UPDATE) dentro de
	// transação, para a verificação saldo >= quantidade sem corrida.
	ObterParaAtualizar(material string) (*entity.ItemEstoque, error)
	Criar(item *entity.ItemEstoque) error
	Atualizar(item *entity.ItemEstoque) error
	// Listar devolve os itens; categoria vazia devolve todos.
	Listar(categoria string) ([]*entity.ItemEstoque, error)
	ListarAbaixoDoLimite() ([]*entity.ItemEstoque, error)
}

// MovimentacaoEstoqueRepository é o porto do rastro de auditoria do estoque.
// Append-only, como o razão de atividades.
type MovimentacaoEstoqueRepository interface {
	Criar(m *entity.MovimentacaoEstoque) error
	// Listar devolve movimentações mais recentes primeiro; material vazio
	// devolve todas.
	Listar(material string, limit, offset int) ([]*entity.MovimentacaoEstoque, error)
}
