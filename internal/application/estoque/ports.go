package estoque

import (
	"context"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados à tx. Garante a atomicidade saldo+auditoria.
type TxRunner interface {
	RunEstoque(ctx context.Context, fn func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
	) error) error
}

// Notificador recebe alertas de estoque baixo depois do commit.
// As implementações não podem bloquear o caso de uso.
type Notificador interface {
	NotificarEstoqueBaixo(itens []*entity.ItemEstoque)
}
