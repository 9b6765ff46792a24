package atividade

import (
	"context"
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados à tx. Toda transição de atividade (estado + razão +
// baixa de estoque) acontece dentro de um Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		estoqueRepo repository.EstoqueRepository,
		movEstoqueRepo repository.MovimentacaoEstoqueRepository,
	) error) error
}

// EstoqueUseCase é a baixa de material dentro da transação do chamador,
// mais a notificação de alerta pós-commit.
type EstoqueUseCase interface {
	SaidaInTx(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
		material string,
		quantidade int,
		usuario, observacao string,
		pedidoID *string,
		now time.Time,
	) (*entity.ItemEstoque, error)
	NotificarAlerta(item *entity.ItemEstoque)
}

// Notificador recebe os eventos de atividade depois do commit.
// As implementações não podem bloquear o caso de uso.
type Notificador interface {
	NotificarAtividadeAlterada(a *entity.Atividade, tipo string)
}

// Metricas contadores de observabilidade. Implementação opcional (nil desliga).
type Metricas interface {
	ContarTransicao(tipo, setor string)
}
