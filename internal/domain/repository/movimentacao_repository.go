package repository

import (
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
)

// MovimentacaoRepository é o porto do razão de movimentações de atividades.
// Append-only: não há atualização nem remoção — correções entram como novas
// movimentações compensatórias.
type MovimentacaoRepository interface {
	Criar(m *entity.Movimentacao) error
	// ListarPorPedido devolve o histórico de um pedido em ordem cronológica
	// (mais antiga primeiro) — a linha do tempo e o cálculo de tempo de ciclo
	// dependem dessa ordenação.
	ListarPorPedido(pedidoID string) ([]*entity.Movimentacao, error)
	// ListarConclusoes devolve as saídas de um setor (tipo concluiu ou
	// concluiu_retorno) no intervalo, em ordem cronológica.
	ListarConclusoes(setorOrigem string, de, ate *time.Time) ([]*entity.Movimentacao, error)
	// ListarEntradas devolve as movimentações com destino no setor, em ordem
	// cronológica (usadas para parear entrada/saída no tempo de ciclo).
	ListarEntradas(setorDestino string, de, ate *time.Time) ([]*entity.Movimentacao, error)
	// Listar devolve o histórico geral, mais recente primeiro.
	Listar(limit, offset int) ([]*entity.Movimentacao, error)
}
