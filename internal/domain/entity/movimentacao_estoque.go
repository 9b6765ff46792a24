package entity

import "time"

// Tipos de movimentação de estoque.
const (
	EstoqueEntrada = "entrada"
	EstoqueSaida   = "saida"
	EstoqueAjuste  = "ajuste" // recontagem manual
)

// MovimentacaoEstoque é o rastro de auditoria do estoque de materiais,
// paralelo ao razão de atividades. Imutável depois de inserido.
type MovimentacaoEstoque struct {
	ID         string
	Material   string
	Quantidade int // delta com sinal: positivo em entrada/ajuste+, negativo em saída
	Tipo       string
	Usuario    string
	Observacao string
	PedidoID   *string // preenchido quando a baixa veio de uma atividade
	CreatedAt  time.Time
}
