package entity

import "time"

// Tipos de movimentação de atividade (verbos, como aparecem no histórico:
// "Fulano concluiu o pedido X").
const (
	TipoCadastrou       = "cadastrou"
	TipoConcluiu        = "concluiu"
	TipoConcluiuRetorno = "concluiu_retorno" // concluiu depois de um retorno
	TipoRetornou        = "retornou"
	TipoEditou          = "editou"
	TipoApagou          = "apagou"
)

// TiposConclusao são os tipos que contam como conclusão de setor nas métricas.
func TiposConclusao() []string {
	return []string{TipoConcluiu, TipoConcluiuRetorno}
}

// Movimentacao é um registro imutável do razão de movimentações: toda
// transição de atividade gera exatamente uma entrada. PedidoID é referência
// fraca — permanece válida depois que a atividade é apagada. Correções
// acontecem por entradas compensatórias, nunca por edição in-place.
type Movimentacao struct {
	ID           string
	PedidoID     string
	SetorOrigem  *string // nulo no cadastro
	SetorDestino *string // nulo no apagamento
	Tipo         string
	Funcionario  string // texto livre, não é identidade autenticada
	Observacao   string
	Data         time.Time // atribuída pelo servidor; chave de ordenação das métricas

	// Metadados específicos de transição.
	Costureira       *string  // saída da Batida
	Batedores        []string // quem bateu o pedido (saída da Batida)
	MaquinaBatida    *string  // Calandra | Prensa
	Papel            *string  // papel consumido (saída da Impressao, sublimação)
	MaquinaImpressao *string
	QuantidadePecas  int // fotografia da quantidade no momento da transição
}
