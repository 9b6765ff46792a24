package dto

import (
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
)

// CadastrarAtividadeRequest cria um pedido. SetorInicial vazio entra no
// primeiro setor da sequência; Malha vazia cadastra sem baixa de estoque.
type CadastrarAtividadeRequest struct {
	Pedido          string    `json:"pedido" validate:"required"`
	Cliente         string    `json:"cliente"`
	Descricao       string    `json:"descricao"`
	Imagem          string    `json:"imagem"`
	SetorInicial    string    `json:"setorInicial"`
	TipoProduto     string    `json:"tipoProduto" validate:"required,oneof=sublimacao algodao"`
	Malha           string    `json:"malha"`
	QuantidadePecas int       `json:"quantidadePecas" validate:"min=0"`
	Urgente         bool      `json:"urgente"`
	DataEntrega     time.Time `json:"dataEntrega"`
	Funcionario     string    `json:"funcionario" validate:"required"`
	Observacao      string    `json:"observacao"`
}

// ConcluirAtividadeRequest avança o pedido para o próximo setor.
// Os campos extras são exigidos conforme o setor de origem:
// Impressao (sublimação) exige Papel; Impressao (algodão) aceita Destino;
// Batida exige Costureira, Batedores e MaquinaBatida.
type ConcluirAtividadeRequest struct {
	Funcionario      string   `json:"funcionario" validate:"required"`
	Observacao       string   `json:"observacao"`
	Costureira       string   `json:"costureira"`
	Batedores        []string `json:"batedores"`
	MaquinaBatida    string   `json:"maquinaBatida"`
	Papel            string   `json:"papel"`
	MaquinaImpressao string   `json:"maquinaImpressao"`
	Destino          string   `json:"destino"` // algodão saindo da Impressao: Batida | Costura
}

// RetornarAtividadeRequest devolve o pedido ao setor anterior.
type RetornarAtividadeRequest struct {
	Funcionario string `json:"funcionario" validate:"required"`
	Observacao  string `json:"observacao" validate:"required"`
}

// EditarAtividadeRequest atualiza campos do pedido. Ponteiros nulos
// significam "não alterar".
type EditarAtividadeRequest struct {
	Pedido          *string    `json:"pedido"`
	Cliente         *string    `json:"cliente"`
	Descricao       *string    `json:"descricao"`
	Imagem          *string    `json:"imagem"`
	SetorAtual      *string    `json:"setorAtual"`
	QuantidadePecas *int       `json:"quantidadePecas"`
	Urgente         *bool      `json:"urgente"`
	DataEntrega     *time.Time `json:"dataEntrega"`
	Costureira      *string    `json:"costureira"`
	Funcionario     string     `json:"funcionario" validate:"required"`
}

// ApagarAtividadeRequest remove o pedido (histórico permanece).
type ApagarAtividadeRequest struct {
	Funcionario string `json:"funcionario" validate:"required"`
	Observacao  string `json:"observacao"`
}

// AtividadeResponse representação de um pedido nas respostas.
type AtividadeResponse struct {
	ID               string     `json:"id"`
	Pedido           string     `json:"pedido"`
	Cliente          string     `json:"cliente"`
	Descricao        string     `json:"descricao"`
	Imagem           string     `json:"imagem"`
	SetorAtual       string     `json:"setorAtual"`
	TipoProduto      string     `json:"tipoProduto"`
	Malha            string     `json:"malha,omitempty"`
	QuantidadePecas  int        `json:"quantidadePecas"`
	Urgente          bool       `json:"urgente"`
	StatusRetorno    bool       `json:"statusRetorno"`
	DataEntrega      time.Time  `json:"dataEntrega"`
	Costureira       string     `json:"costureira,omitempty"`
	FuncionarioEnvio string     `json:"funcionarioEnvio,omitempty"`
	ObservacaoEnvio  string     `json:"observacaoEnvio,omitempty"`
	DataEnvio        *time.Time `json:"dataEnvio,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NovaAtividadeResponse converte a entidade para resposta.
func NovaAtividadeResponse(a *entity.Atividade) AtividadeResponse {
	return AtividadeResponse{
		ID:               a.ID,
		Pedido:           a.Pedido,
		Cliente:          a.Cliente,
		Descricao:        a.Descricao,
		Imagem:           a.Imagem,
		SetorAtual:       a.SetorAtual,
		TipoProduto:      a.TipoProduto,
		Malha:            a.Malha,
		QuantidadePecas:  a.QuantidadePecas,
		Urgente:          a.Urgente,
		StatusRetorno:    a.StatusRetorno,
		DataEntrega:      a.DataEntrega,
		Costureira:       a.Costureira,
		FuncionarioEnvio: a.FuncionarioEnvio,
		ObservacaoEnvio:  a.ObservacaoEnvio,
		DataEnvio:        a.DataEnvio,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// MovimentacaoResponse uma entrada do histórico de um pedido.
type MovimentacaoResponse struct {
	ID               string    `json:"id"`
	PedidoID         string    `json:"pedidoId"`
	SetorOrigem      *string   `json:"setorOrigem,omitempty"`
	SetorDestino     *string   `json:"setorDestino,omitempty"`
	Tipo             string    `json:"tipo"`
	Funcionario      string    `json:"funcionario"`
	Observacao       string    `json:"observacao,omitempty"`
	Data             time.Time `json:"data"`
	Costureira       *string   `json:"costureira,omitempty"`
	Batedores        []string  `json:"batedores,omitempty"`
	MaquinaBatida    *string   `json:"maquinaBatida,omitempty"`
	Papel            *string   `json:"papel,omitempty"`
	MaquinaImpressao *string   `json:"maquinaImpressao,omitempty"`
	QuantidadePecas  int       `json:"quantidadePecas"`
}

// NovaMovimentacaoResponse converte a entidade para resposta.
func NovaMovimentacaoResponse(m *entity.Movimentacao) MovimentacaoResponse {
	return MovimentacaoResponse{
		ID:               m.ID,
		PedidoID:         m.PedidoID,
		SetorOrigem:      m.SetorOrigem,
		SetorDestino:     m.SetorDestino,
		Tipo:             m.Tipo,
		Funcionario:      m.Funcionario,
		Observacao:       m.Observacao,
		Data:             m.Data,
		Costureira:       m.Costureira,
		Batedores:        m.Batedores,
		MaquinaBatida:    m.MaquinaBatida,
		Papel:            m.Papel,
		MaquinaImpressao: m.MaquinaImpressao,
		QuantidadePecas:  m.QuantidadePecas,
	}
}
