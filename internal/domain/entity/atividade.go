package entity

import "time"

// Tipos de produto (definem os campos exigidos nas transições).
const (
	TipoProdutoSublimacao = "sublimacao" // consome papel ao sair da Impressao
	TipoProdutoAlgodao    = "algodao"    // escolhe destino ao sair da Impressao
)

// Atividade representa um pedido em produção fluindo pelos setores.
// Os campos FuncionarioEnvio/ObservacaoEnvio/DataEnvio espelham a última
// movimentação (desnormalizados para exibição barata nas listagens).
type Atividade struct {
	ID              string
	Pedido          string // nome do pedido
	Cliente         string
	Descricao       string
	Imagem          string // URL da imagem principal (colaborador externo faz upload)
	SetorAtual      string
	TipoProduto     string // sublimacao | algodao
	Malha           string // malha consumida no cadastro (vazio = sem baixa de estoque)
	QuantidadePecas int
	Urgente         bool
	StatusRetorno   bool // true apenas logo após um retorno; limpo no próximo concluir
	DataEntrega     time.Time
	Costureira      string

	FuncionarioEnvio string
	ObservacaoEnvio  string
	DataEnvio        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
