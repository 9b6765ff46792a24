package dto

import (
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
)

// CriarMaterialRequest cadastra um material novo no estoque.
type CriarMaterialRequest struct {
	Material     string `json:"material" validate:"required"`
	Categoria    string `json:"categoria" validate:"required,oneof=malha papel"`
	Quantidade   int    `json:"quantidade" validate:"min=0"`
	LimiteAlerta *int   `json:"limiteAlerta"`
	Usuario      string `json:"usuario" validate:"required"`
}

// EntradaEstoqueRequest registra chegada de material.
type EntradaEstoqueRequest struct {
	Material   string `json:"material" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
	Usuario    string `json:"usuario" validate:"required"`
	Observacao string `json:"observacao"`
}

// SaidaEstoqueRequest registra consumo manual de material.
type SaidaEstoqueRequest struct {
	Material   string `json:"material" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
	Usuario    string `json:"usuario" validate:"required"`
	Observacao string `json:"observacao"`
}

// AjusteEstoqueRequest fixa a quantidade em mãos após recontagem física.
type AjusteEstoqueRequest struct {
	Material   string `json:"material" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"min=0"`
	Usuario    string `json:"usuario" validate:"required"`
	Observacao string `json:"observacao"`
}

// ItemEstoqueResponse um material nas respostas.
type ItemEstoqueResponse struct {
	Material       string    `json:"material"`
	Categoria      string    `json:"categoria"`
	Quantidade     int       `json:"quantidade"`
	LimiteAlerta   *int      `json:"limiteAlerta,omitempty"`
	AbaixoDoLimite bool      `json:"abaixoDoLimite"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NovoItemEstoqueResponse converte a entidade para resposta.
func NovoItemEstoqueResponse(i *entity.ItemEstoque) ItemEstoqueResponse {
	return ItemEstoqueResponse{
		Material:       i.Material,
		Categoria:      i.Categoria,
		Quantidade:     i.Quantidade,
		LimiteAlerta:   i.LimiteAlerta,
		AbaixoDoLimite: i.AbaixoDoLimite(),
		UpdatedAt:      i.UpdatedAt,
	}
}

// MovimentacaoEstoqueResponse uma entrada do rastro de auditoria do estoque.
type MovimentacaoEstoqueResponse struct {
	ID         string    `json:"id"`
	Material   string    `json:"material"`
	Quantidade int       `json:"quantidade"`
	Tipo       string    `json:"tipo"`
	Usuario    string    `json:"usuario"`
	Observacao string    `json:"observacao,omitempty"`
	PedidoID   *string   `json:"pedidoId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NovaMovimentacaoEstoqueResponse converte a entidade para resposta.
func NovaMovimentacaoEstoqueResponse(m *entity.MovimentacaoEstoque) MovimentacaoEstoqueResponse {
	return MovimentacaoEstoqueResponse{
		ID:         m.ID,
		Material:   m.Material,
		Quantidade: m.Quantidade,
		Tipo:       m.Tipo,
		Usuario:    m.Usuario,
		Observacao: m.Observacao,
		PedidoID:   m.PedidoID,
		CreatedAt:  m.CreatedAt,
	}
}
