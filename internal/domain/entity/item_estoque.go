package entity

import (
	"strings"
	"time"
)

// Categorias de material.
const (
	CategoriaMalha = "malha"
	CategoriaPapel = "papel"
)

// ItemEstoque é a quantidade em mãos de um material (malha ou papel).
// A identidade é o nome normalizado em maiúsculas; papel usa "NOME GRAMATURA"
// (ex.: "FOTOGRAFICO 75G"). Quantidade nunca fica negativa.
type ItemEstoque struct {
	Material     string
	Categoria    string
	Quantidade   int
	LimiteAlerta *int // nulo = material nunca dispara alerta
	UpdatedAt    time.Time
}

// AbaixoDoLimite informa se o item está no nível de alerta.
func (i *ItemEstoque) AbaixoDoLimite() bool {
	return i.LimiteAlerta != nil && i.Quantidade <= *i.LimiteAlerta
}

// NormalizarMaterial normaliza o nome de um material para uso como identidade
// (maiúsculas, espaços colapsados).
func NormalizarMaterial(nome string) string {
	return strings.ToUpper(strings.Join(strings.Fields(nome), " "))
}
