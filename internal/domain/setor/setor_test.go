package setor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
)

func TestSequenciaPadrao(t *testing.T) {
	s := setor.Nova(nil)
	require.Len(t, s.Setores(), 6)
	assert.Equal(t, setor.Gabarito, s.Inicial())
	assert.Equal(t, setor.Finalizado, s.Final())
}

// Proximo do primeiro setor deve ser o segundo da sequência.
func TestProximoDoInicial(t *testing.T) {
	s := setor.Nova(nil)
	assert.Equal(t, setor.Impressao, s.Proximo(s.Inicial()))
}

// No terminal, Proximo é idempotente: devolve o próprio setor.
func TestProximoNoTerminal(t *testing.T) {
	s := setor.Nova(nil)
	assert.Equal(t, setor.Finalizado, s.Proximo(setor.Finalizado))
}

// No setor de entrada, Anterior devolve o próprio setor.
func TestAnteriorNoInicial(t *testing.T) {
	s := setor.Nova(nil)
	assert.Equal(t, setor.Gabarito, s.Anterior(setor.Gabarito))
}

func TestVizinhosNoMeio(t *testing.T) {
	s := setor.Nova(nil)
	assert.Equal(t, setor.Costura, s.Proximo(setor.Batida))
	assert.Equal(t, setor.Batida, s.Anterior(setor.Costura))
}

// Nome desconhecido: nunca falha, devolve o argumento sem alteração.
func TestSetorDesconhecido(t *testing.T) {
	s := setor.Nova(nil)
	assert.Equal(t, "Expedicao", s.Proximo("Expedicao"))
	assert.Equal(t, "Expedicao", s.Anterior("Expedicao"))
	assert.False(t, s.Contem("Expedicao"))
}

func TestSequenciaConfigurada(t *testing.T) {
	s := setor.Nova([]string{"Corte", "Montagem", "Pronto"})
	assert.Equal(t, "Corte", s.Inicial())
	assert.Equal(t, "Pronto", s.Final())
	assert.Equal(t, "Montagem", s.Proximo("Corte"))
}
