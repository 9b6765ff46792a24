package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado          = errors.New("recurso não encontrado")
	ErrAtividadeNaoEncontrada = errors.New("atividade não encontrada")
	ErrUsuarioNaoEncontrado   = errors.New("usuário não encontrado")
	ErrEntradaInvalida        = errors.New("entrada inválida")
	ErrDuplicado              = errors.New("recurso duplicado")
	ErrNaoAutorizado          = errors.New("não autorizado")
	ErrAcessoNegado           = errors.New("acesso negado")
	ErrEstoqueInsuficiente    = errors.New("estoque insuficiente")
	ErrMaterialNaoEncontrado  = errors.New("material não cadastrado no estoque")
	ErrPapelNaoEncontrado     = errors.New("papel não cadastrado no estoque")
	ErrSetorInvalido          = errors.New("setor inválido")
	ErrSetorFinal             = errors.New("atividade já está no setor final")
	ErrSetorInicial           = errors.New("atividade já está no primeiro setor")
)

// EstoqueInsuficienteError carrega o detalhe de uma saída rejeitada
// (qual material, quanto foi pedido e quanto há disponível).
// errors.Is(err, ErrEstoqueInsuficiente) continua funcionando via Unwrap.
type EstoqueInsuficienteError struct {
	Material   string
	Solicitado int
	Disponivel int
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("estoque insuficiente de %s: solicitado %d, disponível %d",
		e.Material, e.Solicitado, e.Disponivel)
}

func (e *EstoqueInsuficienteError) Unwrap() error { return ErrEstoqueInsuficiente }
