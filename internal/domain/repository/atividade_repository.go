package repository

import "github.com/iurijampa/sistemanovofabrica/internal/domain/entity"

// AtividadeRepository define o porto de persistência das atividades.
// Métodos Obter* devolvem (nil, nil) quando a atividade não existe.
type AtividadeRepository interface {
	Criar(a *entity.Atividade) error
	ObterPorID(id string) (*entity.Atividade, error)
	// ObterPorIDParaAtualizar bloqueia a linha (SELECT FOR UPDATE) para o
	// read-modify-write das transições dentro de transação.
	ObterPorIDParaAtualizar(id string) (*entity.Atividade, error)
	Atualizar(a *entity.Atividade) error
	Apagar(id string) error
	// Listar devolve as atividades ordenadas por data de entrega;
	// setorFiltro vazio devolve todas.
	Listar(setorFiltro string) ([]*entity.Atividade, error)
}
