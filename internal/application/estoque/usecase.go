package estoque

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

// Metricas contadores de observabilidade. Implementação opcional (nil desliga).
type Metricas interface {
	ContarMovimentacaoEstoque(tipo string)
	ContarAlertaEstoque()
}

// UseCase opera o estoque de materiais de forma transacional: toda mudança de
// saldo grava também a movimentação de auditoria, na mesma transação.
type UseCase struct {
	txRunner    TxRunner
	estoqueRepo repository.EstoqueRepository
	movRepo     repository.MovimentacaoEstoqueRepository
	notificador Notificador
	metricas    Metricas
}

// NewUseCase constrói o caso de uso. notificador e metricas podem ser nil.
func NewUseCase(
	txRunner TxRunner,
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoEstoqueRepository,
	notificador Notificador,
	metricas Metricas,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		estoqueRepo: estoqueRepo,
		movRepo:     movRepo,
		notificador: notificador,
		metricas:    metricas,
	}
}

// CriarMaterial cadastra um material novo. Quantidade inicial positiva gera a
// movimentação de entrada correspondente.
func (uc *UseCase) CriarMaterial(ctx context.Context, in dto.CriarMaterialRequest) (*entity.ItemEstoque, error) {
	material := entity.NormalizarMaterial(in.Material)
	if material == "" || in.Quantidade < 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Categoria != entity.CategoriaMalha && in.Categoria != entity.CategoriaPapel {
		return nil, domain.ErrEntradaInvalida
	}

	now := time.Now()
	item := &entity.ItemEstoque{
		Material:     material,
		Categoria:    in.Categoria,
		Quantidade:   in.Quantidade,
		LimiteAlerta: in.LimiteAlerta,
		UpdatedAt:    now,
	}

	err := uc.txRunner.RunEstoque(ctx, func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
	) error {
		existente, err := estoqueRepo.Obter(material)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrDuplicado
		}
		if err := estoqueRepo.Criar(item); err != nil {
			return err
		}
		if in.Quantidade > 0 {
			return movRepo.Criar(&entity.MovimentacaoEstoque{
				ID:         uuid.New().String(),
				Material:   material,
				Quantidade: in.Quantidade,
				Tipo:       entity.EstoqueEntrada,
				Usuario:    in.Usuario,
				Observacao: "cadastro inicial",
				CreatedAt:  now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.metricas != nil && in.Quantidade > 0 {
		uc.metricas.ContarMovimentacaoEstoque(entity.EstoqueEntrada)
	}
	return item, nil
}

// Entrada soma quantidade ao saldo e grava a movimentação de entrada.
func (uc *UseCase) Entrada(ctx context.Context, in dto.EntradaEstoqueRequest) (*entity.ItemEstoque, error) {
	material := entity.NormalizarMaterial(in.Material)
	if material == "" || in.Quantidade <= 0 {
		return nil, domain.ErrEntradaInvalida
	}

	var atualizado *entity.ItemEstoque
	err := uc.txRunner.RunEstoque(ctx, func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
	) error {
		item, err := estoqueRepo.ObterParaAtualizar(material)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrMaterialNaoEncontrado
		}
		item.Quantidade += in.Quantidade
		item.UpdatedAt = time.Now()
		if err := estoqueRepo.Atualizar(item); err != nil {
			return err
		}
		atualizado = item
		return movRepo.Criar(&entity.MovimentacaoEstoque{
			ID:         uuid.New().String(),
			Material:   material,
			Quantidade: in.Quantidade,
			Tipo:       entity.EstoqueEntrada,
			Usuario:    in.Usuario,
			Observacao: in.Observacao,
			CreatedAt:  item.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	if uc.metricas != nil {
		uc.metricas.ContarMovimentacaoEstoque(entity.EstoqueEntrada)
	}
	return atualizado, nil
}

// Saida baixa quantidade do saldo com verificação de disponibilidade.
// Depois do commit, se o item ficou no nível de alerta, notifica.
func (uc *UseCase) Saida(ctx context.Context, in dto.SaidaEstoqueRequest) (*entity.ItemEstoque, error) {
	material := entity.NormalizarMaterial(in.Material)
	if material == "" || in.Quantidade <= 0 {
		return nil, domain.ErrEntradaInvalida
	}

	var atualizado, emAlerta *entity.ItemEstoque
	err := uc.txRunner.RunEstoque(ctx, func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
	) error {
		item, err := uc.SaidaInTx(estoqueRepo, movRepo, material, in.Quantidade, in.Usuario, in.Observacao, nil, time.Now())
		if err != nil {
			return err
		}
		atualizado = item
		if item.AbaixoDoLimite() {
			emAlerta = item
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.depoisDaSaida(emAlerta)
	return atualizado, nil
}

// SaidaInTx executa a baixa usando os repositórios fornecidos (mesma transação
// do chamador). Devolve o item atualizado; o chamador decide notificar alerta
// depois do próprio commit. Saldo insuficiente rejeita com o detalhe do déficit.
func (uc *UseCase) SaidaInTx(
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoEstoqueRepository,
	material string,
	quantidade int,
	usuario, observacao string,
	pedidoID *string,
	now time.Time,
) (*entity.ItemEstoque, error) {
	material = entity.NormalizarMaterial(material)
	if material == "" || quantidade <= 0 {
		return nil, domain.ErrEntradaInvalida
	}
	item, err := estoqueRepo.ObterParaAtualizar(material)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMaterialNaoEncontrado
	}
	if item.Quantidade < quantidade {
		return nil, &domain.EstoqueInsuficienteError{
			Material:   material,
			Solicitado: quantidade,
			Disponivel: item.Quantidade,
		}
	}
	item.Quantidade -= quantidade
	item.UpdatedAt = now
	if err := estoqueRepo.Atualizar(item); err != nil {
		return nil, err
	}
	if err := movRepo.Criar(&entity.MovimentacaoEstoque{
		ID:         uuid.New().String(),
		Material:   material,
		Quantidade: -quantidade,
		Tipo:       entity.EstoqueSaida,
		Usuario:    usuario,
		Observacao: observacao,
		PedidoID:   pedidoID,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}
	return item, nil
}

// depoisDaSaida dispara os efeitos pós-commit de uma saída.
func (uc *UseCase) depoisDaSaida(emAlerta *entity.ItemEstoque) {
	if uc.metricas != nil {
		uc.metricas.ContarMovimentacaoEstoque(entity.EstoqueSaida)
	}
	if emAlerta == nil {
		return
	}
	if uc.metricas != nil {
		uc.metricas.ContarAlertaEstoque()
	}
	if uc.notificador != nil {
		uc.notificador.NotificarEstoqueBaixo([]*entity.ItemEstoque{emAlerta})
	}
}

// NotificarAlerta expõe a notificação pós-commit para baixas feitas dentro da
// transação de outro caso de uso (via SaidaInTx).
func (uc *UseCase) NotificarAlerta(item *entity.ItemEstoque) {
	if item == nil || !item.AbaixoDoLimite() {
		return
	}
	uc.depoisDaSaida(item)
}

// Ajustar fixa a quantidade em mãos após recontagem física, gravando o delta
// como movimentação de ajuste. Delta zero não gera movimentação.
func (uc *UseCase) Ajustar(ctx context.Context, in dto.AjusteEstoqueRequest) (*entity.ItemEstoque, error) {
	material := entity.NormalizarMaterial(in.Material)
	if material == "" || in.Quantidade < 0 {
		return nil, domain.ErrEntradaInvalida
	}

	var atualizado *entity.ItemEstoque
	ajustou := false
	err := uc.txRunner.RunEstoque(ctx, func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoEstoqueRepository,
	) error {
		item, err := estoqueRepo.ObterParaAtualizar(material)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrMaterialNaoEncontrado
		}
		delta := in.Quantidade - item.Quantidade
		item.Quantidade = in.Quantidade
		item.UpdatedAt = time.Now()
		if err := estoqueRepo.Atualizar(item); err != nil {
			return err
		}
		atualizado = item
		if delta == 0 {
			return nil
		}
		ajustou = true
		return movRepo.Criar(&entity.MovimentacaoEstoque{
			ID:         uuid.New().String(),
			Material:   material,
			Quantidade: delta,
			Tipo:       entity.EstoqueAjuste,
			Usuario:    in.Usuario,
			Observacao: in.Observacao,
			CreatedAt:  item.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	if ajustou && uc.metricas != nil {
		uc.metricas.ContarMovimentacaoEstoque(entity.EstoqueAjuste)
	}
	return atualizado, nil
}

// Listar devolve os itens do estoque; categoria vazia devolve todos.
func (uc *UseCase) Listar(categoria string) ([]*entity.ItemEstoque, error) {
	if categoria != "" && categoria != entity.CategoriaMalha && categoria != entity.CategoriaPapel {
		return nil, domain.ErrEntradaInvalida
	}
	return uc.estoqueRepo.Listar(categoria)
}

// Obter devolve um material pelo nome.
func (uc *UseCase) Obter(material string) (*entity.ItemEstoque, error) {
	item, err := uc.estoqueRepo.Obter(entity.NormalizarMaterial(material))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMaterialNaoEncontrado
	}
	return item, nil
}

// ListarAlertas devolve os materiais no nível de alerta.
func (uc *UseCase) ListarAlertas() ([]*entity.ItemEstoque, error) {
	return uc.estoqueRepo.ListarAbaixoDoLimite()
}

// ListarMovimentacoes devolve o rastro de auditoria, mais recente primeiro.
func (uc *UseCase) ListarMovimentacoes(material string, limit, offset int) ([]*entity.MovimentacaoEstoque, error) {
	if material != "" {
		material = entity.NormalizarMaterial(material)
	}
	return uc.movRepo.Listar(material, limit, offset)
}
