package atividade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
)

// UseCase implementa o ciclo de vida dos pedidos: cadastro no primeiro setor,
// avanço e retorno pela sequência, edição e remoção. Toda transição grava
// exatamente uma movimentação no razão, na mesma transação da mudança de
// estado; a baixa de estoque (malha no cadastro, papel na saída da Impressao)
// também entra nessa transação.
type UseCase struct {
	txRunner      TxRunner
	atividadeRepo repository.AtividadeRepository
	movRepo       repository.MovimentacaoRepository
	estoqueUC     EstoqueUseCase
	sequencia     setor.Sequencia
	notificador   Notificador
	metricas      Metricas
	agora         func() time.Time
}

// NewUseCase constrói o caso de uso. notificador e metricas podem ser nil.
func NewUseCase(
	txRunner TxRunner,
	atividadeRepo repository.AtividadeRepository,
	movRepo repository.MovimentacaoRepository,
	estoqueUC EstoqueUseCase,
	sequencia setor.Sequencia,
	notificador Notificador,
	metricas Metricas,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		atividadeRepo: atividadeRepo,
		movRepo:       movRepo,
		estoqueUC:     estoqueUC,
		sequencia:     sequencia,
		notificador:   notificador,
		metricas:      metricas,
		agora:         time.Now,
	}
}

// Cadastrar cria o pedido no setor inicial escolhido (vazio entra no primeiro
// setor da sequência). Se Malha for informada, a baixa de estoque
// (quantidade = peças) acontece na mesma transação; estoque insuficiente
// aborta o cadastro inteiro.
func (uc *UseCase) Cadastrar(ctx context.Context, in dto.CadastrarAtividadeRequest) (*entity.Atividade, error) {
	if in.Pedido == "" || in.Funcionario == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.TipoProduto != entity.TipoProdutoSublimacao && in.TipoProduto != entity.TipoProdutoAlgodao {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Malha != "" && in.QuantidadePecas <= 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.SetorInicial != "" && !uc.sequencia.Contem(in.SetorInicial) {
		return nil, domain.ErrSetorInvalido
	}

	now := uc.agora()
	inicial := uc.sequencia.Inicial()
	if in.SetorInicial != "" {
		inicial = in.SetorInicial
	}
	a := &entity.Atividade{
		ID:               uuid.New().String(),
		Pedido:           in.Pedido,
		Cliente:          in.Cliente,
		Descricao:        in.Descricao,
		Imagem:           in.Imagem,
		SetorAtual:       inicial,
		TipoProduto:      in.TipoProduto,
		Malha:            in.Malha,
		QuantidadePecas:  in.QuantidadePecas,
		Urgente:          in.Urgente,
		DataEntrega:      in.DataEntrega,
		FuncionarioEnvio: in.Funcionario,
		ObservacaoEnvio:  in.Observacao,
		DataEnvio:        &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var emAlerta *entity.ItemEstoque
	err := uc.txRunner.Run(ctx, func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		estoqueRepo repository.EstoqueRepository,
		movEstoqueRepo repository.MovimentacaoEstoqueRepository,
	) error {
		if in.Malha != "" {
			item, err := uc.estoqueUC.SaidaInTx(
				estoqueRepo, movEstoqueRepo,
				in.Malha, in.QuantidadePecas,
				in.Funcionario, fmt.Sprintf("cadastro do pedido %s", in.Pedido),
				&a.ID, now,
			)
			if err != nil {
				return err
			}
			if item.AbaixoDoLimite() {
				emAlerta = item
			}
		}
		if err := atividadeRepo.Criar(a); err != nil {
			return err
		}
		destino := inicial
		return movRepo.Criar(&entity.Movimentacao{
			ID:              uuid.New().String(),
			PedidoID:        a.ID,
			SetorDestino:    &destino,
			Tipo:            entity.TipoCadastrou,
			Funcionario:     in.Funcionario,
			Observacao:      in.Observacao,
			Data:            now,
			QuantidadePecas: in.QuantidadePecas,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.depoisDaTransicao(a, entity.TipoCadastrou, inicial, emAlerta)
	return a, nil
}

// Concluir avança o pedido para o próximo setor. Regras por setor de origem:
// saída da Batida exige costureira, pelo menos um batedor e a máquina usada;
// saída da Impressao em sublimação exige o papel, que é baixado do estoque
// (quantidade = peças) na mesma transação; algodão saindo da Impressao pode
// escolher o destino (Batida ou Costura). Um pedido em StatusRetorno gera
// movimentação concluiu_retorno e tem a flag limpa.
func (uc *UseCase) Concluir(ctx context.Context, id string, in dto.ConcluirAtividadeRequest) (*entity.Atividade, error) {
	if in.Funcionario == "" {
		return nil, domain.ErrEntradaInvalida
	}

	now := uc.agora()
	var atualizada *entity.Atividade
	var tipo string
	var emAlerta *entity.ItemEstoque

	err := uc.txRunner.Run(ctx, func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		estoqueRepo repository.EstoqueRepository,
		movEstoqueRepo repository.MovimentacaoEstoqueRepository,
	) error {
		a, err := atividadeRepo.ObterPorIDParaAtualizar(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrAtividadeNaoEncontrada
		}
		origem := a.SetorAtual
		if origem == uc.sequencia.Final() {
			return domain.ErrSetorFinal
		}
		if !uc.sequencia.Contem(origem) {
			return domain.ErrSetorInvalido
		}

		destino := uc.sequencia.Proximo(origem)
		mov := &entity.Movimentacao{
			ID:              uuid.New().String(),
			PedidoID:        a.ID,
			SetorOrigem:     &origem,
			SetorDestino:    &destino,
			Funcionario:     in.Funcionario,
			Observacao:      in.Observacao,
			Data:            now,
			QuantidadePecas: a.QuantidadePecas,
		}

		switch origem {
		case setor.Batida:
			batedores := nomesLimpos(in.Batedores)
			if in.Costureira == "" || len(batedores) == 0 || in.MaquinaBatida == "" {
				return domain.ErrEntradaInvalida
			}
			costureira, maquina := in.Costureira, in.MaquinaBatida
			mov.Costureira = &costureira
			mov.Batedores = batedores
			mov.MaquinaBatida = &maquina
			a.Costureira = in.Costureira

		case setor.Impressao:
			switch a.TipoProduto {
			case entity.TipoProdutoSublimacao:
				if in.Papel == "" {
					return domain.ErrEntradaInvalida
				}
				papel := entity.NormalizarMaterial(in.Papel)
				item, err := uc.estoqueUC.SaidaInTx(
					estoqueRepo, movEstoqueRepo,
					papel, a.QuantidadePecas,
					in.Funcionario, fmt.Sprintf("impressão do pedido %s", a.Pedido),
					&a.ID, now,
				)
				if err != nil {
					if errors.Is(err, domain.ErrMaterialNaoEncontrado) {
						return domain.ErrPapelNaoEncontrado
					}
					return err
				}
				if item.AbaixoDoLimite() {
					emAlerta = item
				}
				mov.Papel = &papel
				if in.MaquinaImpressao != "" {
					maquina := in.MaquinaImpressao
					mov.MaquinaImpressao = &maquina
				}
			case entity.TipoProdutoAlgodao:
				// algodão não consome papel e pode pular a Batida
				if in.Destino != "" {
					if in.Destino != setor.Batida && in.Destino != setor.Costura {
						return domain.ErrEntradaInvalida
					}
					destino = in.Destino
					mov.SetorDestino = &destino
				}
			}
		}

		tipo = entity.TipoConcluiu
		if a.StatusRetorno {
			tipo = entity.TipoConcluiuRetorno
			a.StatusRetorno = false
		}
		mov.Tipo = tipo

		a.SetorAtual = destino
		a.FuncionarioEnvio = in.Funcionario
		a.ObservacaoEnvio = in.Observacao
		a.DataEnvio = &now
		a.UpdatedAt = now

		if err := atividadeRepo.Atualizar(a); err != nil {
			return err
		}
		if err := movRepo.Criar(mov); err != nil {
			return err
		}
		atualizada = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.depoisDaTransicao(atualizada, tipo, atualizada.SetorAtual, emAlerta)
	return atualizada, nil
}

// Retornar devolve o pedido ao setor anterior com a justificativa obrigatória
// e marca StatusRetorno. Nenhum estorno de estoque acontece: o material já foi
// consumido fisicamente.
func (uc *UseCase) Retornar(ctx context.Context, id string, in dto.RetornarAtividadeRequest) (*entity.Atividade, error) {
	if in.Funcionario == "" || in.Observacao == "" {
		return nil, domain.ErrEntradaInvalida
	}

	now := uc.agora()
	var atualizada *entity.Atividade

	err := uc.txRunner.Run(ctx, func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.EstoqueRepository,
		_ repository.MovimentacaoEstoqueRepository,
	) error {
		a, err := atividadeRepo.ObterPorIDParaAtualizar(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrAtividadeNaoEncontrada
		}
		origem := a.SetorAtual
		if origem == uc.sequencia.Inicial() {
			return domain.ErrSetorInicial
		}
		if !uc.sequencia.Contem(origem) {
			return domain.ErrSetorInvalido
		}
		destino := uc.sequencia.Anterior(origem)

		a.SetorAtual = destino
		a.StatusRetorno = true
		a.FuncionarioEnvio = in.Funcionario
		a.ObservacaoEnvio = in.Observacao
		a.DataEnvio = &now
		a.UpdatedAt = now

		if err := atividadeRepo.Atualizar(a); err != nil {
			return err
		}
		if err := movRepo.Criar(&entity.Movimentacao{
			ID:              uuid.New().String(),
			PedidoID:        a.ID,
			SetorOrigem:     &origem,
			SetorDestino:    &destino,
			Tipo:            entity.TipoRetornou,
			Funcionario:     in.Funcionario,
			Observacao:      in.Observacao,
			Data:            now,
			QuantidadePecas: a.QuantidadePecas,
		}); err != nil {
			return err
		}
		atualizada = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.depoisDaTransicao(atualizada, entity.TipoRetornou, atualizada.SetorAtual, nil)
	return atualizada, nil
}

// Editar atualiza campos do pedido. Mudança de setor por edição gera
// movimentação editou; os demais campos mudam sem tocar o razão. Edição
// nunca mexe no estoque.
func (uc *UseCase) Editar(ctx context.Context, id string, in dto.EditarAtividadeRequest) (*entity.Atividade, error) {
	if in.Funcionario == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.SetorAtual != nil && !uc.sequencia.Contem(*in.SetorAtual) {
		return nil, domain.ErrSetorInvalido
	}

	now := uc.agora()
	var atualizada *entity.Atividade
	mudouSetor := false

	err := uc.txRunner.Run(ctx, func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.EstoqueRepository,
		_ repository.MovimentacaoEstoqueRepository,
	) error {
		a, err := atividadeRepo.ObterPorIDParaAtualizar(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrAtividadeNaoEncontrada
		}
		origem := a.SetorAtual

		if in.Pedido != nil {
			a.Pedido = *in.Pedido
		}
		if in.Cliente != nil {
			a.Cliente = *in.Cliente
		}
		if in.Descricao != nil {
			a.Descricao = *in.Descricao
		}
		if in.Imagem != nil {
			a.Imagem = *in.Imagem
		}
		if in.QuantidadePecas != nil && *in.QuantidadePecas >= 0 {
			a.QuantidadePecas = *in.QuantidadePecas
		}
		if in.Urgente != nil {
			a.Urgente = *in.Urgente
		}
		if in.DataEntrega != nil {
			a.DataEntrega = *in.DataEntrega
		}
		if in.Costureira != nil {
			a.Costureira = *in.Costureira
		}
		if in.SetorAtual != nil && *in.SetorAtual != origem {
			a.SetorAtual = *in.SetorAtual
			mudouSetor = true
		}
		a.UpdatedAt = now

		if err := atividadeRepo.Atualizar(a); err != nil {
			return err
		}
		if mudouSetor {
			destino := a.SetorAtual
			if err := movRepo.Criar(&entity.Movimentacao{
				ID:              uuid.New().String(),
				PedidoID:        a.ID,
				SetorOrigem:     &origem,
				SetorDestino:    &destino,
				Tipo:            entity.TipoEditou,
				Funcionario:     in.Funcionario,
				Data:            now,
				QuantidadePecas: a.QuantidadePecas,
			}); err != nil {
				return err
			}
		}
		atualizada = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mudouSetor {
		uc.depoisDaTransicao(atualizada, entity.TipoEditou, atualizada.SetorAtual, nil)
	}
	return atualizada, nil
}

// Apagar remove o pedido. A movimentação apagou entra no razão antes da
// remoção, na mesma transação; o histórico do pedido sobrevive à atividade.
func (uc *UseCase) Apagar(ctx context.Context, id string, in dto.ApagarAtividadeRequest) error {
	if in.Funcionario == "" {
		return domain.ErrEntradaInvalida
	}

	now := uc.agora()
	var apagada *entity.Atividade

	err := uc.txRunner.Run(ctx, func(
		atividadeRepo repository.AtividadeRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.EstoqueRepository,
		_ repository.MovimentacaoEstoqueRepository,
	) error {
		a, err := atividadeRepo.ObterPorIDParaAtualizar(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrAtividadeNaoEncontrada
		}
		origem := a.SetorAtual
		if err := movRepo.Criar(&entity.Movimentacao{
			ID:              uuid.New().String(),
			PedidoID:        a.ID,
			SetorOrigem:     &origem,
			Tipo:            entity.TipoApagou,
			Funcionario:     in.Funcionario,
			Observacao:      in.Observacao,
			Data:            now,
			QuantidadePecas: a.QuantidadePecas,
		}); err != nil {
			return err
		}
		if err := atividadeRepo.Apagar(a.ID); err != nil {
			return err
		}
		apagada = a
		return nil
	})
	if err != nil {
		return err
	}

	uc.depoisDaTransicao(apagada, entity.TipoApagou, apagada.SetorAtual, nil)
	return nil
}

// ObterPorID devolve o pedido ou ErrAtividadeNaoEncontrada.
func (uc *UseCase) ObterPorID(id string) (*entity.Atividade, error) {
	a, err := uc.atividadeRepo.ObterPorID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAtividadeNaoEncontrada
	}
	return a, nil
}

// Listar devolve os pedidos ordenados por data de entrega; setorFiltro vazio
// devolve todos.
func (uc *UseCase) Listar(setorFiltro string) ([]*entity.Atividade, error) {
	if setorFiltro != "" && !uc.sequencia.Contem(setorFiltro) {
		return nil, domain.ErrSetorInvalido
	}
	return uc.atividadeRepo.Listar(setorFiltro)
}

// Historico devolve a linha do tempo de um pedido, mais antiga primeiro.
// Funciona também para pedidos já apagados (o razão sobrevive).
func (uc *UseCase) Historico(pedidoID string) ([]*entity.Movimentacao, error) {
	return uc.movRepo.ListarPorPedido(pedidoID)
}

// depoisDaTransicao dispara os efeitos pós-commit: métricas, evento de
// atividade e alerta de estoque baixo.
func (uc *UseCase) depoisDaTransicao(a *entity.Atividade, tipo, setorNome string, emAlerta *entity.ItemEstoque) {
	if uc.metricas != nil {
		uc.metricas.ContarTransicao(tipo, setorNome)
	}
	if uc.notificador != nil {
		uc.notificador.NotificarAtividadeAlterada(a, tipo)
	}
	if emAlerta != nil {
		uc.estoqueUC.NotificarAlerta(emAlerta)
	}
}

func nomesLimpos(nomes []string) []string {
	var out []string
	for _, n := range nomes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
