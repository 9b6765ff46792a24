package atividade_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
)

type fakeAtividadeRepo struct {
	atividades map[string]*entity.Atividade
}

func (r *fakeAtividadeRepo) Criar(a *entity.Atividade) error {
	c := *a
	r.atividades[a.ID] = &c
	return nil
}

func (r *fakeAtividadeRepo) ObterPorID(id string) (*entity.Atividade, error) {
	a, ok := r.atividades[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *fakeAtividadeRepo) ObterPorIDParaAtualizar(id string) (*entity.Atividade, error) {
	return r.ObterPorID(id)
}

func (r *fakeAtividadeRepo) Atualizar(a *entity.Atividade) error {
	c := *a
	r.atividades[a.ID] = &c
	return nil
}

func (r *fakeAtividadeRepo) Apagar(id string) error {
	delete(r.atividades, id)
	return nil
}

func (r *fakeAtividadeRepo) Listar(setorFiltro string) ([]*entity.Atividade, error) {
	var out []*entity.Atividade
	for _, a := range r.atividades {
		if setorFiltro == "" || a.SetorAtual == setorFiltro {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataEntrega.Before(out[j].DataEntrega) })
	return out, nil
}

type fakeMovRepo struct {
	movs []*entity.Movimentacao
}

func (r *fakeMovRepo) Criar(m *entity.Movimentacao) error {
	c := *m
	r.movs = append(r.movs, &c)
	return nil
}

func (r *fakeMovRepo) ListarPorPedido(pedidoID string) ([]*entity.Movimentacao, error) {
	var out []*entity.Movimentacao
	for _, m := range r.movs {
		if m.PedidoID == pedidoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) ListarConclusoes(setorOrigem string, de, ate *time.Time) ([]*entity.Movimentacao, error) {
	var out []*entity.Movimentacao
	for _, m := range r.movs {
		if m.SetorOrigem != nil && *m.SetorOrigem == setorOrigem &&
			(m.Tipo == entity.TipoConcluiu || m.Tipo == entity.TipoConcluiuRetorno) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) ListarEntradas(setorDestino string, de, ate *time.Time) ([]*entity.Movimentacao, error) {
	var out []*entity.Movimentacao
	for _, m := range r.movs {
		if m.SetorDestino != nil && *m.SetorDestino == setorDestino {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) Listar(limit, offset int) ([]*entity.Movimentacao, error) {
	out := make([]*entity.Movimentacao, 0, len(r.movs))
	for i := len(r.movs) - 1; i >= 0; i-- {
		out = append(out, r.movs[i])
	}
	return out, nil
}

type fakeEstoqueRepo struct {
	itens map[string]*entity.ItemEstoque
}

func (r *fakeEstoqueRepo) Obter(material string) (*entity.ItemEstoque, error) {
	item, ok := r.itens[material]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *fakeEstoqueRepo) ObterParaAtualizar(material string) (*entity.ItemEstoque, error) {
	return r.Obter(material)
}

func (r *fakeEstoqueRepo) Criar(item *entity.ItemEstoque) error {
	c := *item
	r.itens[item.Material] = &c
	return nil
}

func (r *fakeEstoqueRepo) Atualizar(item *entity.ItemEstoque) error {
	c := *item
	r.itens[item.Material] = &c
	return nil
}

func (r *fakeEstoqueRepo) Listar(categoria string) ([]*entity.ItemEstoque, error) {
	var out []*entity.ItemEstoque
	for _, i := range r.itens {
		if categoria == "" || i.Categoria == categoria {
			c := *i
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeEstoqueRepo) ListarAbaixoDoLimite() ([]*entity.ItemEstoque, error) {
	var out []*entity.ItemEstoque
	for _, i := range r.itens {
		if i.AbaixoDoLimite() {
			c := *i
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeMovEstoqueRepo struct {
	movs []*entity.MovimentacaoEstoque
}

func (r *fakeMovEstoqueRepo) Criar(m *entity.MovimentacaoEstoque) error {
	c := *m
	r.movs = append(r.movs, &c)
	return nil
}

func (r *fakeMovEstoqueRepo) Listar(material string, limit, offset int) ([]*entity.MovimentacaoEstoque, error) {
	return r.movs, nil
}

// fakeTxRunner simula rollback restaurando o snapshot de todos os
// repositórios quando fn falha.
type fakeTxRunner struct {
	atividadeRepo  *fakeAtividadeRepo
	movRepo        *fakeMovRepo
	estoqueRepo    *fakeEstoqueRepo
	movEstoqueRepo *fakeMovEstoqueRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	atividadeRepo repository.AtividadeRepository,
	movRepo repository.MovimentacaoRepository,
	estoqueRepo repository.EstoqueRepository,
	movEstoqueRepo repository.MovimentacaoEstoqueRepository,
) error) error {
	snapAtividades := make(map[string]*entity.Atividade, len(t.atividadeRepo.atividades))
	for k, v := range t.atividadeRepo.atividades {
		c := *v
		snapAtividades[k] = &c
	}
	snapItens := make(map[string]*entity.ItemEstoque, len(t.estoqueRepo.itens))
	for k, v := range t.estoqueRepo.itens {
		c := *v
		snapItens[k] = &c
	}
	snapMovs := len(t.movRepo.movs)
	snapMovsEstoque := len(t.movEstoqueRepo.movs)

	if err := fn(t.atividadeRepo, t.movRepo, t.estoqueRepo, t.movEstoqueRepo); err != nil {
		t.atividadeRepo.atividades = snapAtividades
		t.estoqueRepo.itens = snapItens
		t.movRepo.movs = t.movRepo.movs[:snapMovs]
		t.movEstoqueRepo.movs = t.movEstoqueRepo.movs[:snapMovsEstoque]
		return err
	}
	return nil
}

type ambiente struct {
	uc             *atividade.UseCase
	atividadeRepo  *fakeAtividadeRepo
	movRepo        *fakeMovRepo
	estoqueRepo    *fakeEstoqueRepo
	movEstoqueRepo *fakeMovEstoqueRepo
}

func montar(t *testing.T) *ambiente {
	t.Helper()
	env := &ambiente{
		atividadeRepo:  &fakeAtividadeRepo{atividades: make(map[string]*entity.Atividade)},
		movRepo:        &fakeMovRepo{},
		estoqueRepo:    &fakeEstoqueRepo{itens: make(map[string]*entity.ItemEstoque)},
		movEstoqueRepo: &fakeMovEstoqueRepo{},
	}
	tx := &fakeTxRunner{
		atividadeRepo:  env.atividadeRepo,
		movRepo:        env.movRepo,
		estoqueRepo:    env.estoqueRepo,
		movEstoqueRepo: env.movEstoqueRepo,
	}
	estoqueUC := estoque.NewUseCase(nil, env.estoqueRepo, env.movEstoqueRepo, nil, nil)
	env.uc = atividade.NewUseCase(tx, env.atividadeRepo, env.movRepo, estoqueUC, setor.Nova(nil), nil, nil)
	return env
}

func cadastrarRequest() dto.CadastrarAtividadeRequest {
	return dto.CadastrarAtividadeRequest{
		Pedido:          "Fardamento Escola X",
		Cliente:         "Escola X",
		TipoProduto:     entity.TipoProdutoSublimacao,
		QuantidadePecas: 30,
		DataEntrega:     time.Now().AddDate(0, 0, 7),
		Funcionario:     "admin",
	}
}

func concluirRequest(origem string) dto.ConcluirAtividadeRequest {
	in := dto.ConcluirAtividadeRequest{Funcionario: "setor"}
	switch origem {
	case setor.Impressao:
		in.Papel = "FOTOGRAFICO 75G"
	case setor.Batida:
		in.Costureira = "Maria"
		in.Batedores = []string{"Sandro"}
		in.MaquinaBatida = "Calandra"
	}
	return in
}

func TestCadastrarGeraUmaMovimentacao(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	assert.Equal(t, setor.Gabarito, a.SetorAtual)
	require.Len(t, env.movRepo.movs, 1)
	m := env.movRepo.movs[0]
	assert.Equal(t, entity.TipoCadastrou, m.Tipo)
	assert.Nil(t, m.SetorOrigem)
	require.NotNil(t, m.SetorDestino)
	assert.Equal(t, setor.Gabarito, *m.SetorDestino)
}

func TestCadastrarComSetorInicialEscolhido(t *testing.T) {
	env := montar(t)
	in := cadastrarRequest()
	in.SetorInicial = setor.Costura

	a, err := env.uc.Cadastrar(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, setor.Costura, a.SetorAtual)
	require.Len(t, env.movRepo.movs, 1)
	m := env.movRepo.movs[0]
	assert.Equal(t, entity.TipoCadastrou, m.Tipo)
	assert.Nil(t, m.SetorOrigem)
	require.NotNil(t, m.SetorDestino)
	assert.Equal(t, setor.Costura, *m.SetorDestino)
}

func TestCadastrarComSetorInicialInvalido(t *testing.T) {
	env := montar(t)
	in := cadastrarRequest()
	in.SetorInicial = "Pintura"

	_, err := env.uc.Cadastrar(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrSetorInvalido)
	assert.Empty(t, env.atividadeRepo.atividades)
	assert.Empty(t, env.movRepo.movs)
}

func TestCadastrarComMalhaBaixaEstoque(t *testing.T) {
	env := montar(t)
	env.estoqueRepo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha, Quantidade: 100,
	}
	in := cadastrarRequest()
	in.Malha = "dryfit"

	a, err := env.uc.Cadastrar(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 70, env.estoqueRepo.itens["DRYFIT"].Quantidade)
	require.Len(t, env.movEstoqueRepo.movs, 1)
	assert.Equal(t, -30, env.movEstoqueRepo.movs[0].Quantidade)
	require.NotNil(t, env.movEstoqueRepo.movs[0].PedidoID)
	assert.Equal(t, a.ID, *env.movEstoqueRepo.movs[0].PedidoID)
}

func TestCadastrarComEstoqueInsuficienteAbortaTudo(t *testing.T) {
	env := montar(t)
	env.estoqueRepo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha, Quantidade: 10,
	}
	in := cadastrarRequest()
	in.Malha = "DRYFIT"

	_, err := env.uc.Cadastrar(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	// nada pode ter sobrado da tentativa
	assert.Empty(t, env.atividadeRepo.atividades)
	assert.Empty(t, env.movRepo.movs)
	assert.Empty(t, env.movEstoqueRepo.movs)
	assert.Equal(t, 10, env.estoqueRepo.itens["DRYFIT"].Quantidade)
}

func TestConcluirAteOFinal(t *testing.T) {
	env := montar(t)
	env.estoqueRepo.itens["FOTOGRAFICO 75G"] = &entity.ItemEstoque{
		Material: "FOTOGRAFICO 75G", Categoria: entity.CategoriaPapel, Quantidade: 1000,
	}
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	esperados := []string{setor.Impressao, setor.Batida, setor.Costura, setor.Embalagem, setor.Finalizado}
	for _, destino := range esperados {
		atual, err := env.uc.ObterPorID(a.ID)
		require.NoError(t, err)
		atualizado, err := env.uc.Concluir(context.Background(), a.ID, concluirRequest(atual.SetorAtual))
		require.NoError(t, err)
		assert.Equal(t, destino, atualizado.SetorAtual)
	}

	// no setor final não há mais para onde avançar
	movsAntes := len(env.movRepo.movs)
	_, err = env.uc.Concluir(context.Background(), a.ID, dto.ConcluirAtividadeRequest{Funcionario: "setor"})
	assert.ErrorIs(t, err, domain.ErrSetorFinal)
	assert.Len(t, env.movRepo.movs, movsAntes)
}

func TestConcluirImpressaoConsomePapel(t *testing.T) {
	env := montar(t)
	env.estoqueRepo.itens["FOTOGRAFICO 75G"] = &entity.ItemEstoque{
		Material: "FOTOGRAFICO 75G", Categoria: entity.CategoriaPapel, Quantidade: 100,
	}
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)
	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Gabarito))
	require.NoError(t, err)

	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Impressao))
	require.NoError(t, err)
	assert.Equal(t, 70, env.estoqueRepo.itens["FOTOGRAFICO 75G"].Quantidade)
}

func TestConcluirImpressaoSemPapelCadastradoAborta(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)
	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Gabarito))
	require.NoError(t, err)
	movsAntes := len(env.movRepo.movs)

	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Impressao))
	require.ErrorIs(t, err, domain.ErrPapelNaoEncontrado)

	// rollback: pedido continua na Impressao e sem nova movimentação
	atual, _ := env.uc.ObterPorID(a.ID)
	assert.Equal(t, setor.Impressao, atual.SetorAtual)
	assert.Len(t, env.movRepo.movs, movsAntes)
}

func TestConcluirAlgodaoEscolheDestino(t *testing.T) {
	env := montar(t)
	in := cadastrarRequest()
	in.TipoProduto = entity.TipoProdutoAlgodao
	a, err := env.uc.Cadastrar(context.Background(), in)
	require.NoError(t, err)
	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Gabarito))
	require.NoError(t, err)

	// destino fora do par Batida/Costura é rejeitado
	_, err = env.uc.Concluir(context.Background(), a.ID, dto.ConcluirAtividadeRequest{
		Funcionario: "setor", Destino: setor.Embalagem,
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	atualizado, err := env.uc.Concluir(context.Background(), a.ID, dto.ConcluirAtividadeRequest{
		Funcionario: "setor", Destino: setor.Costura,
	})
	require.NoError(t, err)
	assert.Equal(t, setor.Costura, atualizado.SetorAtual)
}

func TestConcluirBatidaExigeCampos(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)
	env.atividadeRepo.atividades[a.ID].SetorAtual = setor.Batida

	casos := []dto.ConcluirAtividadeRequest{
		{Funcionario: "setor", Batedores: []string{"Sandro"}, MaquinaBatida: "Calandra"},
		{Funcionario: "setor", Costureira: "Maria", MaquinaBatida: "Calandra"},
		{Funcionario: "setor", Costureira: "Maria", Batedores: []string{" "}},
	}
	for _, in := range casos {
		_, err := env.uc.Concluir(context.Background(), a.ID, in)
		assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	}

	atualizado, err := env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Batida))
	require.NoError(t, err)
	assert.Equal(t, setor.Costura, atualizado.SetorAtual)
	assert.Equal(t, "Maria", atualizado.Costureira)

	ultima := env.movRepo.movs[len(env.movRepo.movs)-1]
	require.NotNil(t, ultima.MaquinaBatida)
	assert.Equal(t, "Calandra", *ultima.MaquinaBatida)
	assert.Equal(t, []string{"Sandro"}, ultima.Batedores)
}

func TestRetornarNoPrimeiroSetor(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	_, err = env.uc.Retornar(context.Background(), a.ID, dto.RetornarAtividadeRequest{
		Funcionario: "setor", Observacao: "cor errada",
	})
	assert.ErrorIs(t, err, domain.ErrSetorInicial)
}

func TestRetornarExigeJustificativa(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	_, err = env.uc.Retornar(context.Background(), a.ID, dto.RetornarAtividadeRequest{Funcionario: "setor"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestRetornarDepoisConcluirViraConcluiuRetorno(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)
	_, err = env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Gabarito))
	require.NoError(t, err)

	devolvida, err := env.uc.Retornar(context.Background(), a.ID, dto.RetornarAtividadeRequest{
		Funcionario: "impressao", Observacao: "gabarito errado",
	})
	require.NoError(t, err)
	assert.Equal(t, setor.Gabarito, devolvida.SetorAtual)
	assert.True(t, devolvida.StatusRetorno)

	corrigida, err := env.uc.Concluir(context.Background(), a.ID, concluirRequest(setor.Gabarito))
	require.NoError(t, err)
	assert.False(t, corrigida.StatusRetorno)

	ultima := env.movRepo.movs[len(env.movRepo.movs)-1]
	assert.Equal(t, entity.TipoConcluiuRetorno, ultima.Tipo)
}

func TestEditarSetorGeraMovimentacao(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	destino := setor.Costura
	_, err = env.uc.Editar(context.Background(), a.ID, dto.EditarAtividadeRequest{
		SetorAtual: &destino, Funcionario: "admin",
	})
	require.NoError(t, err)

	ultima := env.movRepo.movs[len(env.movRepo.movs)-1]
	assert.Equal(t, entity.TipoEditou, ultima.Tipo)
	require.NotNil(t, ultima.SetorOrigem)
	assert.Equal(t, setor.Gabarito, *ultima.SetorOrigem)
	assert.Equal(t, setor.Costura, *ultima.SetorDestino)
}

func TestEditarSemMudarSetorNaoTocaORazao(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)
	movsAntes := len(env.movRepo.movs)

	cliente := "Outro Cliente"
	atualizada, err := env.uc.Editar(context.Background(), a.ID, dto.EditarAtividadeRequest{
		Cliente: &cliente, Funcionario: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Outro Cliente", atualizada.Cliente)
	assert.Len(t, env.movRepo.movs, movsAntes)
}

func TestApagarRegistraAntesDeRemover(t *testing.T) {
	env := montar(t)
	a, err := env.uc.Cadastrar(context.Background(), cadastrarRequest())
	require.NoError(t, err)

	err = env.uc.Apagar(context.Background(), a.ID, dto.ApagarAtividadeRequest{Funcionario: "admin"})
	require.NoError(t, err)

	_, err = env.uc.ObterPorID(a.ID)
	assert.ErrorIs(t, err, domain.ErrAtividadeNaoEncontrada)

	// o histórico sobrevive ao pedido
	historico, err := env.uc.Historico(a.ID)
	require.NoError(t, err)
	require.Len(t, historico, 2)
	assert.Equal(t, entity.TipoApagou, historico[1].Tipo)
	assert.Nil(t, historico[1].SetorDestino)
}

func TestApagarInexistente(t *testing.T) {
	env := montar(t)
	err := env.uc.Apagar(context.Background(), "nao-existe", dto.ApagarAtividadeRequest{Funcionario: "admin"})
	assert.ErrorIs(t, err, domain.ErrAtividadeNaoEncontrada)
}
