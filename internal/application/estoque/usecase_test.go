package estoque_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
)

// fakeEstoqueRepo guarda os itens em memória, indexados pelo nome.
type fakeEstoqueRepo struct {
	itens map[string]*entity.ItemEstoque
}

func novoFakeEstoqueRepo() *fakeEstoqueRepo {
	return &fakeEstoqueRepo{itens: make(map[string]*entity.ItemEstoque)}
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
	var out []*entity.MovimentacaoEstoque
	for i := len(r.movs) - 1; i >= 0; i-- {
		if material == "" || r.movs[i].Material == material {
			out = append(out, r.movs[i])
		}
	}
	return out, nil
}

// fakeTxRunner simula rollback restaurando o snapshot quando fn falha.
type fakeTxRunner struct {
	estoqueRepo *fakeEstoqueRepo
	movRepo     *fakeMovEstoqueRepo
}

func (t *fakeTxRunner) RunEstoque(_ context.Context, fn func(
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoEstoqueRepository,
) error) error {
	snapItens := make(map[string]*entity.ItemEstoque, len(t.estoqueRepo.itens))
	for k, v := range t.estoqueRepo.itens {
		c := *v
		snapItens[k] = &c
	}
	snapMovs := len(t.movRepo.movs)

	if err := fn(t.estoqueRepo, t.movRepo); err != nil {
		t.estoqueRepo.itens = snapItens
		t.movRepo.movs = t.movRepo.movs[:snapMovs]
		return err
	}
	return nil
}

type fakeNotificador struct {
	alertas [][]*entity.ItemEstoque
}

func (n *fakeNotificador) NotificarEstoqueBaixo(itens []*entity.ItemEstoque) {
	n.alertas = append(n.alertas, itens)
}

func montarEstoque(t *testing.T) (*estoque.UseCase, *fakeEstoqueRepo, *fakeMovEstoqueRepo, *fakeNotificador) {
	t.Helper()
	estoqueRepo := novoFakeEstoqueRepo()
	movRepo := &fakeMovEstoqueRepo{}
	notif := &fakeNotificador{}
	tx := &fakeTxRunner{estoqueRepo: estoqueRepo, movRepo: movRepo}
	uc := estoque.NewUseCase(tx, estoqueRepo, movRepo, notif, nil)
	return uc, estoqueRepo, movRepo, notif
}

func TestSaidaBaixaSaldoEDisparaAlerta(t *testing.T) {
	uc, repo, movs, notif := montarEstoque(t)
	limite := 500
	repo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha,
		Quantidade: 1000, LimiteAlerta: &limite,
	}

	item, err := uc.Saida(context.Background(), dto.SaidaEstoqueRequest{
		Material: "dryfit", Quantidade: 600, Usuario: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 400, item.Quantidade)

	// auditoria com delta negativo
	require.Len(t, movs.movs, 1)
	assert.Equal(t, -600, movs.movs[0].Quantidade)
	assert.Equal(t, entity.EstoqueSaida, movs.movs[0].Tipo)

	// 400 <= 500: alerta disparado uma vez
	require.Len(t, notif.alertas, 1)
	assert.Equal(t, "DRYFIT", notif.alertas[0][0].Material)
}

func TestSaidaInsuficienteNaoMudaNada(t *testing.T) {
	uc, repo, movs, notif := montarEstoque(t)
	repo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha, Quantidade: 400,
	}

	_, err := uc.Saida(context.Background(), dto.SaidaEstoqueRequest{
		Material: "DRYFIT", Quantidade: 500, Usuario: "admin",
	})
	require.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	var detalhe *domain.EstoqueInsuficienteError
	require.ErrorAs(t, err, &detalhe)
	assert.Equal(t, 500, detalhe.Solicitado)
	assert.Equal(t, 400, detalhe.Disponivel)

	// rollback: saldo intacto, sem auditoria, sem alerta
	assert.Equal(t, 400, repo.itens["DRYFIT"].Quantidade)
	assert.Empty(t, movs.movs)
	assert.Empty(t, notif.alertas)
}

func TestSaidaMaterialDesconhecido(t *testing.T) {
	uc, _, _, _ := montarEstoque(t)
	_, err := uc.Saida(context.Background(), dto.SaidaEstoqueRequest{
		Material: "INEXISTENTE", Quantidade: 1, Usuario: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrMaterialNaoEncontrado)
}

func TestEntradaSomaSaldo(t *testing.T) {
	uc, repo, movs, _ := montarEstoque(t)
	repo.itens["FOTOGRAFICO 75G"] = &entity.ItemEstoque{
		Material: "FOTOGRAFICO 75G", Categoria: entity.CategoriaPapel, Quantidade: 100,
	}

	item, err := uc.Entrada(context.Background(), dto.EntradaEstoqueRequest{
		Material: " fotografico  75g ", Quantidade: 50, Usuario: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 150, item.Quantidade)
	require.Len(t, movs.movs, 1)
	assert.Equal(t, 50, movs.movs[0].Quantidade)
}

func TestCriarMaterialDuplicado(t *testing.T) {
	uc, repo, _, _ := montarEstoque(t)
	repo.itens["DRYFIT"] = &entity.ItemEstoque{Material: "DRYFIT", Categoria: entity.CategoriaMalha}

	_, err := uc.CriarMaterial(context.Background(), dto.CriarMaterialRequest{
		Material: "DryFit", Categoria: entity.CategoriaMalha, Usuario: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestCriarMaterialComSaldoInicial(t *testing.T) {
	uc, _, movs, _ := montarEstoque(t)
	item, err := uc.CriarMaterial(context.Background(), dto.CriarMaterialRequest{
		Material: "helanca", Categoria: entity.CategoriaMalha, Quantidade: 200, Usuario: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "HELANCA", item.Material)
	require.Len(t, movs.movs, 1)
	assert.Equal(t, entity.EstoqueEntrada, movs.movs[0].Tipo)
	assert.Equal(t, 200, movs.movs[0].Quantidade)
}

func TestAjustarRegistraDelta(t *testing.T) {
	uc, repo, movs, _ := montarEstoque(t)
	repo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha, Quantidade: 480,
	}

	item, err := uc.Ajustar(context.Background(), dto.AjusteEstoqueRequest{
		Material: "DRYFIT", Quantidade: 450, Usuario: "admin", Observacao: "recontagem",
	})
	require.NoError(t, err)
	assert.Equal(t, 450, item.Quantidade)
	require.Len(t, movs.movs, 1)
	assert.Equal(t, entity.EstoqueAjuste, movs.movs[0].Tipo)
	assert.Equal(t, -30, movs.movs[0].Quantidade)
}

func TestAjustarSemDeltaNaoGeraMovimentacao(t *testing.T) {
	uc, repo, movs, _ := montarEstoque(t)
	repo.itens["DRYFIT"] = &entity.ItemEstoque{
		Material: "DRYFIT", Categoria: entity.CategoriaMalha, Quantidade: 480, UpdatedAt: time.Now(),
	}

	_, err := uc.Ajustar(context.Background(), dto.AjusteEstoqueRequest{
		Material: "DRYFIT", Quantidade: 480, Usuario: "admin",
	})
	require.NoError(t, err)
	assert.Empty(t, movs.movs)
}
