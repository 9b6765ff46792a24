package eventos

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
	"github.com/iurijampa/sistemanovofabrica/pkg/logger"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func novoLog() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func TestNotificarAtividadePublicaEvento(t *testing.T) {
	w := &fakeWriter{}
	p := NovoPublicadorComWriter(w, novoLog())

	p.NotificarAtividadeAlterada(&entity.Atividade{
		ID: "a1", Pedido: "Fardamento X", SetorAtual: setor.Impressao,
	}, entity.TipoConcluiu)

	require.Eventually(t, func() bool { return w.total() == 1 }, time.Second, 10*time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Equal(t, "a1", string(w.msgs[0].Key))
	assert.Contains(t, string(w.msgs[0].Value), "atividade.concluiu")
}

func TestEstoqueBaixoDeduplicaPorDia(t *testing.T) {
	w := &fakeWriter{}
	p := NovoPublicadorComWriter(w, novoLog())

	limite := 500
	item := &entity.ItemEstoque{Material: "DRYFIT", Quantidade: 400, LimiteAlerta: &limite}

	p.NotificarEstoqueBaixo([]*entity.ItemEstoque{item})
	p.NotificarEstoqueBaixo([]*entity.ItemEstoque{item})

	require.Eventually(t, func() bool { return w.total() == 1 }, time.Second, 10*time.Millisecond)
	// segunda chamada no mesmo dia não publica de novo
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, w.total())
}

func TestEstoqueBaixoDescartaChavesDeDiasAnteriores(t *testing.T) {
	w := &fakeWriter{}
	p := NovoPublicadorComWriter(w, novoLog())
	p.alertados["PIQUET|2024-01-01"] = struct{}{}

	limite := 500
	item := &entity.ItemEstoque{Material: "DRYFIT", Quantidade: 400, LimiteAlerta: &limite}
	p.NotificarEstoqueBaixo([]*entity.ItemEstoque{item})

	require.Eventually(t, func() bool { return w.total() == 1 }, time.Second, 10*time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Len(t, p.alertados, 1)
	_, ok := p.alertados["DRYFIT|"+time.Now().Format("2006-01-02")]
	assert.True(t, ok)
}

func TestPublicadorSemWriterNaoPublica(t *testing.T) {
	p := NovoPublicador("", "topico", novoLog())
	// não pode entrar em pânico sem broker configurado
	p.NotificarAtividadeAlterada(&entity.Atividade{ID: "a1"}, entity.TipoCadastrou)
	p.NotificarEstoqueBaixo(nil)
}
