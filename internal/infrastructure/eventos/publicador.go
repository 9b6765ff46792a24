// Package eventos publica os eventos da fábrica (transições de pedido e
// alertas de estoque) em um tópico Kafka, para os painéis em tempo real.
// A publicação é fire-and-forget: roda depois do commit e nunca bloqueia nem
// desfaz a transação que a originou.
package eventos

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/pkg/logger"
)

var _ atividade.Notificador = (*Publicador)(nil)
var _ estoque.Notificador = (*Publicador)(nil)

// kafkaMessageWriter abstrai kafka.Writer para os testes.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publicador envia os eventos para o Kafka. Writer nulo desliga a publicação
// (fica só o log), o que mantém a aplicação utilizável sem broker.
type Publicador struct {
	writer kafkaMessageWriter
	log    *logger.Logger

	// deduplicação de alerta de estoque por (material, dia)
	mu        sync.Mutex
	alertados map[string]struct{}
}

// NovoPublicador cria o publicador. brokers pode ser lista host:port separada
// por vírgula; vazio devolve um publicador que só loga.
func NovoPublicador(brokers, topico string, log *logger.Logger) *Publicador {
	p := &Publicador{log: log, alertados: make(map[string]struct{})}
	var addrs []string
	for _, a := range strings.Split(brokers, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) > 0 {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topico,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		}
	}
	return p
}

// NovoPublicadorComWriter é só para testes injetarem um writer falso.
func NovoPublicadorComWriter(w kafkaMessageWriter, log *logger.Logger) *Publicador {
	return &Publicador{writer: w, log: log, alertados: make(map[string]struct{})}
}

// eventoAtividade é o payload publicado a cada transição de pedido.
type eventoAtividade struct {
	Evento          string    `json:"evento"`
	PedidoID        string    `json:"pedidoId"`
	Pedido          string    `json:"pedido"`
	SetorAtual      string    `json:"setorAtual"`
	Urgente         bool      `json:"urgente"`
	QuantidadePecas int       `json:"quantidadePecas"`
	Data            time.Time `json:"data"`
}

// eventoEstoqueBaixo é o payload de alerta de material no limite.
type eventoEstoqueBaixo struct {
	Evento     string `json:"evento"`
	Material   string `json:"material"`
	Quantidade int    `json:"quantidade"`
	Limite     int    `json:"limite"`
}

// NotificarAtividadeAlterada publica a transição em background.
func (p *Publicador) NotificarAtividadeAlterada(a *entity.Atividade, tipo string) {
	if a == nil {
		return
	}
	ev := eventoAtividade{
		Evento:          "atividade." + tipo,
		PedidoID:        a.ID,
		Pedido:          a.Pedido,
		SetorAtual:      a.SetorAtual,
		Urgente:         a.Urgente,
		QuantidadePecas: a.QuantidadePecas,
		Data:            time.Now(),
	}
	p.log.Info().
		Str("evento", ev.Evento).
		Str("pedido", a.Pedido).
		Str("setor", a.SetorAtual).
		Msg("atividade alterada")
	p.publicar(a.ID, ev)
}

// NotificarEstoqueBaixo publica o alerta de cada item, no máximo uma vez por
// material por dia.
func (p *Publicador) NotificarEstoqueBaixo(itens []*entity.ItemEstoque) {
	for _, item := range itens {
		if item == nil || item.LimiteAlerta == nil {
			continue
		}
		if !p.marcarAlerta(item.Material) {
			continue
		}
		p.log.Warn().
			Str("material", item.Material).
			Int("quantidade", item.Quantidade).
			Int("limite", *item.LimiteAlerta).
			Msg("estoque no nível de alerta")
		p.publicar(item.Material, eventoEstoqueBaixo{
			Evento:     "estoque.baixo",
			Material:   item.Material,
			Quantidade: item.Quantidade,
			Limite:     *item.LimiteAlerta,
		})
	}
}

// marcarAlerta devolve true só na primeira vez do (material, dia).
// Chaves de dias anteriores são descartadas para o mapa não crescer sem fim.
func (p *Publicador) marcarAlerta(material string) bool {
	dia := time.Now().Format("2006-01-02")
	chave := material + "|" + dia
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.alertados[chave]; ok {
		return false
	}
	for k := range p.alertados {
		if !strings.HasSuffix(k, "|"+dia) {
			delete(p.alertados, k)
		}
	}
	p.alertados[chave] = struct{}{}
	return true
}

func (p *Publicador) publicar(chave string, payload any) {
	if p.writer == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Msg("serializar evento")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(chave), Value: b}); err != nil {
			// falha de broker não pode derrubar a operação que gerou o evento
			p.log.Warn().Err(err).Str("chave", chave).Msg("publicar evento")
		}
	}()
}
