// Package observability expõe os contadores Prometheus da fábrica.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
)

var _ atividade.Metricas = (*Registro)(nil)
var _ estoque.Metricas = (*Registro)(nil)

// Registro agrupa os contadores da aplicação em um registry próprio.
type Registro struct {
	reg *prometheus.Registry

	transicoes           *prometheus.CounterVec
	movimentacoesEstoque *prometheus.CounterVec
	alertasEstoque       prometheus.Counter
}

// NovoRegistro cria o registry com os contadores da fábrica mais os
// coletores padrão de processo e runtime.
func NovoRegistro() *Registro {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registro{
		reg: reg,
		transicoes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fabrica_transicoes_total",
			Help: "Transições de atividade por tipo e setor de destino.",
		}, []string{"tipo", "setor"}),
		movimentacoesEstoque: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fabrica_movimentacoes_estoque_total",
			Help: "Movimentações de estoque por tipo.",
		}, []string{"tipo"}),
		alertasEstoque: factory.NewCounter(prometheus.CounterOpts{
			Name: "fabrica_alertas_estoque_total",
			Help: "Alertas de estoque no nível mínimo.",
		}),
	}
}

// ContarTransicao incrementa o contador de transições.
func (r *Registro) ContarTransicao(tipo, setor string) {
	r.transicoes.WithLabelValues(tipo, setor).Inc()
}

// ContarMovimentacaoEstoque incrementa o contador de movimentações de estoque.
func (r *Registro) ContarMovimentacaoEstoque(tipo string) {
	r.movimentacoesEstoque.WithLabelValues(tipo).Inc()
}

// ContarAlertaEstoque incrementa o contador de alertas.
func (r *Registro) ContarAlertaEstoque() {
	r.alertasEstoque.Inc()
}

// Handler devolve o handler HTTP do /metrics.
func (r *Registro) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
