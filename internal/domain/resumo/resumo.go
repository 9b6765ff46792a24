// Package resumo deriva as estatísticas de setor a partir do razão de
// movimentações. Todas as funções são puras: o mesmo recorte do razão produz
// sempre o mesmo resultado, e nada aqui consulta persistência.
package resumo

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
)

// Cores do semáforo das barras semanais.
const (
	CorVerde    = "verde"    // meta batida
	CorAmarelo  = "amarelo"  // >= 51% da meta
	CorVermelho = "vermelho" // abaixo de 51%
	CorNeutro   = "neutro"   // nenhuma conclusão no dia
)

// MetaPadrao é usada quando o setor não tem meta diária configurada.
const MetaPadrao = 10

// chaveDia normaliza um instante para a chave de agrupamento diário.
func chaveDia(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ConclusoesPorDia conta conclusões por dia, deduplicadas por (dia, pedido):
// um pedido que conclui o mesmo setor duas vezes no mesmo dia (ciclo
// retorno/reenvio) conta uma vez só.
func ConclusoesPorDia(movs []*entity.Movimentacao, loc *time.Location) map[string]int {
	vistos := make(map[string]struct{})
	porDia := make(map[string]int)
	for _, m := range movs {
		dia := chaveDia(m.Data, loc)
		chave := dia + "|" + m.PedidoID
		if _, ok := vistos[chave]; ok {
			continue
		}
		vistos[chave] = struct{}{}
		porDia[dia]++
	}
	return porDia
}

// TotalNoDia devolve a contagem deduplicada de um único dia.
func TotalNoDia(movs []*entity.Movimentacao, dia time.Time, loc *time.Location) int {
	return ConclusoesPorDia(movs, loc)[chaveDia(dia, loc)]
}

// DiasUteis conta os dias de segunda a sábado entre inicio e fim, inclusive.
// Domingo não é dia de trabalho. O resultado nunca é menor que 1, para servir
// de divisor sem risco de divisão por zero.
func DiasUteis(inicio, fim time.Time) int {
	count := 0
	dia := time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, inicio.Location())
	limite := time.Date(fim.Year(), fim.Month(), fim.Day(), 0, 0, 0, 0, fim.Location())
	for !dia.After(limite) {
		if dia.Weekday() != time.Sunday {
			count++
		}
		dia = dia.AddDate(0, 0, 1)
	}
	if count < 1 {
		return 1
	}
	return count
}

// MediaDiaria é a média histórica de conclusões por dia útil, da primeira à
// última movimentação do recorte. Recorte vazio devolve zero.
func MediaDiaria(movs []*entity.Movimentacao, loc *time.Location) float64 {
	if len(movs) == 0 {
		return 0
	}
	primeira, ultima := movs[0].Data, movs[0].Data
	for _, m := range movs[1:] {
		if m.Data.Before(primeira) {
			primeira = m.Data
		}
		if m.Data.After(ultima) {
			ultima = m.Data
		}
	}
	dias := DiasUteis(primeira.In(loc), ultima.In(loc))
	return float64(len(movs)) / float64(dias)
}

// BarraDia é um dia da série semanal com a classificação semáforo
// em relação à meta diária do setor.
type BarraDia struct {
	Dia    time.Time
	Rotulo string // seg, ter, ...
	Total  int
	Cor    string
	Pct    float64 // fração da meta, limitada a 1.0
}

var rotulosDia = map[time.Weekday]string{
	time.Monday:    "seg",
	time.Tuesday:   "ter",
	time.Wednesday: "qua",
	time.Thursday:  "qui",
	time.Friday:    "sex",
	time.Saturday:  "sab",
}

// InicioDaSemana devolve a segunda-feira da semana de ref, à meia-noite.
func InicioDaSemana(ref time.Time) time.Time {
	dias := int(ref.Weekday()) - 1
	if ref.Weekday() == time.Sunday {
		dias = 6
	}
	seg := ref.AddDate(0, 0, -dias)
	return time.Date(seg.Year(), seg.Month(), seg.Day(), 0, 0, 0, 0, ref.Location())
}

// BarrasSemana monta a série segunda-a-sábado da semana de ref com contagem
// deduplicada por dia e cor em função da meta.
func BarrasSemana(movs []*entity.Movimentacao, ref time.Time, meta int, loc *time.Location) []BarraDia {
	if meta <= 0 {
		meta = MetaPadrao
	}
	porDia := ConclusoesPorDia(movs, loc)
	segunda := InicioDaSemana(ref.In(loc))
	barras := make([]BarraDia, 0, 6)
	for i := 0; i < 6; i++ {
		dia := segunda.AddDate(0, 0, i)
		total := porDia[chaveDia(dia, loc)]
		cor, pct := CorDaBarra(total, meta)
		barras = append(barras, BarraDia{
			Dia:    dia,
			Rotulo: rotulosDia[dia.Weekday()],
			Total:  total,
			Cor:    cor,
			Pct:    pct,
		})
	}
	return barras
}

// CorDaBarra classifica uma contagem diária contra a meta:
// zero → neutro; >= 100% → verde; >= 51% → amarelo; senão vermelho.
func CorDaBarra(total, meta int) (string, float64) {
	if total == 0 {
		return CorNeutro, 0
	}
	pct := float64(total) / float64(meta)
	cor := CorVermelho
	switch {
	case pct >= 1:
		cor = CorVerde
	case pct >= 0.51:
		cor = CorAmarelo
	}
	if pct > 1 {
		pct = 1
	}
	return cor, pct
}

// TemposCiclo calcula, para cada conclusão, o tempo entre a entrada do pedido
// no setor e a saída. A entrada é a movimentação mais recente com destino no
// setor, mesmo pedido e data anterior à conclusão. Conclusões sem entrada
// pareável são excluídas (não valem zero); durações não positivas ou acima do
// limite são descartadas como lixo de dados, não truncadas.
func TemposCiclo(conclusoes, entradas []*entity.Movimentacao, limite time.Duration) []time.Duration {
	var tempos []time.Duration
	for _, saida := range conclusoes {
		var entrada *entity.Movimentacao
		for _, e := range entradas {
			if e.PedidoID != saida.PedidoID || !e.Data.Before(saida.Data) {
				continue
			}
			if entrada == nil || e.Data.After(entrada.Data) {
				entrada = e
			}
		}
		if entrada == nil {
			continue
		}
		d := saida.Data.Sub(entrada.Data)
		if d <= 0 || (limite > 0 && d > limite) {
			continue
		}
		tempos = append(tempos, d)
	}
	return tempos
}

// TempoMedio devolve a média das durações, ou zero para lista vazia.
func TempoMedio(tempos []time.Duration) time.Duration {
	if len(tempos) == 0 {
		return 0
	}
	minutos := make([]float64, len(tempos))
	for i, d := range tempos {
		minutos[i] = d.Minutes()
	}
	return time.Duration(stat.Mean(minutos, nil) * float64(time.Minute))
}

// PorMaquina separa as conclusões pela máquina usada na Batida
// (Calandra/Prensa), produzindo séries independentes por máquina.
// Movimentações sem máquina registrada são ignoradas.
func PorMaquina(movs []*entity.Movimentacao) map[string][]*entity.Movimentacao {
	out := make(map[string][]*entity.Movimentacao)
	for _, m := range movs {
		if m.MaquinaBatida == nil || *m.MaquinaBatida == "" {
			continue
		}
		out[*m.MaquinaBatida] = append(out[*m.MaquinaBatida], m)
	}
	return out
}

// EstatisticaBatedor acumula a produção de um batedor. Quando vários
// batedores dividem um pedido, cada um é creditado com peças/n.
type EstatisticaBatedor struct {
	Hoje     float64
	Semana   float64
	Total    float64
	MediaDia float64
}

// PorBatedor agrega a produção por batedor sobre as conclusões da Batida.
// Semana = desde a segunda-feira da semana de ref; MediaDia divide a semana
// pelos dias corridos desde segunda (mínimo 1).
func PorBatedor(movs []*entity.Movimentacao, ref time.Time, loc *time.Location) map[string]EstatisticaBatedor {
	refLoc := ref.In(loc)
	hoje := chaveDia(refLoc, loc)
	segunda := InicioDaSemana(refLoc)
	diasSemana := int(refLoc.Weekday())
	if diasSemana < 1 {
		diasSemana = 1
	}

	out := make(map[string]EstatisticaBatedor)
	for _, m := range movs {
		nomes := nomesNormalizados(m.Batedores)
		if len(nomes) == 0 {
			continue
		}
		pecas := m.QuantidadePecas
		if pecas <= 0 {
			pecas = 1
		}
		parte := float64(pecas) / float64(len(nomes))
		dia := chaveDia(m.Data, loc)
		dataLoc := m.Data.In(loc)
		for _, nome := range nomes {
			st := out[nome]
			st.Total += parte
			if dia == hoje {
				st.Hoje += parte
			}
			if !dataLoc.Before(segunda) {
				st.Semana += parte
			}
			out[nome] = st
		}
	}
	for nome, st := range out {
		st.MediaDia = st.Semana / float64(diasSemana)
		out[nome] = st
	}
	return out
}

func nomesNormalizados(nomes []string) []string {
	var out []string
	for _, n := range nomes {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
