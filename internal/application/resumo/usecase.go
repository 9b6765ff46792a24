package resumo

import (
	"context"
	"time"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/resumo"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
)

// UseCase monta os painéis por setor a partir do razão de movimentações.
// Toda a matemática vive em domain/resumo; aqui só se recorta o razão e se
// traduz para DTO.
type UseCase struct {
	movRepo     repository.MovimentacaoRepository
	sequencia   setor.Sequencia
	metas       map[string]int
	limiteCiclo time.Duration
	loc         *time.Location
	agora       func() time.Time
}

// NewUseCase constrói o caso de uso. metas por setor pode ser nil (cai na
// meta padrão); loc nil usa UTC.
func NewUseCase(
	movRepo repository.MovimentacaoRepository,
	sequencia setor.Sequencia,
	metas map[string]int,
	limiteCicloDias int,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if limiteCicloDias <= 0 {
		limiteCicloDias = 15
	}
	return &UseCase{
		movRepo:     movRepo,
		sequencia:   sequencia,
		metas:       metas,
		limiteCiclo: time.Duration(limiteCicloDias) * 24 * time.Hour,
		loc:         loc,
		agora:       time.Now,
	}
}

func (uc *UseCase) meta(setorNome string) int {
	if m, ok := uc.metas[setorNome]; ok && m > 0 {
		return m
	}
	return resumo.MetaPadrao
}

// ResumoDoSetor devolve o painel de um setor: concluídas hoje, média diária
// histórica, barras da semana e tempo médio de permanência.
func (uc *UseCase) ResumoDoSetor(ctx context.Context, setorNome string) (*dto.ResumoSetorResponse, error) {
	if !uc.sequencia.Contem(setorNome) || setorNome == uc.sequencia.Final() {
		return nil, domain.ErrSetorInvalido
	}

	conclusoes, err := uc.movRepo.ListarConclusoes(setorNome, nil, nil)
	if err != nil {
		return nil, err
	}
	entradas, err := uc.movRepo.ListarEntradas(setorNome, nil, nil)
	if err != nil {
		return nil, err
	}

	ref := uc.agora()
	meta := uc.meta(setorNome)
	tempos := resumo.TemposCiclo(conclusoes, entradas, uc.limiteCiclo)

	return &dto.ResumoSetorResponse{
		Setor:           setorNome,
		ConcluidasHoje:  resumo.TotalNoDia(conclusoes, ref, uc.loc),
		MediaDiaria:     resumo.MediaDiaria(conclusoes, uc.loc),
		Meta:            meta,
		Barras:          barrasParaDTO(resumo.BarrasSemana(conclusoes, ref, meta, uc.loc)),
		TempoMedioMin:   resumo.TempoMedio(tempos).Minutes(),
		TotalConclusoes: len(conclusoes),
	}, nil
}

// RelatorioMaquinas devolve uma série semanal por máquina da Batida
// (Calandra, Prensa, ...), derivada das saídas do setor.
func (uc *UseCase) RelatorioMaquinas(ctx context.Context) ([]dto.ResumoMaquinaResponse, error) {
	conclusoes, err := uc.movRepo.ListarConclusoes(setor.Batida, nil, nil)
	if err != nil {
		return nil, err
	}

	ref := uc.agora()
	meta := uc.meta(setor.Batida)
	porMaquina := resumo.PorMaquina(conclusoes)

	out := make([]dto.ResumoMaquinaResponse, 0, len(porMaquina))
	for maquina, movs := range porMaquina {
		out = append(out, dto.ResumoMaquinaResponse{
			Maquina:        maquina,
			ConcluidasHoje: resumo.TotalNoDia(movs, ref, uc.loc),
			Barras:         barrasParaDTO(resumo.BarrasSemana(movs, ref, meta, uc.loc)),
		})
	}
	return out, nil
}

// RelatorioBatedores devolve a produção por batedor (hoje, semana, total e
// média diária), com as peças divididas entre quem bateu junto.
func (uc *UseCase) RelatorioBatedores(ctx context.Context) ([]dto.BatedorResponse, error) {
	conclusoes, err := uc.movRepo.ListarConclusoes(setor.Batida, nil, nil)
	if err != nil {
		return nil, err
	}

	stats := resumo.PorBatedor(conclusoes, uc.agora(), uc.loc)
	out := make([]dto.BatedorResponse, 0, len(stats))
	for nome, st := range stats {
		out = append(out, dto.BatedorResponse{
			Nome:     nome,
			Hoje:     st.Hoje,
			Semana:   st.Semana,
			Total:    st.Total,
			MediaDia: st.MediaDia,
		})
	}
	return out, nil
}

// HistoricoGeral devolve as movimentações mais recentes de toda a fábrica.
func (uc *UseCase) HistoricoGeral(limit, offset int) ([]*entity.Movimentacao, error) {
	return uc.movRepo.Listar(limit, offset)
}

func barrasParaDTO(barras []resumo.BarraDia) []dto.BarraDiaResponse {
	out := make([]dto.BarraDiaResponse, len(barras))
	for i, b := range barras {
		out[i] = dto.BarraDiaResponse{
			Dia:    b.Dia,
			Rotulo: b.Rotulo,
			Total:  b.Total,
			Cor:    b.Cor,
			Pct:    b.Pct,
		}
	}
	return out
}
