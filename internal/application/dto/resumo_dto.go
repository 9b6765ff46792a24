package dto

import "time"

// BarraDiaResponse um dia da série semanal (seg..sab) com a cor semáforo.
type BarraDiaResponse struct {
	Dia    time.Time `json:"dia"`
	Rotulo string    `json:"rotulo"`
	Total  int       `json:"total"`
	Cor    string    `json:"cor"`
	Pct    float64   `json:"pct"`
}

// ResumoSetorResponse o painel de um setor.
type ResumoSetorResponse struct {
	Setor           string             `json:"setor"`
	ConcluidasHoje  int                `json:"concluidasHoje"`
	MediaDiaria     float64            `json:"mediaDiaria"`
	Meta            int                `json:"meta"`
	Barras          []BarraDiaResponse `json:"barras"`
	TempoMedioMin   float64            `json:"tempoMedioMinutos"`
	TotalConclusoes int                `json:"totalConclusoes"`
}

// ResumoMaquinaResponse a série semanal de uma máquina da Batida.
type ResumoMaquinaResponse struct {
	Maquina        string             `json:"maquina"`
	ConcluidasHoje int                `json:"concluidasHoje"`
	Barras         []BarraDiaResponse `json:"barras"`
}

// BatedorResponse a produção acumulada de um batedor.
type BatedorResponse struct {
	Nome     string  `json:"nome"`
	Hoje     float64 `json:"hoje"`
	Semana   float64 `json:"semana"`
	Total    float64 `json:"total"`
	MediaDia float64 `json:"mediaDia"`
}
