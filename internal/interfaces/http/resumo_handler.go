package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/application/resumo"
)

// ResumoHandler rotas dos painéis por setor (protegido).
type ResumoHandler struct {
	uc *resumo.UseCase
}

// NewResumoHandler constrói o handler.
func NewResumoHandler(uc *resumo.UseCase) *ResumoHandler {
	return &ResumoHandler{uc: uc}
}

// ResumoDoSetor godoc
// @Summary      Painel de um setor
// @Description  Concluídas hoje, média diária histórica, barras seg-sab com
// @Description  cor semáforo e tempo médio de permanência no setor.
// @Tags         resumo
// @Security     Bearer
// @Produce      json
// @Param        setor  path  string  true  "Nome do setor"
// @Success      200  {object}  dto.ResumoSetorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/resumo/{setor} [get]
func (h *ResumoHandler) ResumoDoSetor(c *fiber.Ctx) error {
	out, err := h.uc.ResumoDoSetor(c.Context(), c.Params("setor"))
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// Maquinas godoc
// @Summary      Produção da Batida por máquina (Calandra/Prensa)
// @Tags         resumo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResumoMaquinaResponse
// @Router       /api/resumo/batida/maquinas [get]
func (h *ResumoHandler) Maquinas(c *fiber.Ctx) error {
	out, err := h.uc.RelatorioMaquinas(c.Context())
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// Batedores godoc
// @Summary      Produção por batedor (peças divididas entre quem bateu junto)
// @Tags         resumo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BatedorResponse
// @Router       /api/resumo/batida/batedores [get]
func (h *ResumoHandler) Batedores(c *fiber.Ctx) error {
	out, err := h.uc.RelatorioBatedores(c.Context())
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// HistoricoGeral godoc
// @Summary      Movimentações de toda a fábrica (mais recentes primeiro)
// @Tags         resumo
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Página (padrão 50)"
// @Param        offset  query  int  false  "Deslocamento"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/historico [get]
func (h *ResumoHandler) HistoricoGeral(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	movs, err := h.uc.HistoricoGeral(page.Limit, page.Offset)
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NovaMovimentacaoResponse(m))
	}
	return c.JSON(out)
}
