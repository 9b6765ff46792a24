package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/application/estoque"
)

// EstoqueHandler rotas do estoque de materiais (protegido).
type EstoqueHandler struct {
	uc *estoque.UseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.UseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar materiais do estoque
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        categoria  query  string  false  "malha ou papel"
// @Success      200  {array}  dto.ItemEstoqueResponse
// @Router       /api/estoque [get]
func (h *EstoqueHandler) Listar(c *fiber.Ctx) error {
	list, err := h.uc.Listar(c.Query("categoria"))
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.ItemEstoqueResponse, 0, len(list))
	for _, i := range list {
		out = append(out, dto.NovoItemEstoqueResponse(i))
	}
	return c.JSON(out)
}

// CriarMaterial godoc
// @Summary      Cadastrar material (admin)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarMaterialRequest  true  "material, categoria, quantidade inicial e limite de alerta"
// @Success      201   {object}  dto.ItemEstoqueResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estoque [post]
func (h *EstoqueHandler) CriarMaterial(c *fiber.Ctx) error {
	var in dto.CriarMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.CriarMaterial(c.Context(), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NovoItemEstoqueResponse(item))
}

// Entrada godoc
// @Summary      Registrar entrada de material
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaEstoqueRequest  true  "material e quantidade"
// @Success      200   {object}  dto.ItemEstoqueResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estoque/entrada [post]
func (h *EstoqueHandler) Entrada(c *fiber.Ctx) error {
	var in dto.EntradaEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.Entrada(c.Context(), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovoItemEstoqueResponse(item))
}

// Saida godoc
// @Summary      Registrar saída manual de material
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaidaEstoqueRequest  true  "material e quantidade"
// @Success      200   {object}  dto.ItemEstoqueResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estoque/saida [post]
func (h *EstoqueHandler) Saida(c *fiber.Ctx) error {
	var in dto.SaidaEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.Saida(c.Context(), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovoItemEstoqueResponse(item))
}

// Ajustar godoc
// @Summary      Ajustar quantidade após recontagem física (admin)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteEstoqueRequest  true  "material e quantidade contada"
// @Success      200   {object}  dto.ItemEstoqueResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estoque/ajuste [post]
func (h *EstoqueHandler) Ajustar(c *fiber.Ctx) error {
	var in dto.AjusteEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.Ajustar(c.Context(), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovoItemEstoqueResponse(item))
}

// Alertas godoc
// @Summary      Materiais no nível de alerta
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemEstoqueResponse
// @Router       /api/estoque/alertas [get]
func (h *EstoqueHandler) Alertas(c *fiber.Ctx) error {
	list, err := h.uc.ListarAlertas()
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.ItemEstoqueResponse, 0, len(list))
	for _, i := range list {
		out = append(out, dto.NovoItemEstoqueResponse(i))
	}
	return c.JSON(out)
}

// Movimentacoes godoc
// @Summary      Rastro de auditoria do estoque (mais recentes primeiro)
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        material  query  string  false  "Filtrar por material"
// @Param        limit     query  int     false  "Página (padrão 50)"
// @Param        offset    query  int     false  "Deslocamento"
// @Success      200  {array}  dto.MovimentacaoEstoqueResponse
// @Router       /api/estoque/movimentacoes [get]
func (h *EstoqueHandler) Movimentacoes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.ListarMovimentacoes(c.Query("material"), page.Limit, page.Offset)
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.MovimentacaoEstoqueResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NovaMovimentacaoEstoqueResponse(m))
	}
	return c.JSON(out)
}
