package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/atividade"
	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
)

// AtividadeHandler rotas dos pedidos em produção (protegido).
type AtividadeHandler struct {
	uc *atividade.UseCase
}

// NewAtividadeHandler constrói o handler.
func NewAtividadeHandler(uc *atividade.UseCase) *AtividadeHandler {
	return &AtividadeHandler{uc: uc}
}

// Cadastrar godoc
// @Summary      Cadastrar pedido (setorInicial vazio entra no primeiro setor)
// @Tags         atividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CadastrarAtividadeRequest  true  "dados do pedido; malha opcional gera baixa de estoque"
// @Success      201   {object}  dto.AtividadeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/atividades [post]
func (h *AtividadeHandler) Cadastrar(c *fiber.Ctx) error {
	var in dto.CadastrarAtividadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	a, err := h.uc.Cadastrar(c.Context(), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NovaAtividadeResponse(a))
}

// Listar godoc
// @Summary      Listar pedidos (urgentes primeiro, por data de entrega)
// @Tags         atividades
// @Security     Bearer
// @Produce      json
// @Param        setor  query  string  false  "Filtrar por setor atual"
// @Success      200  {array}  dto.AtividadeResponse
// @Router       /api/atividades [get]
func (h *AtividadeHandler) Listar(c *fiber.Ctx) error {
	list, err := h.uc.Listar(c.Query("setor"))
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.AtividadeResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NovaAtividadeResponse(a))
	}
	return c.JSON(out)
}

// ObterPorID godoc
// @Summary      Buscar pedido por ID
// @Tags         atividades
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do pedido"
// @Success      200  {object}  dto.AtividadeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/atividades/{id} [get]
func (h *AtividadeHandler) ObterPorID(c *fiber.Ctx) error {
	a, err := h.uc.ObterPorID(c.Params("id"))
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovaAtividadeResponse(a))
}

// Concluir godoc
// @Summary      Avançar pedido para o próximo setor
// @Description  Saída da Batida exige costureira, batedores e máquina; saída
// @Description  da Impressao em sublimação exige papel (com baixa de estoque).
// @Tags         atividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.ConcluirAtividadeRequest  true  "funcionário e metadados da transição"
// @Success      200   {object}  dto.AtividadeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/atividades/{id}/concluir [post]
func (h *AtividadeHandler) Concluir(c *fiber.Ctx) error {
	var in dto.ConcluirAtividadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	a, err := h.uc.Concluir(c.Context(), c.Params("id"), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovaAtividadeResponse(a))
}

// Retornar godoc
// @Summary      Devolver pedido ao setor anterior
// @Tags         atividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.RetornarAtividadeRequest  true  "funcionário e justificativa (obrigatória)"
// @Success      200   {object}  dto.AtividadeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/atividades/{id}/retornar [post]
func (h *AtividadeHandler) Retornar(c *fiber.Ctx) error {
	var in dto.RetornarAtividadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	a, err := h.uc.Retornar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovaAtividadeResponse(a))
}

// Editar godoc
// @Summary      Editar pedido (admin)
// @Tags         atividades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.EditarAtividadeRequest  true  "campos a alterar (nulos não mudam)"
// @Success      200   {object}  dto.AtividadeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/atividades/{id} [put]
func (h *AtividadeHandler) Editar(c *fiber.Ctx) error {
	var in dto.EditarAtividadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	a, err := h.uc.Editar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(dto.NovaAtividadeResponse(a))
}

// Apagar godoc
// @Summary      Apagar pedido (admin); o histórico permanece
// @Tags         atividades
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.ApagarAtividadeRequest  true  "funcionário"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/atividades/{id} [delete]
func (h *AtividadeHandler) Apagar(c *fiber.Ctx) error {
	var in dto.ApagarAtividadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.Apagar(c.Context(), c.Params("id"), in); err != nil {
		return respostaDeErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Historico godoc
// @Summary      Linha do tempo de um pedido (funciona para pedidos apagados)
// @Tags         atividades
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do pedido"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/atividades/{id}/historico [get]
func (h *AtividadeHandler) Historico(c *fiber.Ctx) error {
	movs, err := h.uc.Historico(c.Params("id"))
	if err != nil {
		return respostaDeErro(c, err)
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NovaMovimentacaoResponse(m))
	}
	return c.JSON(out)
}
