package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/auth"
	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
)

// AuthHandler rotas de autenticação.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login de conta de setor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email e senha"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// CriarUsuario godoc
// @Summary      Cadastrar conta de setor (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarUsuarioRequest  true  "email, senha, nome e setor"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/usuarios [post]
func (h *AuthHandler) CriarUsuario(c *fiber.Ctx) error {
	var in dto.CriarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CriarUsuario(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
