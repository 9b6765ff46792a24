package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/pkg/jwt"
)

// Locals keys para UserID e Setor no Fiber.
const (
	LocalUserID = "user_id"
	LocalSetor  = "setor"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID e Setor para
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, setorNome, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalSetor, setorNome)
		return c.Next()
	}
}

// RequireSetor autoriza só as contas dos setores indicados. A conta admin
// passa sempre.
func RequireSetor(setores ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		setorNome := GetSetor(c)
		if setorNome == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SETOR", Message: "token sem setor"})
		}
		if setorNome == entity.SetorAdmin {
			return c.Next()
		}
		for _, s := range setores {
			if s == setorNome {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado para este setor"})
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSetor devolve o setor do contexto (depois do middleware de auth).
func GetSetor(c *fiber.Ctx) string {
	v := c.Locals(LocalSetor)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
