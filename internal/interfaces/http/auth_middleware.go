package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/pkg/jwt"
)

// Locals keys de la identidad del solicitante en Fiber.
const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalRole     = "role"
	LocalVendorID = "vendor_id"
	localError    = "handler_error"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, Email y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		if e := authenticate(c, jwtSecret, authHeader); e != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(e)
		}
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero deja pasar solicitudes anónimas.
// Un token presente e inválido sigue siendo 401.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		if e := authenticate(c, jwtSecret, authHeader); e != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(e)
		}
		return c.Next()
	}
}

// authenticate carga la identidad del token; devuelve el cuerpo del 401 si el header no sirve.
func authenticate(c *fiber.Ctx, jwtSecret, authHeader string) *dto.ErrorResponse {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	id, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		return &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"}
	}
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalEmail, id.Email)
	c.Locals(LocalRole, id.Role)
	return nil
}

// RequireRole deja pasar solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no trae rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// VendorResolver obtiene la tienda de un usuario vendedor.
type VendorResolver interface {
	ByOwner(ctx context.Context, ownerID string) (*entity.Vendor, error)
}

// VendorContext resuelve la tienda del vendedor autenticado y la guarda en c.Locals.
// Un vendedor sin tienda sigue adelante con VendorID vacío.
func VendorContext(vendors VendorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleVendor {
			return c.Next()
		}
		v, err := vendors.ByOwner(c.UserContext(), GetUserID(c))
		if err != nil {
			return fail(c, err)
		}
		if v != nil {
			c.Locals(LocalVendorID, v.ID)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetVendorID devuelve la tienda resuelta por VendorContext.
func GetVendorID(c *fiber.Ctx) string {
	return localString(c, LocalVendorID)
}

// actor identidad completa para los casos de uso. Vacía si la solicitud es anónima.
func actor(c *fiber.Ctx) dto.Actor {
	return dto.Actor{UserID: GetUserID(c), Role: GetRole(c), VendorID: GetVendorID(c)}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
