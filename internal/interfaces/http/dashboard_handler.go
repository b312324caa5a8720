package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/analytics"
)

// DashboardHandler paneles de resumen por rol.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin godoc
// @Summary      Panel de la plataforma
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardDTO
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Vendor godoc
// @Summary      Panel de mi tienda
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VendorDashboardDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/vendor [get]
func (h *DashboardHandler) Vendor(c *fiber.Ctx) error {
	out, err := h.uc.Vendor(c.UserContext(), GetVendorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Customer godoc
// @Summary      Resumen de mis compras
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerDashboardDTO
// @Router       /api/dashboard/customer [get]
func (h *DashboardHandler) Customer(c *fiber.Ctx) error {
	out, err := h.uc.Customer(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
