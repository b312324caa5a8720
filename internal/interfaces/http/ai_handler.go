package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/usecase"
)

// AIHandler asistente de publicación de productos.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestListing godoc
// @Summary      Sugerir categoría, etiquetas y descripción con IA
// @Description  Propone una categoría existente, hasta 8 etiquetas y una descripción mejorada. Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductSuggestionRequest  true  "name (obligatorio) y description"
// @Success      200   {object}  dto.ProductSuggestionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/product-suggestion [post]
func (h *AIHandler) SuggestListing(c *fiber.Ctx) error {
	var req dto.ProductSuggestionRequest
	if err := bindJSON(c, &req); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SuggestListing(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
