package ports

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/application/dto"
)

// LLMService puerto de salida del asistente de publicación de productos.
// El contexto debe llevar un timeout para no bloquear el handler con la llamada externa.
type LLMService interface {
	// SuggestProductListing propone categoría (una de categorySlugs), etiquetas y una
	// descripción mejorada a partir de lo que escribió el vendedor.
	SuggestProductListing(
		ctx context.Context,
		productName string,
		description string,
		categorySlugs []string,
	) (*dto.ProductSuggestionDTO, error)
}
