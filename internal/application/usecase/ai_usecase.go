package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// llmTimeout tope por llamada al LLM para no retener el handler.
const llmTimeout = 10 * time.Second

// AIUseCase asistente de publicación: sugiere categoría, etiquetas y descripción.
type AIUseCase struct {
	llm          ports.LLMService
	categoryRepo repository.CategoryRepository
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, categoryRepo repository.CategoryRepository) *AIUseCase {
	return &AIUseCase{llm: llm, categoryRepo: categoryRepo}
}

// SuggestListing envía el borrador al LLM junto con los slugs de categorías activas.
// Si el slug sugerido existe se completa CategoryID.
func (uc *AIUseCase) SuggestListing(ctx context.Context, req dto.ProductSuggestionRequest) (*dto.ProductSuggestionDTO, error) {
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	cats, err := uc.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(cats))
	ids := make(map[string]string, len(cats))
	for _, c := range cats {
		slugs = append(slugs, c.Slug)
		ids[c.Slug] = c.ID
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	out, err := uc.llm.SuggestProductListing(ctx, req.Name, req.Description, slugs)
	if err != nil {
		return nil, fmt.Errorf("sugerencia IA: %w", err)
	}
	if id, ok := ids[out.SuggestedCategory]; ok {
		out.CategoryID = id
	} else {
		out.SuggestedCategory = ""
		out.CategoryID = ""
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out, nil
}
