package dto

// ProductSuggestionRequest entrada del asistente de publicación.
type ProductSuggestionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// ProductSuggestionDTO sugerencia del LLM para completar una publicación.
type ProductSuggestionDTO struct {
	SuggestedCategory   string   `json:"suggested_category"` // slug de una categoría existente
	CategoryID          string   `json:"category_id,omitempty"`
	Tags                []string `json:"tags"`
	ImprovedDescription string   `json:"improved_description"`
	ConfidenceScore     float64  `json:"confidence_score"`
}
