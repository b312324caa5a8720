// Package ai implementa el asistente de publicación de productos sobre las APIs
// REST de Anthropic (Claude) y Google Gemini.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/supermall-api/internal/application/dto"
)

const systemPrompt = `Eres un asistente que ayuda a artesanos y productores rurales de la India a publicar productos en un marketplace.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{
  "suggested_category": "<uno de los slugs de categoría recibidos, o cadena vacía>",
  "tags": ["<etiqueta corta en minúsculas>", "..."],
  "improved_description": "<descripción atractiva y honesta en inglés, máximo 600 caracteres>",
  "confidence_score": <número decimal entre 0.0 y 1.0>
}

Reglas:
- suggested_category: usa SOLO un slug de la lista. Si ninguno encaja, cadena vacía.
- tags: entre 3 y 8, sin repetir, sin '#'.
- improved_description: no inventes materiales, medidas ni certificaciones que no aparezcan en el texto.
- No incluyas texto fuera del JSON.`

const maxTags = 8

// suggestionPayload es el JSON que esperamos del modelo.
type suggestionPayload struct {
	SuggestedCategory   string   `json:"suggested_category"`
	Tags                []string `json:"tags"`
	ImprovedDescription string   `json:"improved_description"`
	ConfidenceScore     float64  `json:"confidence_score"`
}

func userPrompt(productName, description string, categorySlugs []string) string {
	return fmt.Sprintf("Categorías disponibles: %s\nProducto: %s\nDescripción: %s",
		strings.Join(categorySlugs, ", "), productName, description)
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque venga envuelto en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON quita bloques ``` y devuelve el primer {...} del texto.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// parseSuggestion decodifica la respuesta del modelo y normaliza etiquetas y confianza.
func parseSuggestion(raw string) (*dto.ProductSuggestionDTO, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", raw)
	}
	var p suggestionPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de sugerencia: %w (JSON extraído: %s)", err, clean)
	}

	confidence := p.ConfidenceScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return &dto.ProductSuggestionDTO{
		SuggestedCategory:   strings.ToLower(strings.TrimSpace(p.SuggestedCategory)),
		Tags:                normalizeTags(p.Tags),
		ImprovedDescription: strings.TrimSpace(p.ImprovedDescription),
		ConfidenceScore:     confidence,
	}, nil
}

// normalizeTags minúsculas, sin '#', sin vacíos ni duplicados, máximo maxTags.
func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(strings.TrimLeft(t, "#")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}
