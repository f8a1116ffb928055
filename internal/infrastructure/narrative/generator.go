// Package narrative turns audit payloads into per-category prose using the
// Gemini API. Generation is best-effort throughout: a category that fails
// gets an explicit error marker in the output, never a pipeline failure.
package narrative

import (
	"context"
	"fmt"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const systemPrompt = `You are a mechanical engineering expert writing concise building system narratives for energy audits.

CRITICAL RULES:
1. Write 1-2 paragraphs ONLY based on the provided data
2. If specific data is missing, explicitly state "not documented" - do NOT infer or assume
3. Focus on factual descriptions, not recommendations
4. Use professional engineering terminology
5. Be specific about equipment when data is available`

// TextModel is the single model call the generator needs. Satisfied by the
// Gemini client; stubbed in tests.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// geminiModel backs TextModel with the Gemini API.
type geminiModel struct {
	client *genai.Client
	model  string
}

func (g *geminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			// Low temperature for analytical consistency.
			Temperature:     genai.Ptr[float32](0.3),
			MaxOutputTokens: 1024,
		})
	if err != nil {
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	return text, nil
}

// Generator produces the six mechanical-system narratives for a resolved
// building.
type Generator struct {
	model  TextModel
	cfg    config.NarrativeConfig
	logger *zap.Logger
}

// NewGenerator creates a Gemini-backed generator from configuration.
func NewGenerator(ctx context.Context, cfg config.NarrativeConfig, logger *zap.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("narrative generator requires an API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewGeneratorWithModel(&geminiModel{client: client, model: cfg.Model}, cfg, logger), nil
}

// NewGeneratorWithModel creates a generator around an existing model.
func NewGeneratorWithModel(model TextModel, cfg config.NarrativeConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		model:  model,
		cfg:    cfg,
		logger: logger,
	}
}

// Generate produces one narrative per category. A category whose model call
// fails carries an explicit error marker so consumers can tell "failed" from
// "not documented"; the error return is reserved for structural problems and
// is currently always nil.
func (g *Generator) Generate(ctx context.Context, rec *building.Record) (map[building.NarrativeCategory]string, error) {
	out := make(map[building.NarrativeCategory]string, 6)

	for _, category := range building.NarrativeCategories() {
		text, err := g.generateOne(ctx, rec, category)
		if err != nil {
			g.logger.Warn("narrative generation failed for category",
				zap.String("bbl", string(rec.BBL)),
				zap.String("category", string(category)),
				zap.Error(err))
			out[category] = fmt.Sprintf("Error generating narrative: %s", err)
			continue
		}
		out[category] = text
	}

	return out, nil
}

func (g *Generator) generateOne(ctx context.Context, rec *building.Record, category building.NarrativeCategory) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}
	return g.model.GenerateText(ctx, buildPrompt(rec, category))
}
