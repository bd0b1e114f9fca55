package aiquiz

import (
	"context"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
}

// NewAIQuizContainer leaves drafting disabled when the gemini client cannot
// be created, e.g. without GEMINI_API_KEY.
func NewAIQuizContainer(ctx context.Context, model string) *AIQuizContainer {
	provider, err := NewGeminiProvider(ctx, model)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Question drafting disabled")
		provider = nil
	}
	service := NewService(provider)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Handler: handler,
	}
}
