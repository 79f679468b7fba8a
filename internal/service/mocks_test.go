package service

import (
	"context"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockGateway mocks the llm.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendMessage(ctx context.Context, persona llm.Persona, history []domain.Turn, message string) (string, error) {
	args := m.Called(ctx, persona, history, message)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) AnalyzeImage(ctx context.Context, persona llm.Persona, path, mimeType string) (string, error) {
	args := m.Called(ctx, persona, path, mimeType)
	return args.String(0), args.Error(1)
}
