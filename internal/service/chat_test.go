package service

import (
	"context"
	"errors"
	"testing"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/marioraafat2252004/Slash-Analyses/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPersona() llm.Persona {
	return llm.NewPersona("test-model", "instruction", llm.GenerationConfig{})
}

func TestChatService_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("casual reply", func(t *testing.T) {
		mockGateway := new(MockGateway)
		registry := session.NewRegistry(mockGateway, testPersona(), 10)
		svc := NewChatService(registry)

		mockGateway.On("SendMessage", mock.Anything, mock.Anything, mock.Anything, "hello").
			Return("```json\n{\"intent\": \"casual_message\", \"response\": \"Hi!\"}\n```", nil)

		resp, err := svc.HandleMessage(ctx, "user-1", "hello")
		require.NoError(t, err)
		assert.Equal(t, domain.IntentCasualMessage, resp.ResponseIntent())

		casual := resp.(domain.CasualReply)
		assert.Equal(t, "Hi!", casual.Response)

		// the exchange is recorded against the session
		assert.Len(t, registry.GetOrCreate("user-1").History(), 2)
		mockGateway.AssertExpectations(t)
	})

	t.Run("gateway failure", func(t *testing.T) {
		mockGateway := new(MockGateway)
		registry := session.NewRegistry(mockGateway, testPersona(), 10)
		svc := NewChatService(registry)

		mockGateway.On("SendMessage", mock.Anything, mock.Anything, mock.Anything, "hello").
			Return("", &domain.GatewayError{Op: "send message", Err: errors.New("timeout")})

		_, err := svc.HandleMessage(ctx, "user-1", "hello")
		require.Error(t, err)

		var gatewayErr *domain.GatewayError
		assert.True(t, errors.As(err, &gatewayErr))
		assert.Empty(t, registry.GetOrCreate("user-1").History())
	})

	t.Run("malformed model output", func(t *testing.T) {
		mockGateway := new(MockGateway)
		registry := session.NewRegistry(mockGateway, testPersona(), 10)
		svc := NewChatService(registry)

		mockGateway.On("SendMessage", mock.Anything, mock.Anything, mock.Anything, "hello").
			Return("I refuse to answer in JSON", nil)

		_, err := svc.HandleMessage(ctx, "user-1", "hello")
		require.Error(t, err)

		var malformedErr *domain.MalformedResponseError
		require.True(t, errors.As(err, &malformedErr))
		assert.Equal(t, "I refuse to answer in JSON", malformedErr.Raw)

		// the model did answer, so the exchange stays in history
		assert.Len(t, registry.GetOrCreate("user-1").History(), 2)
	})
}
