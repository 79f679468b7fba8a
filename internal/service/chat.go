package service

import (
	"context"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/normalizer"
	"github.com/marioraafat2252004/Slash-Analyses/internal/session"
	"github.com/rs/zerolog/log"
)

// ChatService forwards user messages to the model through the session
// registry and normalizes the reply.
type ChatService struct {
	registry *session.Registry
}

// NewChatService creates a new chat service
func NewChatService(registry *session.Registry) *ChatService {
	return &ChatService{registry: registry}
}

// HandleMessage sends message within userID's conversation and returns
// the validated reply. The user turn and model turn are recorded only
// on a successful gateway round trip; normalization failures still
// leave the exchange in history, since the model did answer.
func (s *ChatService) HandleMessage(ctx context.Context, userID, message string) (domain.NormalizedResponse, error) {
	raw, err := s.registry.SendAndAppend(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	resp, err := normalizer.NormalizeChat(raw)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("user_id", userID).
		Str("intent", string(resp.ResponseIntent())).
		Msg("chat message handled")

	return resp, nil
}
