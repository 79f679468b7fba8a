package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/marioraafat2252004/Slash-Analyses/internal/api/response"
	"github.com/marioraafat2252004/Slash-Analyses/internal/service"
)

var validate = validator.New()

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatMessageRequest is the body of POST /api/chat/message
type ChatMessageRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Message forwards a user message to the model within the user's
// session and returns the normalized reply verbatim.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.chatService.HandleMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, resp)
}
