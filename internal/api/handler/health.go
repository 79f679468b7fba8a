package handler

import (
	"net/http"

	"github.com/marioraafat2252004/Slash-Analyses/internal/api/response"
)

// HealthCheck returns a static acknowledgement that the API is up
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"message": "AI Chatbot API is running!",
	})
}
