package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the fixed error shape the frontend expects
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON sends data as-is with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Error sends an error response with a detail message
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// BadGateway sends a 502 Bad Gateway response
func BadGateway(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadGateway, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
