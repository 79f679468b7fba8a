package handler

import (
	"net/http"

	"github.com/marioraafat2252004/Slash-Analyses/internal/api/response"
	"github.com/marioraafat2252004/Slash-Analyses/internal/service"
)

// maxUploadBytes caps product image uploads at 20MB
const maxUploadBytes = 20 << 20

// ProductHandler handles the product endpoints
type ProductHandler struct {
	analysisService *service.AnalysisService
}

// NewProductHandler creates a new product handler
func NewProductHandler(analysisService *service.AnalysisService) *ProductHandler {
	return &ProductHandler{analysisService: analysisService}
}

// AnalyseImage accepts a multipart image upload under the "file" field
// and returns the validated analysis.
func (h *ProductHandler) AnalyseImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	result, err := h.analysisService.AnalyzeImage(
		r.Context(), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, result)
}
