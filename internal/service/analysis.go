package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/marioraafat2252004/Slash-Analyses/internal/normalizer"
	"github.com/rs/zerolog/log"
)

// AnalysisService spools an uploaded product image to a temp file,
// hands it to the gateway under the analyst persona, and normalizes the
// result. The temp file is removed on every exit path.
type AnalysisService struct {
	gateway llm.Gateway
	persona llm.Persona
	tmpDir  string
}

// NewAnalysisService creates an analysis service. tmpDir == "" falls
// back to the OS temp directory.
func NewAnalysisService(gateway llm.Gateway, persona llm.Persona, tmpDir string) *AnalysisService {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &AnalysisService{gateway: gateway, persona: persona, tmpDir: tmpDir}
}

// AnalyzeImage validates the upload, runs the analysis and returns the
// validated result.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, file io.Reader, filename, contentType string) (*domain.ImageAnalysis, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &domain.InputValidationError{Msg: "uploaded file must be an image"}
	}

	log.Info().Str("filename", filename).Msg("received image file")

	tmpPath := filepath.Join(s.tmpDir, uuid.New().String()+filepath.Ext(filename))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush upload: %w", err)
	}

	raw, err := s.gateway.AnalyzeImage(ctx, s.persona, tmpPath, contentType)
	if err != nil {
		return nil, err
	}

	return normalizer.NormalizeImageAnalysis(raw)
}
