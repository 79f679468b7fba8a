package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Gateway is the Gemini-backed llm.Gateway implementation. The
// underlying client is shared across requests and closed on shutdown.
type Gateway struct {
	client *genai.Client
}

// NewGateway creates a Gemini gateway from an API key
func NewGateway(ctx context.Context, apiKey string) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini gateway is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gateway{client: client}, nil
}

// Close releases the underlying client
func (g *Gateway) Close() error {
	return g.client.Close()
}

// SendMessage replays the session history under the persona and sends
// the user message, returning the raw model text.
func (g *Gateway) SendMessage(ctx context.Context, persona llm.Persona, history []domain.Turn, message string) (string, error) {
	model := g.model(persona)

	cs := model.StartChat()
	cs.History = toContents(history)

	start := time.Now()
	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", &domain.GatewayError{Op: "send message", Err: err}
	}

	text, err := collectText(resp)
	if err != nil {
		return "", &domain.GatewayError{Op: "send message", Err: err}
	}

	log.Debug().
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Str("model", persona.Model).
		Msg("gemini chat round trip")

	return text, nil
}

// AnalyzeImage uploads the image at path and asks the persona to
// analyse it. The uploaded artifact lives on Gemini's side; the local
// temp file is the caller's responsibility.
func (g *Gateway) AnalyzeImage(ctx context.Context, persona llm.Persona, path, mimeType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &domain.GatewayError{Op: "open image", Err: err}
	}
	defer f.Close()

	uploaded, err := g.client.UploadFile(ctx, "", f, &genai.UploadFileOptions{
		MIMEType:    mimeType,
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return "", &domain.GatewayError{Op: "upload image", Err: err}
	}

	log.Debug().Str("uri", uploaded.URI).Msg("uploaded image to gemini")

	model := g.model(persona)

	cs := model.StartChat()
	cs.History = []*genai.Content{
		{
			Role: string(domain.RoleUser),
			Parts: []genai.Part{
				genai.FileData{MIMEType: uploaded.MIMEType, URI: uploaded.URI},
			},
		},
	}

	resp, err := cs.SendMessage(ctx, genai.Text(llm.AnalysisMessage))
	if err != nil {
		return "", &domain.GatewayError{Op: "analyze image", Err: err}
	}

	text, err := collectText(resp)
	if err != nil {
		return "", &domain.GatewayError{Op: "analyze image", Err: err}
	}

	return text, nil
}

func (g *Gateway) model(persona llm.Persona) *genai.GenerativeModel {
	model := g.client.GenerativeModel(persona.Model)
	model.SetTemperature(persona.Generation.Temperature)
	model.SetTopP(persona.Generation.TopP)
	model.SetTopK(persona.Generation.TopK)
	model.SetMaxOutputTokens(persona.Generation.MaxOutputTokens)
	model.ResponseMIMEType = persona.Generation.ResponseMIMEType
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(persona.SystemInstruction)},
	}
	model.SafetySettings = toSafetySettings(persona.Safety)
	return model
}

func toContents(history []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  string(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return contents
}

func toSafetySettings(settings []llm.SafetySetting) []*genai.SafetySetting {
	out := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		out = append(out, &genai.SafetySetting{
			Category:  toHarmCategory(s.Category),
			Threshold: toHarmThreshold(s.Threshold),
		})
	}
	return out
}

func toHarmCategory(c llm.HarmCategory) genai.HarmCategory {
	switch c {
	case llm.HarmHarassment:
		return genai.HarmCategoryHarassment
	case llm.HarmHateSpeech:
		return genai.HarmCategoryHateSpeech
	case llm.HarmSexuallyExplicit:
		return genai.HarmCategorySexuallyExplicit
	case llm.HarmDangerousContent:
		return genai.HarmCategoryDangerousContent
	}
	return genai.HarmCategoryUnspecified
}

func toHarmThreshold(t llm.HarmThreshold) genai.HarmBlockThreshold {
	switch t {
	case llm.BlockNone:
		return genai.HarmBlockNone
	case llm.BlockMediumAndAbove:
		return genai.HarmBlockMediumAndAbove
	}
	return genai.HarmBlockUnspecified
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("response blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}
	if output == "" {
		return "", fmt.Errorf("no text parts in gemini response")
	}

	return output, nil
}
