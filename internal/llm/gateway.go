package llm

import (
	"context"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
)

// Gateway defines the interface to the external generative model. It is
// the only external-I/O suspension point in a request; implementations
// must honor ctx cancellation.
type Gateway interface {
	// SendMessage replays history under the persona's instruction and
	// sends message, returning the raw model text.
	SendMessage(ctx context.Context, persona Persona, history []domain.Turn, message string) (string, error)

	// AnalyzeImage uploads the image at path and asks the persona to
	// analyse it, returning the raw model text.
	AnalyzeImage(ctx context.Context, persona Persona, path, mimeType string) (string, error)
}
