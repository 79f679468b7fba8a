package llm

import "github.com/marioraafat2252004/Slash-Analyses/internal/catalog"

// HarmCategory identifies a safety filtering category
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// HarmThreshold is the blocking level applied to a safety category
type HarmThreshold string

const (
	BlockNone           HarmThreshold = "BLOCK_NONE"
	BlockMediumAndAbove HarmThreshold = "BLOCK_MEDIUM_AND_ABOVE"
)

// SafetySetting pairs a category with its blocking threshold
type SafetySetting struct {
	Category  HarmCategory
	Threshold HarmThreshold
}

// GenerationConfig holds sampling parameters for a persona
type GenerationConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int32
	MaxOutputTokens  int32
	ResponseMIMEType string
}

// Persona is a fixed instruction plus generation-parameter bundle
// defining one behavior mode of the external model. Personas are
// immutable once built.
type Persona struct {
	Model             string
	SystemInstruction string
	Generation        GenerationConfig
	Safety            []SafetySetting
}

// NewPersona builds a persona from an instruction and generation
// config, applying the shared safety thresholds.
func NewPersona(model, instruction string, gen GenerationConfig) Persona {
	return Persona{
		Model:             model,
		SystemInstruction: instruction,
		Generation:        gen,
		Safety:            defaultSafety(),
	}
}

func defaultSafety() []SafetySetting {
	return []SafetySetting{
		{Category: HarmHarassment, Threshold: BlockNone},
		{Category: HarmHateSpeech, Threshold: BlockMediumAndAbove},
		{Category: HarmSexuallyExplicit, Threshold: BlockMediumAndAbove},
		{Category: HarmDangerousContent, Threshold: BlockMediumAndAbove},
	}
}

func defaultGeneration(mimeType string) GenerationConfig {
	return GenerationConfig{
		Temperature:      1,
		TopP:             0.95,
		TopK:             40,
		MaxOutputTokens:  8192,
		ResponseMIMEType: mimeType,
	}
}

// ChatPersona builds the conversational assistant persona grounded on
// the full catalog.
func ChatPersona(model string, cat *catalog.Catalog) Persona {
	return NewPersona(model, ChatInstruction(cat), defaultGeneration("text/plain"))
}

// AnalysisPersona builds the image analyst persona grounded on the
// analysis subset of the catalog.
func AnalysisPersona(model string, cat *catalog.Catalog) Persona {
	return NewPersona(model, AnalysisInstruction(cat), defaultGeneration("application/json"))
}
