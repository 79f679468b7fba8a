// Package normalizer converts raw model text into validated result
// types. The external model does not reliably honor "respond with JSON
// only" instructions, so nothing here assumes well-formedness: output is
// fence-stripped, parsed, and validated, and anything that cannot be
// trusted is rejected with the raw text preserved for diagnostics.
package normalizer

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// StripWrappers removes the accepted formatting wrappers from model
// output: surrounding whitespace, a leading code fence with an optional
// language tag, and a trailing code fence. Anything else is left alone
// for the JSON parser to judge.
func StripWrappers(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && isLanguageTag(strings.TrimSpace(s[:i])) {
		s = s[i+1:]
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isLanguageTag(tag string) bool {
	for _, r := range tag {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

type recommendationsPayload struct {
	Colours    *[]string `json:"colours" validate:"required"`
	Materials  *[]string `json:"materials" validate:"required"`
	Categories *[]string `json:"categories" validate:"required"`
	Styles     *[]string `json:"styles" validate:"required"`
	Brands     *[]string `json:"brands" validate:"required"`
	Tags       *[]string `json:"tags" validate:"required"`
}

type chatPayload struct {
	Intent                string                  `json:"intent" validate:"required,oneof=casual_message product_search"`
	Response              string                  `json:"response" validate:"required"`
	Recommendations       *recommendationsPayload `json:"recommendations" validate:"required_if=Intent product_search"`
	RecommendationCount   *int                    `json:"recommendation_count" validate:"required_if=Intent product_search"`
	RecommendedProductIDs *[]flexNumber           `json:"recommended_products_ids" validate:"required_if=Intent product_search"`
}

// flexNumber accepts a JSON number or a numeric JSON string; the model
// quotes numbers unpredictably.
type flexNumber struct {
	json.Number
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.Number = json.Number(strings.TrimSpace(s))
		return nil
	}
	return json.Unmarshal(b, &n.Number)
}

func (n flexNumber) valid() bool {
	_, err := n.Float64()
	return err == nil
}

// NormalizeChat parses raw model text into a NormalizedResponse,
// returning a MalformedResponseError if it cannot be trusted. Missing
// fields are never guessed or coerced.
func NormalizeChat(raw string) (domain.NormalizedResponse, error) {
	cleaned := StripWrappers(raw)

	var payload chatPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, malformed("invalid JSON", raw, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, malformed("missing or invalid fields", raw, err)
	}

	if domain.Intent(payload.Intent) == domain.IntentCasualMessage {
		return domain.CasualReply{
			Intent:   domain.IntentCasualMessage,
			Response: payload.Response,
		}, nil
	}

	ids := *payload.RecommendedProductIDs
	count := *payload.RecommendationCount
	if count != len(ids) {
		return nil, malformed("recommendation_count does not match recommended_products_ids length", raw, nil)
	}
	if count > domain.MaxRecommendations {
		return nil, malformed("too many recommendations", raw, nil)
	}

	productIDs := make([]json.Number, 0, len(ids))
	for _, id := range ids {
		if !id.valid() {
			return nil, malformed("non-numeric product id", raw, nil)
		}
		productIDs = append(productIDs, id.Number)
	}

	rec := payload.Recommendations
	return domain.ProductSearchReply{
		Intent:   domain.IntentProductSearch,
		Response: payload.Response,
		Recommendations: domain.Recommendations{
			Colours:    orEmpty(*rec.Colours),
			Materials:  orEmpty(*rec.Materials),
			Categories: orEmpty(*rec.Categories),
			Styles:     orEmpty(*rec.Styles),
			Brands:     orEmpty(*rec.Brands),
			Tags:       orEmpty(*rec.Tags),
		},
		RecommendationCount:   count,
		RecommendedProductIDs: productIDs,
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type colourPayload struct {
	Family     *string     `json:"family" validate:"required"`
	Name       *string     `json:"name" validate:"required"`
	Hex        *string     `json:"hex" validate:"required"`
	Percentage *flexNumber `json:"percentage" validate:"required"`
}

type analysisPayload struct {
	Name        *string          `json:"name" validate:"required"`
	Price       *flexNumber      `json:"price" validate:"required"`
	Tags        *[]string        `json:"tags" validate:"required"`
	Style       *string          `json:"style" validate:"required"`
	Category    *string          `json:"category" validate:"required"`
	Colours     *[]colourPayload `json:"colours" validate:"required,dive"`
	Material    *string          `json:"material" validate:"required"`
	Description *string          `json:"description" validate:"required"`
}

// percentage sum tolerance: the model may not close the books exactly
const percentageTolerance = 1.0

// NormalizeImageAnalysis parses raw model text into an ImageAnalysis.
// A top-level "analysis" field that is itself a JSON-encoded string is
// unwrapped one level before validation, a defense against
// double-encoded model output.
func NormalizeImageAnalysis(raw string) (*domain.ImageAnalysis, error) {
	cleaned := StripWrappers(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, malformed("invalid JSON", raw, err)
	}

	body := []byte(cleaned)
	if inner, ok := top["analysis"]; ok {
		var encoded string
		if err := json.Unmarshal(inner, &encoded); err == nil {
			body = []byte(encoded)
		} else {
			body = inner
		}
	}

	var payload analysisPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, malformed("invalid analysis JSON", raw, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, malformed("missing or invalid fields", raw, err)
	}
	if err := checkAnalysis(&payload); err != nil {
		return nil, malformed(err.Error(), raw, nil)
	}

	colours := make([]domain.Colour, 0, len(*payload.Colours))
	for _, c := range *payload.Colours {
		colours = append(colours, domain.Colour{
			Family:     *c.Family,
			Name:       *c.Name,
			Hex:        *c.Hex,
			Percentage: c.Percentage.Number,
		})
	}

	return &domain.ImageAnalysis{
		Name:        *payload.Name,
		Price:       payload.Price.Number,
		Tags:        *payload.Tags,
		Style:       *payload.Style,
		Category:    *payload.Category,
		Colours:     colours,
		Material:    *payload.Material,
		Description: *payload.Description,
	}, nil
}

type validationError string

func (e validationError) Error() string { return string(e) }

func checkAnalysis(p *analysisPayload) error {
	if !p.Price.valid() {
		return validationError("non-numeric price")
	}
	if len(*p.Tags) < domain.MinAnalysisTags {
		return validationError("too few tags")
	}
	if !domain.ValidCategory(*p.Category) {
		return validationError("category not in the allowed set")
	}
	if len(*p.Colours) == 0 {
		return validationError("no colours")
	}

	var sum float64
	for _, c := range *p.Colours {
		if c.Family == nil || c.Name == nil || c.Hex == nil || c.Percentage == nil {
			return validationError("colour entry with missing fields")
		}
		if !domain.ValidColourFamily(*c.Family) {
			return validationError("colour family not in the allowed set")
		}
		pct, err := c.Percentage.Float64()
		if err != nil {
			return validationError("non-numeric colour percentage")
		}
		sum += pct
	}
	if sum < 100-percentageTolerance || sum > 100+percentageTolerance {
		return validationError("colour percentages do not sum to 100")
	}

	return nil
}

func malformed(reason, raw string, err error) error {
	log.Error().
		Err(err).
		Str("reason", reason).
		Str("raw_response", raw).
		Msg("failed to normalize model response")
	return &domain.MalformedResponseError{Reason: reason, Raw: raw, Err: err}
}
