package domain

import "encoding/json"

// TurnRole represents the sender of a conversation turn
type TurnRole string

const (
	RoleUser  TurnRole = "user"
	RoleModel TurnRole = "model"
)

// Turn represents one message exchanged within a conversation.
// Turns are immutable once appended to a session history.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Intent discriminates the two chat response variants
type Intent string

const (
	IntentCasualMessage Intent = "casual_message"
	IntentProductSearch Intent = "product_search"
)

// MaxRecommendations is the cap on product recommendations per reply
const MaxRecommendations = 5

// NormalizedResponse is a validated chat reply, either a CasualReply
// or a ProductSearchReply
type NormalizedResponse interface {
	ResponseIntent() Intent
}

// CasualReply is the model's answer to non-product small talk
type CasualReply struct {
	Intent   Intent `json:"intent"`
	Response string `json:"response"`
}

func (r CasualReply) ResponseIntent() Intent { return r.Intent }

// Recommendations groups the attribute suggestions accompanying a
// product search reply. Every field is always present; empty means the
// model had nothing to suggest for that attribute.
type Recommendations struct {
	Colours    []string `json:"colours"`
	Materials  []string `json:"materials"`
	Categories []string `json:"categories"`
	Styles     []string `json:"styles"`
	Brands     []string `json:"brands"`
	Tags       []string `json:"tags"`
}

// ProductSearchReply is the model's answer to a product-related query.
// Invariant: RecommendationCount == len(RecommendedProductIDs), at most
// MaxRecommendations.
type ProductSearchReply struct {
	Intent                Intent          `json:"intent"`
	Response              string          `json:"response"`
	Recommendations       Recommendations `json:"recommendations"`
	RecommendationCount   int             `json:"recommendation_count"`
	RecommendedProductIDs []json.Number   `json:"recommended_products_ids"`
}

func (r ProductSearchReply) ResponseIntent() Intent { return r.Intent }
