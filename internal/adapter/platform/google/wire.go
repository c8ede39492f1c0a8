package google

import "encoding/json"

// Minimal Dialogflow v2 webhook request shapes. Unknown fields are
// ignored by encoding/json; parameters stay raw so the typed protobuf
// union can be decoded separately.

type WebhookRequest struct {
	ResponseID                  string                      `json:"responseId"`
	Session                     string                      `json:"session"`
	QueryResult                 QueryResult                 `json:"queryResult"`
	OriginalDetectIntentRequest OriginalDetectIntentRequest `json:"originalDetectIntentRequest"`
}

type QueryResult struct {
	QueryText  string          `json:"queryText"`
	Action     string          `json:"action"`
	Parameters json.RawMessage `json:"parameters"`
	Intent     Intent          `json:"intent"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type OriginalDetectIntentRequest struct {
	Source  string  `json:"source"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	User User `json:"user"`
}

type User struct {
	UserID string `json:"userId"`
	// UserStorage is a JSON document serialized into a string by the
	// Actions on Google runtime.
	UserStorage string `json:"userStorage"`
}

type webhookResponse struct {
	FulfillmentText string          `json:"fulfillmentText,omitempty"`
	Payload         json.RawMessage `json:"payload"`
}

// userStorage is the document round-tripped through the platform's
// user-storage field.
type userStorage struct {
	UserID string `json:"userId"`
}
