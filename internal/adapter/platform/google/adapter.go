package google

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

const (
	// welcomeAction is the action Dialogflow attaches to the default
	// welcome intent. Matching on it instead of the intent display name
	// keeps launch detection stable across renamed or localized agents.
	welcomeAction = "input.welcome"

	defaultIconURL = "http://storage.googleapis.com/automotive-media/album_art.jpg"
)

// Config holds the adapter's serialization defaults.
type Config struct {
	// DefaultIconURL backs media objects whose audio item carries no
	// image of its own.
	DefaultIconURL string
}

// Adapter translates between Dialogflow webhook JSON and the canonical
// model. Dialogflow provides no signature headers, so there is no
// verification step.
type Adapter struct {
	iconURL string
	log     *zap.Logger
}

func NewAdapter(cfg Config, log *zap.Logger) ports.PlatformAdapter {
	iconURL := cfg.DefaultIconURL
	if iconURL == "" {
		iconURL = defaultIconURL
	}
	return &Adapter{iconURL: iconURL, log: log}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformGoogleAssistant }

func (a *Adapter) Parse(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error) {
	var webhook WebhookRequest
	if err := json.Unmarshal(raw, &webhook); err != nil {
		return nil, fmt.Errorf("%w: dialogflow webhook: %v", domain.ErrParse, err)
	}

	req := &domain.AssistantRequest{
		Session: map[string]any{},
		Origin:  domain.NewGoogleRequest(&webhook),
	}

	if webhook.QueryResult.Action == welcomeAction {
		req.Type = domain.RequestTypeLaunch
	} else {
		slots, err := a.parseParameters(webhook.QueryResult.Parameters)
		if err != nil {
			return nil, err
		}
		req.Type = domain.RequestTypeIntent
		req.Intent = webhook.QueryResult.Intent.DisplayName
		req.Slots = slots
	}

	req.UserID = a.resolveUserID(webhook.OriginalDetectIntentRequest.Payload.User)
	return req, nil
}

// parseParameters decodes Dialogflow's typed value union through
// structpb so every kind maps onto the closed SlotValue variant.
func (a *Adapter) parseParameters(raw json.RawMessage) (map[string]domain.SlotValue, error) {
	slots := map[string]domain.SlotValue{}
	if len(raw) == 0 {
		return slots, nil
	}

	params := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("%w: dialogflow parameters: %v", domain.ErrParse, err)
	}
	for name, value := range params.GetFields() {
		slots[name] = slotValue(value)
	}
	return slots, nil
}

func slotValue(v *structpb.Value) domain.SlotValue {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return domain.StringValue(kind.StringValue)
	case *structpb.Value_NumberValue:
		return domain.NumberValue(kind.NumberValue)
	case *structpb.Value_BoolValue:
		return domain.BoolValue(kind.BoolValue)
	case *structpb.Value_StructValue:
		return domain.StructValue(kind.StructValue.AsMap())
	case *structpb.Value_ListValue:
		items := make([]domain.SlotValue, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			items = append(items, slotValue(item))
		}
		return domain.ListValue(items)
	default:
		return domain.NullValue()
	}
}

// resolveUserID prefers the identifier round-tripped through
// userStorage, then the platform-provided userId. Session-less requests
// get a fresh random identity.
func (a *Adapter) resolveUserID(user User) string {
	if user.UserStorage != "" {
		var storage userStorage
		if err := json.Unmarshal([]byte(user.UserStorage), &storage); err == nil && storage.UserID != "" {
			return storage.UserID
		}
		a.log.Warn("Malformed userStorage, ignoring", zap.String("user_storage", user.UserStorage))
	}
	if user.UserID != "" {
		return user.UserID
	}
	return uuid.NewString()
}

func (a *Adapter) Serialize(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}

	ssml := resp.SSML(domain.PlatformGoogleAssistant)

	storageJSON, err := json.Marshal(userStorage{UserID: resp.UserID()})
	if err != nil {
		return nil, fmt.Errorf("marshal userStorage: %w", err)
	}

	google := map[string]any{
		"expectUserResponse": !resp.EndSession(),
		"userStorage":        string(storageJSON),
		"resetUserStorage":   true,
	}

	audioItems := resp.AudioItemsFor(domain.PlatformGoogleAssistant)
	hasSpeech := len(resp.SegmentsFor(domain.PlatformGoogleAssistant)) > 0
	if len(audioItems) > 0 {
		google["richResponse"] = a.richResponse(ssml, hasSpeech, audioItems, resp.EndSession())
	}

	payload, err := structpb.NewStruct(map[string]any{"google": google})
	if err != nil {
		return nil, fmt.Errorf("build google payload: %w", err)
	}
	payloadJSON, err := protojson.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal google payload: %w", err)
	}

	out := webhookResponse{Payload: payloadJSON}
	if len(audioItems) == 0 {
		out.FulfillmentText = ssml
	}
	return json.Marshal(out)
}

// richResponse lists every audio item in a media response, preceded by
// a simple response carrying the SSML when there is spoken output, plus
// a Stop chip while the conversation stays open.
func (a *Adapter) richResponse(ssml string, hasSpeech bool, audioItems []domain.AudioItem, endSession bool) map[string]any {
	mediaObjects := make([]any, 0, len(audioItems))
	for _, item := range audioItems {
		icon := item.ImageURL
		if icon == "" {
			icon = a.iconURL
		}
		mediaObjects = append(mediaObjects, map[string]any{
			"contentUrl":  item.URL,
			"description": item.Subtitle,
			"icon": map[string]any{
				"url":               icon,
				"accessibilityText": item.Title,
			},
			"name": item.Title,
		})
	}

	var items []any
	if hasSpeech {
		items = append(items, map[string]any{
			"simpleResponse": map[string]any{"ssml": ssml},
		})
	}
	items = append(items, map[string]any{
		"mediaResponse": map[string]any{
			"mediaType":    "AUDIO",
			"mediaObjects": mediaObjects,
		},
	})

	rich := map[string]any{"items": items}
	if !endSession {
		rich["suggestions"] = []any{map[string]any{"title": "Stop"}}
	}
	return rich
}
