package clova

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// decodedSpeech mirrors the outputSpeech wire shape with values as raw
// JSON, since the field is an object or an array depending on count.
type decodedSpeech struct {
	Type   string          `json:"type"`
	Values json.RawMessage `json:"values"`
}

type decodedResponse struct {
	Version  string `json:"version"`
	Response struct {
		OutputSpeech     *decodedSpeech   `json:"outputSpeech"`
		Directives       []map[string]any `json:"directives"`
		ShouldEndSession bool             `json:"shouldEndSession"`
	} `json:"response"`
}

func TestParse_VerificationRunsFirst(t *testing.T) {
	// Arrange
	verifier := mocks.NewMockRequestVerifier()
	verifier.VerifyFunc = func(ctx context.Context, headers map[string]string, raw []byte) error {
		return fmt.Errorf("%w: bad cek signature", domain.ErrAuthentication)
	}
	adapter := NewAdapter(Config{}, verifier, newTestLogger())

	// Act
	_, err := adapter.Parse(context.Background(), []byte(`{"request":{"type":"LaunchRequest"}}`), nil)

	// Assert
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestParse_Launch(t *testing.T) {
	// Arrange
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	raw := []byte(`{
		"version": "1.0",
		"session": {"user": {"userId": "clova-user"}},
		"request": {"type": "LaunchRequest"}
	}`)

	// Act
	req, err := adapter.Parse(context.Background(), raw, nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Type != domain.RequestTypeLaunch {
		t.Errorf("expected launch request, got %s", req.Type)
	}
	if req.Intent != "" {
		t.Errorf("expected no intent on launch, got %q", req.Intent)
	}
	if req.UserID != "clova-user" {
		t.Errorf("expected user id, got %q", req.UserID)
	}
	if platform, _ := req.CurrentPlatform(); platform != domain.PlatformClova {
		t.Errorf("expected clova origin, got %s", platform)
	}
}

func TestParse_EventRequestUnsupported(t *testing.T) {
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	raw := []byte(`{"request": {"type": "EventRequest"}}`)

	req, err := adapter.Parse(context.Background(), raw, nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Type != domain.RequestTypeUnsupported {
		t.Errorf("expected unsupported request, got %s", req.Type)
	}
}

func TestParse_Intent(t *testing.T) {
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	raw := []byte(`{
		"version": "1.0",
		"session": {
			"sessionAttributes": {"mood": "good"},
			"user": {"userId": "clova-user"}
		},
		"request": {
			"type": "IntentRequest",
			"intent": {
				"name": "AnswerIntent",
				"slots": {"answer": {"name": "answer", "value": "yes"}}
			}
		}
	}`)

	req, err := adapter.Parse(context.Background(), raw, nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Type != domain.RequestTypeIntent {
		t.Errorf("expected intent request, got %s", req.Type)
	}
	if req.Intent != "AnswerIntent" {
		t.Errorf("expected intent name, got %q", req.Intent)
	}
	if got := req.Slots["answer"].StringVal(); got != "yes" {
		t.Errorf("expected slot value yes, got %q", got)
	}
	if req.UserID != "clova-user" {
		t.Errorf("expected user id, got %q", req.UserID)
	}
}

func TestSerialize_SingleValueIsSimpleSpeech(t *testing.T) {
	// Arrange
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.Speak("こんにちは")

	// Act
	out, err := adapter.Serialize(context.Background(), resp)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded decodedResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %q", decoded.Version)
	}
	if decoded.Response.OutputSpeech.Type != "SimpleSpeech" {
		t.Errorf("expected SimpleSpeech, got %q", decoded.Response.OutputSpeech.Type)
	}
	var value speechInfo
	if err := json.Unmarshal(decoded.Response.OutputSpeech.Values, &value); err != nil {
		t.Fatalf("expected values as a single object: %v", err)
	}
	if value.Type != "PlainText" || value.Lang != "ja" || value.Value != "こんにちは" {
		t.Errorf("unexpected speech value: %+v", value)
	}
}

func TestSerialize_LongPauseChainsSilentFiles(t *testing.T) {
	// Arrange
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.Speak("A").Pause(7)

	// Act
	out, err := adapter.Serialize(context.Background(), resp)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded decodedResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Response.OutputSpeech.Type != "SpeechList" {
		t.Fatalf("expected SpeechList, got %q", decoded.Response.OutputSpeech.Type)
	}
	var values []speechInfo
	if err := json.Unmarshal(decoded.Response.OutputSpeech.Values, &values); err != nil {
		t.Fatalf("expected values as an array: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected text plus two silent files, got %d values", len(values))
	}
	if values[0].Value != "A" {
		t.Errorf("expected text first, got %q", values[0].Value)
	}
	if values[1].Value != "https://himanago.github.io/silent-mp3/silent_5s.mp3" {
		t.Errorf("unexpected first silent file: %q", values[1].Value)
	}
	if values[2].Value != "https://himanago.github.io/silent-mp3/silent_2s.mp3" {
		t.Errorf("unexpected second silent file: %q", values[2].Value)
	}
}

func TestSerialize_ShortPauseUsesOneFile(t *testing.T) {
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.Pause(4)

	out, err := adapter.Serialize(context.Background(), resp)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded decodedResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Response.OutputSpeech.Type != "SimpleSpeech" {
		t.Fatalf("expected SimpleSpeech for one value, got %q", decoded.Response.OutputSpeech.Type)
	}
	var value speechInfo
	if err := json.Unmarshal(decoded.Response.OutputSpeech.Values, &value); err != nil {
		t.Fatalf("expected values as a single object: %v", err)
	}
	if value.Value != "https://himanago.github.io/silent-mp3/silent_4s.mp3" {
		t.Errorf("unexpected silent file: %q", value.Value)
	}
}

func TestSerialize_AudioDirective(t *testing.T) {
	adapter := NewAdapter(Config{}, mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.PlayAudio(domain.AudioItem{
		ID:       "track-1",
		URL:      "https://example.com/track.mp3",
		Title:    "Track",
		Subtitle: "A track",
	})

	out, err := adapter.Serialize(context.Background(), resp)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded decodedResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Response.Directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(decoded.Response.Directives))
	}
	header, _ := decoded.Response.Directives[0]["header"].(map[string]any)
	if header["namespace"] != "AudioPlayer" || header["name"] != "Play" {
		t.Errorf("unexpected directive header: %v", header)
	}
}

func TestSerialize_SpeechLangOverride(t *testing.T) {
	adapter := NewAdapter(Config{SpeechLang: "en"}, mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.Speak("hello")

	out, err := adapter.Serialize(context.Background(), resp)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded decodedResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	var value speechInfo
	if err := json.Unmarshal(decoded.Response.OutputSpeech.Values, &value); err != nil {
		t.Fatalf("expected values as a single object: %v", err)
	}
	if value.Lang != "en" {
		t.Errorf("expected configured lang, got %q", value.Lang)
	}
}
