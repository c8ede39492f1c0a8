package alexa

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

func launchBody() []byte {
	return []byte(`{
		"version": "1.0",
		"session": {
			"new": true,
			"user": {"userId": "amzn1.ask.account.TEST"}
		},
		"context": {
			"System": {"device": {"deviceId": "device-1"}},
			"AudioPlayer": {"token": "prev-token"}
		},
		"request": {"type": "LaunchRequest", "requestId": "req-1"}
	}`)
}

func TestParse_VerificationRunsBeforeUnmarshal(t *testing.T) {
	// Arrange
	verifier := mocks.NewMockRequestVerifier()
	verifier.VerifyFunc = func(ctx context.Context, headers map[string]string, raw []byte) error {
		return fmt.Errorf("%w: missing Signature header", domain.ErrAuthentication)
	}
	adapter := NewAdapter(verifier, newTestLogger())

	// Act
	_, err := adapter.Parse(context.Background(), launchBody(), map[string]string{})

	// Assert
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if verifier.Calls != 1 {
		t.Errorf("expected exactly one verification attempt, got %d", verifier.Calls)
	}
}

func TestParse_Launch(t *testing.T) {
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())

	req, err := adapter.Parse(context.Background(), launchBody(), nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Type != domain.RequestTypeLaunch {
		t.Errorf("expected launch request, got %s", req.Type)
	}
	if req.UserID != "amzn1.ask.account.TEST" {
		t.Errorf("expected session user id, got %q", req.UserID)
	}
	if req.DeviceID != "device-1" {
		t.Errorf("expected device id, got %q", req.DeviceID)
	}
	if req.PreviousAudioID != "prev-token" {
		t.Errorf("expected audio player token, got %q", req.PreviousAudioID)
	}
}

func TestParse_IntentFlattensSlots(t *testing.T) {
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())
	raw := []byte(`{
		"version": "1.0",
		"session": {"attributes": {"step": "two"}},
		"request": {
			"type": "IntentRequest",
			"intent": {
				"name": "OrderIntent",
				"slots": {
					"size": {"name": "size", "value": "large"}
				}
			}
		}
	}`)

	req, err := adapter.Parse(context.Background(), raw, nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Intent != "OrderIntent" {
		t.Errorf("expected intent name, got %q", req.Intent)
	}
	if got := req.Slots["size"].StringVal(); got != "large" {
		t.Errorf("expected flattened slot value, got %q", got)
	}
	if got := req.Session["step"]; got != "two" {
		t.Errorf("expected session attributes carried over, got %v", got)
	}
}

func TestParse_AudioPlayerEvents(t *testing.T) {
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())
	cases := map[string]domain.RequestType{
		"AudioPlayer.PlaybackStarted":        domain.RequestTypeAudioPlayStarted,
		"AudioPlayer.PlaybackStopped":        domain.RequestTypeAudioPlayPausedOrStopped,
		"AudioPlayer.PlaybackNearlyFinished": domain.RequestTypeAudioPlayNearlyFinished,
		"AudioPlayer.PlaybackFinished":       domain.RequestTypeAudioPlayFinished,
		"SessionEndedRequest":                domain.RequestTypeUnsupported,
	}

	for wire, want := range cases {
		raw := []byte(fmt.Sprintf(`{"request": {"type": %q}}`, wire))

		req, err := adapter.Parse(context.Background(), raw, nil)

		if err != nil {
			t.Fatalf("%s: expected no error, got %v", wire, err)
		}
		if req.Type != want {
			t.Errorf("%s: expected %s, got %s", wire, want, req.Type)
		}
	}
}

func TestSerialize_SpeechWithReprompt(t *testing.T) {
	// Arrange
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.Speak("hello")
	resp.KeepListening("still there?")

	// Act
	out, err := adapter.Serialize(context.Background(), resp)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded skillResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", decoded.Version)
	}
	if decoded.Response.OutputSpeech == nil || decoded.Response.OutputSpeech.SSML != "<speak>hello</speak>" {
		t.Errorf("unexpected output speech: %+v", decoded.Response.OutputSpeech)
	}
	if decoded.Response.Reprompt == nil || decoded.Response.Reprompt.OutputSpeech.Text != "still there?" {
		t.Errorf("unexpected reprompt: %+v", decoded.Response.Reprompt)
	}
	if decoded.Response.ShouldEndSession {
		t.Error("expected session to stay open")
	}
}

func TestSerialize_AudioEmitsPlayDirectives(t *testing.T) {
	// Arrange
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.PlayAudio(domain.AudioItem{
		ID:    "track-1",
		URL:   "https://example.com/track.mp3",
		Title: "Track",
	}).PlayAudio(domain.AudioItem{
		ID:             "track-2",
		URL:            "https://example.com/next.mp3",
		PreviousItemID: "track-1",
		Behavior:       domain.BehaviorEnqueue,
	})

	// Act
	out, err := adapter.Serialize(context.Background(), resp)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var decoded skillResponse
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Response.OutputSpeech != nil {
		t.Error("expected no output speech without spoken segments")
	}
	if len(decoded.Response.Directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(decoded.Response.Directives))
	}
	first, second := decoded.Response.Directives[0], decoded.Response.Directives[1]
	if first.PlayBehavior != "REPLACE_ALL" {
		t.Errorf("expected REPLACE_ALL, got %q", first.PlayBehavior)
	}
	if second.PlayBehavior != "ENQUEUE" {
		t.Errorf("expected ENQUEUE, got %q", second.PlayBehavior)
	}
	if second.AudioItem.Stream.ExpectedPreviousToken != "track-1" {
		t.Errorf("expected previous token chained, got %q", second.AudioItem.Stream.ExpectedPreviousToken)
	}
}

func TestSerialize_NothingToSay(t *testing.T) {
	adapter := NewAdapter(mocks.NewMockRequestVerifier(), newTestLogger())
	resp := domain.NewAssistantResponse()
	resp.SpeakTo("clova only", domain.PlatformClova)

	out, err := adapter.Serialize(context.Background(), resp)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != nil {
		t.Errorf("expected nil payload, got %s", out)
	}
}
