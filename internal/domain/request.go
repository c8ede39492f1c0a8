package domain

import "fmt"

// RequestType classifies the inbound request. Only Launch and Intent
// are routed to handler hooks; the audio-player event callbacks parse
// to their own types but are otherwise unsupported.
type RequestType int

const (
	RequestTypeUnsupported RequestType = iota
	RequestTypeLaunch
	RequestTypeIntent
	RequestTypeAudioPlayStarted
	RequestTypeAudioPlayPausedOrStopped
	RequestTypeAudioPlayNearlyFinished
	RequestTypeAudioPlayFinished
)

func (t RequestType) String() string {
	switch t {
	case RequestTypeLaunch:
		return "LaunchRequest"
	case RequestTypeIntent:
		return "IntentRequest"
	case RequestTypeAudioPlayStarted:
		return "AudioPlayStartedEventRequest"
	case RequestTypeAudioPlayPausedOrStopped:
		return "AudioPlayPausedOrStoppedEventRequest"
	case RequestTypeAudioPlayNearlyFinished:
		return "AudioPlayNearlyFinishedEventRequest"
	case RequestTypeAudioPlayFinished:
		return "AudioPlayFinishedEventRequest"
	default:
		return "UnsupportedRequest"
	}
}

// PlatformRequest tags the native envelope a request arrived in. Exactly
// one platform payload exists per request, so the variant replaces three
// mutually exclusive nullable fields.
type PlatformRequest struct {
	platform Platform
	payload  any
}

func NewGoogleRequest(payload any) PlatformRequest {
	return PlatformRequest{platform: PlatformGoogleAssistant, payload: payload}
}

func NewAlexaRequest(payload any) PlatformRequest {
	return PlatformRequest{platform: PlatformAlexa, payload: payload}
}

func NewClovaRequest(payload any) PlatformRequest {
	return PlatformRequest{platform: PlatformClova, payload: payload}
}

func (r PlatformRequest) IsZero() bool { return r.payload == nil }

// Payload exposes the native envelope as an escape hatch for handlers
// that need platform-specific fields. The concrete type is the wire
// struct of the owning adapter package.
func (r PlatformRequest) Payload() any { return r.payload }

// AssistantRequest is the canonical, platform-neutral view of one
// inbound webhook call. It is built once per call by a platform adapter
// and is read-only to handlers.
type AssistantRequest struct {
	Type            RequestType
	Intent          string
	Slots           map[string]SlotValue
	Session         map[string]any
	UserID          string
	DeviceID        string
	PreviousAudioID string
	Origin          PlatformRequest
}

// CurrentPlatform derives the request's origin from the tagged envelope.
// A zero Origin means a parser failed to attach the native request,
// which must fail loudly rather than be guessed around.
func (r *AssistantRequest) CurrentPlatform() (Platform, error) {
	if r.Origin.IsZero() {
		return PlatformAll, fmt.Errorf("%w", ErrNoPlatformRequest)
	}
	return r.Origin.platform, nil
}
