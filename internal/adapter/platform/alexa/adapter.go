package alexa

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

const responseVersion = "1.0"

// Request type strings on the wire.
const (
	typeLaunch                 = "LaunchRequest"
	typeIntent                 = "IntentRequest"
	typePlaybackStarted        = "AudioPlayer.PlaybackStarted"
	typePlaybackStopped        = "AudioPlayer.PlaybackStopped"
	typePlaybackNearlyFinished = "AudioPlayer.PlaybackNearlyFinished"
	typePlaybackFinished       = "AudioPlayer.PlaybackFinished"
)

// Adapter translates between Alexa skill envelopes and the canonical
// model. Every parse is preceded by request verification; a request
// that fails it never reaches a handler.
type Adapter struct {
	verifier ports.RequestVerifier
	log      *zap.Logger
}

func NewAdapter(verifier ports.RequestVerifier, log *zap.Logger) ports.PlatformAdapter {
	return &Adapter{verifier: verifier, log: log}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformAlexa }

func (a *Adapter) Parse(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error) {
	if err := a.verifier.Verify(ctx, headers, raw); err != nil {
		return nil, err
	}

	var skill SkillRequest
	if err := json.Unmarshal(raw, &skill); err != nil {
		return nil, fmt.Errorf("%w: alexa skill request: %v", domain.ErrParse, err)
	}

	req := &domain.AssistantRequest{
		Type:            requestType(skill.Request.Type),
		Session:         skill.Session.Attributes,
		UserID:          skill.Session.User.UserID,
		DeviceID:        skill.Context.System.Device.DeviceID,
		PreviousAudioID: skill.Context.AudioPlayer.Token,
		Origin:          domain.NewAlexaRequest(&skill),
	}
	if req.Session == nil {
		req.Session = map[string]any{}
	}

	if req.Type == domain.RequestTypeIntent {
		req.Intent = skill.Request.Intent.Name
		req.Slots = make(map[string]domain.SlotValue, len(skill.Request.Intent.Slots))
		// Multi-value and resolution data are dropped; only the plain
		// slot value survives the flattening.
		for name, slot := range skill.Request.Intent.Slots {
			req.Slots[name] = domain.StringValue(slot.Value)
		}
	}
	return req, nil
}

func requestType(wire string) domain.RequestType {
	switch wire {
	case typeLaunch:
		return domain.RequestTypeLaunch
	case typeIntent:
		return domain.RequestTypeIntent
	case typePlaybackStarted:
		return domain.RequestTypeAudioPlayStarted
	case typePlaybackStopped:
		return domain.RequestTypeAudioPlayPausedOrStopped
	case typePlaybackNearlyFinished:
		return domain.RequestTypeAudioPlayNearlyFinished
	case typePlaybackFinished:
		return domain.RequestTypeAudioPlayFinished
	default:
		return domain.RequestTypeUnsupported
	}
}

// Serialize projects the accumulator into a skill response. With audio
// items present it emits one play directive per item; spoken output and
// reprompt ride along only when segments also target this platform.
// With neither, the platform has nothing to say and the body is empty.
func (a *Adapter) Serialize(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}

	segments := resp.SegmentsFor(domain.PlatformAlexa)
	audioItems := resp.AudioItemsFor(domain.PlatformAlexa)

	switch {
	case len(audioItems) > 0:
		body := responseBody{
			ShouldEndSession: resp.EndSession(),
			Directives:       make([]directive, 0, len(audioItems)),
		}
		if len(segments) > 0 {
			body.OutputSpeech = &outputSpeech{Type: "SSML", SSML: resp.SSML(domain.PlatformAlexa)}
			body.Reprompt = repromptFor(resp)
		}
		for _, item := range audioItems {
			body.Directives = append(body.Directives, playDirective(item))
		}
		return json.Marshal(skillResponse{Version: responseVersion, Response: body})

	case len(segments) > 0:
		body := responseBody{
			OutputSpeech:     &outputSpeech{Type: "SSML", SSML: resp.SSML(domain.PlatformAlexa)},
			Reprompt:         repromptFor(resp),
			ShouldEndSession: resp.EndSession(),
		}
		return json.Marshal(skillResponse{Version: responseVersion, Response: body})

	default:
		return nil, nil
	}
}

func repromptFor(resp *domain.AssistantResponse) *reprompt {
	if resp.Reprompt() == "" {
		return nil
	}
	return &reprompt{OutputSpeech: outputSpeech{Type: "PlainText", Text: resp.Reprompt()}}
}

func playDirective(item domain.AudioItem) directive {
	behavior := "REPLACE_ALL"
	if item.Behavior == domain.BehaviorEnqueue {
		behavior = "ENQUEUE"
	}
	return directive{
		Type:         "AudioPlayer.Play",
		PlayBehavior: behavior,
		AudioItem: audioItem{
			Stream: stream{
				URL:                   item.URL,
				Token:                 item.ID,
				ExpectedPreviousToken: item.PreviousItemID,
			},
			Metadata: metadata{
				Title:    item.Title,
				Subtitle: item.Subtitle,
			},
		},
	}
}
