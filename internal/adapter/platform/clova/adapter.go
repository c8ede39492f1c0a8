package clova

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

const (
	responseVersion = "0.1.0"

	typeLaunch = "LaunchRequest"
	typeIntent = "IntentRequest"

	defaultSilentAudioBaseURL = "https://himanago.github.io/silent-mp3/"
	defaultSpeechLang         = "ja"

	// Clova has no native SSML break, so pauses render as silent audio
	// files. Files exist for 1..5 seconds; longer breaks chain two.
	maxSilentFileSeconds = 5
)

// Config holds the adapter's serialization defaults.
type Config struct {
	// SilentAudioBaseURL hosts the silent_{n}s.mp3 files used to render
	// pauses.
	SilentAudioBaseURL string
	// SpeechLang is the language tag attached to plain-text speech
	// values.
	SpeechLang string
}

// Adapter translates between CEK envelopes and the canonical model.
// Every parse is preceded by CEK signature verification.
type Adapter struct {
	verifier ports.RequestVerifier
	baseURL  string
	lang     string
	log      *zap.Logger
}

func NewAdapter(cfg Config, verifier ports.RequestVerifier, log *zap.Logger) ports.PlatformAdapter {
	baseURL := cfg.SilentAudioBaseURL
	if baseURL == "" {
		baseURL = defaultSilentAudioBaseURL
	}
	lang := cfg.SpeechLang
	if lang == "" {
		lang = defaultSpeechLang
	}
	return &Adapter{verifier: verifier, baseURL: baseURL, lang: lang, log: log}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformClova }

func (a *Adapter) Parse(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error) {
	if err := a.verifier.Verify(ctx, headers, raw); err != nil {
		return nil, err
	}

	var cek CEKRequest
	if err := json.Unmarshal(raw, &cek); err != nil {
		return nil, fmt.Errorf("%w: cek request: %v", domain.ErrParse, err)
	}

	req := &domain.AssistantRequest{
		Session:         cek.Session.SessionAttributes,
		UserID:          cek.Session.User.UserID,
		DeviceID:        cek.Context.System.Device.DeviceID,
		PreviousAudioID: cek.Context.AudioPlayer.Stream.Token,
		Origin:          domain.NewClovaRequest(&cek),
	}
	if req.Session == nil {
		req.Session = map[string]any{}
	}

	switch cek.Request.Type {
	case typeLaunch:
		req.Type = domain.RequestTypeLaunch
	case typeIntent:
		req.Type = domain.RequestTypeIntent
		req.Intent = cek.Request.Intent.Name
		req.Slots = make(map[string]domain.SlotValue, len(cek.Request.Intent.Slots))
		for name, slot := range cek.Request.Intent.Slots {
			req.Slots[name] = domain.StringValue(slot.Value)
		}
	default:
		// Audio events arrive as EventRequest; unsupported here.
		req.Type = domain.RequestTypeUnsupported
	}
	return req, nil
}

func (a *Adapter) Serialize(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var values []speechInfo
	for _, seg := range resp.SegmentsFor(domain.PlatformClova) {
		switch seg.Type {
		case domain.SegmentText:
			values = append(values, speechInfo{Type: "PlainText", Lang: a.lang, Value: seg.Value})
		case domain.SegmentURL:
			values = append(values, speechInfo{Type: "URL", Value: seg.Value})
		case domain.SegmentBreak:
			values = append(values, a.silence(seg.BreakSeconds)...)
		}
	}

	body := responseBody{
		Directives:       []cekDirective{},
		ShouldEndSession: resp.EndSession(),
	}
	if len(values) > 0 {
		body.OutputSpeech = &cekOutputSpeech{values: values}
	}

	for _, item := range resp.AudioItemsFor(domain.PlatformClova) {
		body.Directives = append(body.Directives, playDirective(item))
	}

	return json.Marshal(cekResponse{
		Version:           responseVersion,
		SessionAttributes: map[string]any{},
		Response:          body,
	})
}

// silence renders a pause as one silent file, or a 5s file plus the
// remainder for longer pauses. The builder caps breaks at 10s, so two
// files always suffice.
func (a *Adapter) silence(seconds int) []speechInfo {
	if seconds <= maxSilentFileSeconds {
		return []speechInfo{a.silentFile(seconds)}
	}
	return []speechInfo{
		a.silentFile(maxSilentFileSeconds),
		a.silentFile(seconds - maxSilentFileSeconds),
	}
}

func (a *Adapter) silentFile(seconds int) speechInfo {
	return speechInfo{
		Type:  "URL",
		Value: fmt.Sprintf("%ssilent_%ds.mp3", a.baseURL, seconds),
	}
}

func playDirective(item domain.AudioItem) cekDirective {
	behavior := "REPLACE_ALL"
	if item.Behavior == domain.BehaviorEnqueue {
		behavior = "ENQUEUE"
	}
	return cekDirective{
		Header: directiveHeader{
			Namespace: "AudioPlayer",
			Name:      "Play",
		},
		Payload: audioPayload{
			AudioItem: cekAudioItem{
				AudioItemID:   item.ID,
				HeaderText:    item.Title,
				TitleText:     item.Title,
				TitleSubText1: item.Subtitle,
				ArtImageURL:   item.ImageURL,
				Stream: cekStream{
					BeginAtInMilliseconds: 0,
					URL:                   item.URL,
					URLPlayable:           true,
				},
			},
			PlayBehavior: behavior,
			Source:       source{Name: item.Title},
		},
	}
}
