package skill

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
	"github.com/seu-repo/vui-gateway/internal/service/assistant"
)

const sampleAudioURL = "https://xplatvuisamplesaudiofile.blob.core.windows.net/audio/yukinomai.mp3"

// SampleSkill is the reference yes/no dialogue wired in by default. It
// asks how the user is doing and reacts to a YesIntent or NoIntent,
// exercising speech, pauses, reprompts and the audio player on all
// three platforms.
type SampleSkill struct {
	assistant.BaseHandler
	log *zap.Logger
}

func NewSampleSkill(log *zap.Logger) ports.Handler {
	return &SampleSkill{log: log}
}

func (s *SampleSkill) OnLaunch(ctx context.Context, resp *domain.AssistantResponse, session map[string]any) error {
	s.log.Info("Launch request")

	resp.
		Speak("お元気ですか？").
		Pause(5).
		Speak("元気かどうか教えてください。").
		KeepListening("元気かどうか教えてください。")
	return nil
}

func (s *SampleSkill) OnIntent(ctx context.Context, resp *domain.AssistantResponse, intent string, slots map[string]domain.SlotValue, session map[string]any) error {
	s.log.Info("Intent request", zap.String("intent", intent))

	switch {
	case strings.HasSuffix(intent, "YesIntent"):
		resp.Speak("よかったですね。")

	case strings.HasSuffix(intent, "NoIntent"):
		resp.
			Speak("元気を出してくださいね。").
			PlayAudio(domain.AudioItem{
				ID:       "sample",
				URL:      sampleAudioURL,
				Title:    "Sample Title",
				Subtitle: "Sample Subtitle",
			}).
			KeepListening()

	default:
		resp.Speak("Error")
	}
	return nil
}
