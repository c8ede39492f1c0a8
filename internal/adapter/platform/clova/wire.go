package clova

import "encoding/json"

// Minimal Clova Extension Kit (CEK) envelopes.

type CEKRequest struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Request `json:"request"`
}

type Session struct {
	New               bool           `json:"new"`
	SessionID         string         `json:"sessionId"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	User              User           `json:"user"`
}

type User struct {
	UserID string `json:"userId"`
}

type Context struct {
	System      System      `json:"System"`
	AudioPlayer AudioPlayer `json:"AudioPlayer"`
}

type System struct {
	Device Device `json:"device"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

type AudioPlayer struct {
	PlayerActivity string `json:"playerActivity"`
	Stream         Stream `json:"stream"`
}

type Stream struct {
	Token string `json:"token"`
}

type Request struct {
	Type   string `json:"type"`
	Intent Intent `json:"intent"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cekResponse struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          responseBody   `json:"response"`
}

type responseBody struct {
	OutputSpeech     *cekOutputSpeech `json:"outputSpeech,omitempty"`
	Directives       []cekDirective   `json:"directives"`
	ShouldEndSession bool             `json:"shouldEndSession"`
}

type speechInfo struct {
	Type  string `json:"type"`
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// cekOutputSpeech serializes as SimpleSpeech with a single value object
// or SpeechList with an array, matching the CEK schema.
type cekOutputSpeech struct {
	values []speechInfo
}

func (s *cekOutputSpeech) MarshalJSON() ([]byte, error) {
	if len(s.values) == 1 {
		return json.Marshal(struct {
			Type   string     `json:"type"`
			Values speechInfo `json:"values"`
		}{Type: "SimpleSpeech", Values: s.values[0]})
	}
	return json.Marshal(struct {
		Type   string       `json:"type"`
		Values []speechInfo `json:"values"`
	}{Type: "SpeechList", Values: s.values})
}

type cekDirective struct {
	Header  directiveHeader `json:"header"`
	Payload audioPayload    `json:"payload"`
}

type directiveHeader struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type audioPayload struct {
	AudioItem    cekAudioItem `json:"audioItem"`
	PlayBehavior string       `json:"playBehavior"`
	Source       source       `json:"source"`
}

type cekAudioItem struct {
	AudioItemID   string    `json:"audioItemId"`
	HeaderText    string    `json:"headerText"`
	TitleText     string    `json:"titleText"`
	TitleSubText1 string    `json:"titleSubText1"`
	ArtImageURL   string    `json:"artImageUrl,omitempty"`
	Stream        cekStream `json:"stream"`
}

type cekStream struct {
	BeginAtInMilliseconds int64  `json:"beginAtInMilliseconds"`
	URL                   string `json:"url"`
	URLPlayable           bool   `json:"urlPlayable"`
}

type source struct {
	Name string `json:"name"`
}
