package alexa

// Minimal Alexa Skills Kit request/response envelopes. Only the fields
// needed for launch/intent requests and speech/audio-player responses
// are modeled.

type SkillRequest struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Request `json:"request"`
}

type Session struct {
	New        bool           `json:"new"`
	SessionID  string         `json:"sessionId"`
	Attributes map[string]any `json:"attributes"`
	User       SessionUser    `json:"user"`
}

type SessionUser struct {
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
	Token                string `json:"token"`
	OffsetInMilliseconds int64  `json:"offsetInMilliseconds"`
	PlayerActivity       string `json:"playerActivity"`
}

type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale"`
	Intent    Intent `json:"intent"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type skillResponse struct {
	Version  string       `json:"version"`
	Response responseBody `json:"response"`
}

type responseBody struct {
	OutputSpeech     *outputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *reprompt     `json:"reprompt,omitempty"`
	Directives       []directive   `json:"directives,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type outputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml,omitempty"`
	Text string `json:"text,omitempty"`
}

type reprompt struct {
	OutputSpeech outputSpeech `json:"outputSpeech"`
}

type directive struct {
	Type         string    `json:"type"`
	PlayBehavior string    `json:"playBehavior"`
	AudioItem    audioItem `json:"audioItem"`
}

type audioItem struct {
	Stream   stream   `json:"stream"`
	Metadata metadata `json:"metadata"`
}

type stream struct {
	URL                   string `json:"url"`
	Token                 string `json:"token"`
	ExpectedPreviousToken string `json:"expectedPreviousToken,omitempty"`
	OffsetInMilliseconds  int64  `json:"offsetInMilliseconds"`
}

type metadata struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
