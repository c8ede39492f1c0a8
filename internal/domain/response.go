package domain

import (
	"fmt"
	"strings"
)

// SegmentType discriminates plain output segments.
type SegmentType int

const (
	SegmentText SegmentType = iota
	SegmentURL
	SegmentBreak
)

// OutputSegment is one unit of spoken output: raw text, an inline audio
// URL, or a timed pause.
type OutputSegment struct {
	Type         SegmentType
	Value        string
	BreakSeconds int
	Target       Platform
}

// AudioPlayBehavior selects how a platform's audio player treats a new
// item relative to the current queue.
type AudioPlayBehavior int

const (
	BehaviorReplaceAll AudioPlayBehavior = iota
	BehaviorEnqueue
)

// AudioItem describes one long-form stream for the platform audio
// player subsystem, as opposed to inline SSML audio.
type AudioItem struct {
	ID             string
	URL            string
	Title          string
	Subtitle       string
	ImageURL       string
	PreviousItemID string
	Behavior       AudioPlayBehavior
	Target         Platform
}

const (
	minBreakSeconds = 1
	maxBreakSeconds = 10
)

// AssistantResponse accumulates output through a fluent builder and is
// later projected into each platform's wire format by a serializer.
// Serializers never mutate it. Builder mistakes (an out-of-range pause)
// are recorded and surfaced through Err, since chained calls have no
// room for an error return.
type AssistantResponse struct {
	segments      []OutputSegment
	audioItems    []AudioItem
	endSession    bool
	repromptText  string
	userID        string
	err           error
}

// NewAssistantResponse returns an empty accumulator. The conversational
// default is one-shot: the session ends unless KeepListening is called.
func NewAssistantResponse() *AssistantResponse {
	return &AssistantResponse{endSession: true}
}

// Speak appends a text segment audible on every platform.
func (r *AssistantResponse) Speak(text string) *AssistantResponse {
	return r.SpeakTo(text, PlatformAll)
}

// SpeakTo appends a text segment for one platform only.
func (r *AssistantResponse) SpeakTo(text string, target Platform) *AssistantResponse {
	r.segments = append(r.segments, OutputSegment{Type: SegmentText, Value: text, Target: target})
	return r
}

// Play appends an inline audio URL, rendered as an SSML audio element
// on platforms that speak SSML.
func (r *AssistantResponse) Play(url string) *AssistantResponse {
	return r.PlayTo(url, PlatformAll)
}

func (r *AssistantResponse) PlayTo(url string, target Platform) *AssistantResponse {
	r.segments = append(r.segments, OutputSegment{Type: SegmentURL, Value: url, Target: target})
	return r
}

// Pause appends a timed break of 1 to 10 seconds.
func (r *AssistantResponse) Pause(seconds int) *AssistantResponse {
	return r.PauseTo(seconds, PlatformAll)
}

func (r *AssistantResponse) PauseTo(seconds int, target Platform) *AssistantResponse {
	if seconds < minBreakSeconds || seconds > maxBreakSeconds {
		r.err = fmt.Errorf("%w: break time must be between 1 and 10 seconds, got %d", ErrValidation, seconds)
		return r
	}
	r.segments = append(r.segments, OutputSegment{Type: SegmentBreak, BreakSeconds: seconds, Target: target})
	return r
}

// PlayAudio appends an audio-player item. Zero values of Behavior and
// Target mean replace-all and every platform.
func (r *AssistantResponse) PlayAudio(item AudioItem) *AssistantResponse {
	r.audioItems = append(r.audioItems, item)
	return r
}

// KeepListening keeps the session open for another turn. An explicit
// reprompt overwrites the stored one; calling with none preserves it.
func (r *AssistantResponse) KeepListening(reprompt ...string) {
	if len(reprompt) > 0 && reprompt[0] != "" {
		r.repromptText = reprompt[0]
	}
	r.endSession = false
}

// Err reports the first builder mistake, if any. Serialization refuses
// an accumulator with a pending error.
func (r *AssistantResponse) Err() error { return r.err }

// SetUserID stamps the platform-normalized user identifier so
// serializers can round-trip it into user-storage fields.
func (r *AssistantResponse) SetUserID(id string) { r.userID = id }

func (r *AssistantResponse) UserID() string { return r.userID }

func (r *AssistantResponse) Segments() []OutputSegment { return r.segments }

func (r *AssistantResponse) AudioItems() []AudioItem { return r.audioItems }

func (r *AssistantResponse) EndSession() bool { return r.endSession }

func (r *AssistantResponse) Reprompt() string { return r.repromptText }

// SegmentsFor returns the plain segments that apply to target, in
// insertion order.
func (r *AssistantResponse) SegmentsFor(target Platform) []OutputSegment {
	var out []OutputSegment
	for _, seg := range r.segments {
		if seg.Target.Matches(target) {
			out = append(out, seg)
		}
	}
	return out
}

// AudioItemsFor returns the audio items that apply to target, in
// insertion order.
func (r *AssistantResponse) AudioItemsFor(target Platform) []AudioItem {
	var out []AudioItem
	for _, item := range r.audioItems {
		if item.Target.Matches(target) {
			out = append(out, item)
		}
	}
	return out
}

// SSML renders the segments for target as a single speech document:
// text verbatim, URLs as audio elements, breaks as timed pauses.
func (r *AssistantResponse) SSML(target Platform) string {
	var b strings.Builder
	b.WriteString("<speak>")
	for _, seg := range r.SegmentsFor(target) {
		switch seg.Type {
		case SegmentText:
			b.WriteString(seg.Value)
		case SegmentURL:
			fmt.Fprintf(&b, "<audio src=%q />", seg.Value)
		case SegmentBreak:
			fmt.Fprintf(&b, "<break time=\"%ds\" />", seg.BreakSeconds)
		}
	}
	b.WriteString("</speak>")
	return b.String()
}
