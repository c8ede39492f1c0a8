package domain

import (
	"errors"
	"testing"
)

func TestPause_WithinBounds(t *testing.T) {
	// Arrange
	resp := NewAssistantResponse()

	// Act
	resp.Pause(1).Pause(10)

	// Assert
	if err := resp.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := len(resp.Segments()); got != 2 {
		t.Errorf("expected 2 segments, got %d", got)
	}
}

func TestPause_OutOfBounds(t *testing.T) {
	for _, seconds := range []int{0, 11, -3} {
		// Arrange
		resp := NewAssistantResponse()

		// Act
		resp.Speak("hello").Pause(seconds)

		// Assert
		if err := resp.Err(); !errors.Is(err, ErrValidation) {
			t.Errorf("Pause(%d): expected ErrValidation, got %v", seconds, err)
		}
		if got := len(resp.Segments()); got != 1 {
			t.Errorf("Pause(%d): expected invalid break to be dropped, got %d segments", seconds, got)
		}
	}
}

func TestKeepListening_DefaultSessionEnds(t *testing.T) {
	resp := NewAssistantResponse()

	if !resp.EndSession() {
		t.Error("expected fresh response to end the session")
	}

	resp.KeepListening("say something")

	if resp.EndSession() {
		t.Error("expected session to stay open after KeepListening")
	}
	if got := resp.Reprompt(); got != "say something" {
		t.Errorf("expected reprompt to be stored, got %q", got)
	}
}

func TestKeepListening_WithoutRepromptPreservesStored(t *testing.T) {
	resp := NewAssistantResponse()
	resp.KeepListening("first")

	resp.KeepListening()

	if got := resp.Reprompt(); got != "first" {
		t.Errorf("expected stored reprompt preserved, got %q", got)
	}
}

func TestSegmentsFor_Targeting(t *testing.T) {
	// Arrange
	resp := NewAssistantResponse()
	resp.Speak("everyone").
		SpeakTo("alexa only", PlatformAlexa).
		SpeakTo("clova only", PlatformClova)

	// Act
	alexaSegs := resp.SegmentsFor(PlatformAlexa)
	googleSegs := resp.SegmentsFor(PlatformGoogleAssistant)

	// Assert
	if len(alexaSegs) != 2 {
		t.Fatalf("expected 2 segments for alexa, got %d", len(alexaSegs))
	}
	if alexaSegs[1].Value != "alexa only" {
		t.Errorf("expected platform segment in insertion order, got %q", alexaSegs[1].Value)
	}
	if len(googleSegs) != 1 {
		t.Errorf("expected 1 segment for google, got %d", len(googleSegs))
	}
}

func TestSSML_RendersAllSegmentKinds(t *testing.T) {
	// Arrange
	resp := NewAssistantResponse()
	resp.Speak("こんにちは。").
		Play("https://example.com/chime.mp3").
		Pause(3)

	// Act
	ssml := resp.SSML(PlatformAlexa)

	// Assert
	want := `<speak>こんにちは。<audio src="https://example.com/chime.mp3" /><break time="3s" /></speak>`
	if ssml != want {
		t.Errorf("unexpected SSML:\n got %s\nwant %s", ssml, want)
	}
}

func TestAudioItemsFor_Targeting(t *testing.T) {
	resp := NewAssistantResponse()
	resp.PlayAudio(AudioItem{ID: "a", URL: "https://example.com/a.mp3"}).
		PlayAudio(AudioItem{ID: "b", URL: "https://example.com/b.mp3", Target: PlatformGoogleAssistant})

	if got := len(resp.AudioItemsFor(PlatformGoogleAssistant)); got != 2 {
		t.Errorf("expected 2 items for google, got %d", got)
	}
	if got := len(resp.AudioItemsFor(PlatformClova)); got != 1 {
		t.Errorf("expected 1 item for clova, got %d", got)
	}
}
