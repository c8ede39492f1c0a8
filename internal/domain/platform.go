package domain

import "fmt"

// Platform identifies the voice-assistant platform a request came from
// or a response fragment is aimed at.
type Platform int

const (
	// PlatformAll is the wildcard used for response targeting. It is the
	// zero value so untargeted output applies everywhere.
	PlatformAll Platform = iota
	PlatformGoogleAssistant
	PlatformAlexa
	PlatformClova
)

func (p Platform) String() string {
	switch p {
	case PlatformAll:
		return "all"
	case PlatformGoogleAssistant:
		return "google_assistant"
	case PlatformAlexa:
		return "alexa"
	case PlatformClova:
		return "clova"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// Valid reports whether p is one of the three concrete platforms.
// PlatformAll is a targeting wildcard, not a request origin.
func (p Platform) Valid() bool {
	return p == PlatformGoogleAssistant || p == PlatformAlexa || p == PlatformClova
}

// Matches reports whether output targeted at p applies when serializing
// for target.
func (p Platform) Matches(target Platform) bool {
	return p == PlatformAll || p == target
}

// ParsePlatform maps a route tag to a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "google", "google_assistant":
		return PlatformGoogleAssistant, nil
	case "alexa":
		return PlatformAlexa, nil
	case "clova":
		return PlatformClova, nil
	default:
		return PlatformAll, fmt.Errorf("%w: unknown platform %q", ErrValidation, s)
	}
}
