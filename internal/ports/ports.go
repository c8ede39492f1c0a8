package ports

import (
	"context"
	"time"

	"github.com/seu-repo/vui-gateway/internal/domain"
)

// Cache is a process-wide key/value store shared across requests.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// CertificateStore holds the Clova signing certificate for the process
// lifetime. Populate on first use, never expire.
type CertificateStore interface {
	// Get returns the PEM text and whether a certificate is stored.
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, pem string) error
}

// CertificateFetcher retrieves certificate material from a well-known
// HTTPS endpoint.
type CertificateFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SignatureValidator is the cryptographic capability the Alexa verifier
// delegates to: check signature against the certificate chain at
// certChainURL over the raw request payload.
type SignatureValidator interface {
	Validate(ctx context.Context, signature, certChainURL string, payload []byte) error
}

// RequestVerifier authenticates an inbound webhook call before parsing.
type RequestVerifier interface {
	Verify(ctx context.Context, headers map[string]string, raw []byte) error
}

// PlatformAdapter converts between one platform's wire format and the
// canonical model. Serialize is a read-only projection and may return
// (nil, nil) when the platform has nothing to say.
type PlatformAdapter interface {
	Platform() domain.Platform
	Parse(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error)
	Serialize(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error)
}

// Handler is the user-supplied skill logic. Both hooks mutate the
// in-flight response through its builder; either may be a no-op.
type Handler interface {
	OnLaunch(ctx context.Context, resp *domain.AssistantResponse, session map[string]any) error
	OnIntent(ctx context.Context, resp *domain.AssistantResponse, intent string, slots map[string]domain.SlotValue, session map[string]any) error
}

// AssistantService orchestrates one webhook call end to end.
type AssistantService interface {
	Respond(ctx context.Context, platform domain.Platform, headers map[string]string, raw []byte) ([]byte, error)
}
