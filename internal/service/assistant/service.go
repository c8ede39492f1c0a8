package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/observability/telemetry"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

const tracerName = "vui-gateway/assistant"

// Service is the dispatcher: it routes one raw webhook body through the
// matching platform adapter, hands the canonical request to the skill
// handler, and serializes whatever the handler accumulated.
type Service struct {
	adapters map[domain.Platform]ports.PlatformAdapter
	handler  ports.Handler
	tracer   trace.Tracer
	log      *zap.Logger
}

func NewService(adapters []ports.PlatformAdapter, handler ports.Handler, log *zap.Logger) ports.AssistantService {
	byPlatform := make(map[domain.Platform]ports.PlatformAdapter, len(adapters))
	for _, adapter := range adapters {
		byPlatform[adapter.Platform()] = adapter
	}
	return &Service{
		adapters: byPlatform,
		handler:  handler,
		tracer:   otel.Tracer(tracerName),
		log:      log,
	}
}

// Respond processes one inbound call end to end. It returns the
// platform-specific payload, or nil when the platform has nothing to
// say (Alexa with no matching output).
func (s *Service) Respond(ctx context.Context, platform domain.Platform, headers map[string]string, raw []byte) ([]byte, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "assistant.Respond",
		trace.WithAttributes(attribute.String("platform", platform.String())),
	)
	defer span.End()

	out, err := s.respond(ctx, platform, headers, raw)

	telemetry.WebhookLatency.WithLabelValues(platform.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			telemetry.SignatureFailuresTotal.WithLabelValues(platform.String()).Inc()
		}
		telemetry.WebhookRequestsTotal.WithLabelValues(platform.String(), "error").Inc()
		span.RecordError(err)
		return nil, err
	}
	telemetry.WebhookRequestsTotal.WithLabelValues(platform.String(), "ok").Inc()
	return out, nil
}

func (s *Service) respond(ctx context.Context, platform domain.Platform, headers map[string]string, raw []byte) ([]byte, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %s is not a concrete platform", domain.ErrValidation, platform)
	}
	adapter, ok := s.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter for platform %s", domain.ErrValidation, platform)
	}

	req, err := adapter.Parse(ctx, raw, headers)
	if err != nil {
		return nil, err
	}

	resp := domain.NewAssistantResponse()
	resp.SetUserID(req.UserID)

	switch req.Type {
	case domain.RequestTypeLaunch:
		if err := s.handler.OnLaunch(ctx, resp, req.Session); err != nil {
			return nil, fmt.Errorf("launch handler: %w", err)
		}
	case domain.RequestTypeIntent:
		if err := s.handler.OnIntent(ctx, resp, req.Intent, req.Slots, req.Session); err != nil {
			return nil, fmt.Errorf("intent handler: %w", err)
		}
	default:
		// Audio events and unknown types route nowhere; the response
		// stays empty and serializes to the platform's default shape.
		s.log.Debug("No hook for request type",
			zap.String("type", req.Type.String()),
			zap.String("platform", platform.String()),
		)
	}

	if err := resp.Err(); err != nil {
		return nil, err
	}
	return adapter.Serialize(ctx, resp)
}

// BaseHandler provides no-op hooks; skills embed it and override what
// they need.
type BaseHandler struct{}

func (BaseHandler) OnLaunch(ctx context.Context, resp *domain.AssistantResponse, session map[string]any) error {
	return nil
}

func (BaseHandler) OnIntent(ctx context.Context, resp *domain.AssistantResponse, intent string, slots map[string]domain.SlotValue, session map[string]any) error {
	return nil
}
