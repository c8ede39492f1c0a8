package mocks

import (
	"context"

	"github.com/seu-repo/vui-gateway/internal/domain"
)

// MockPlatformAdapter is a mock implementation of PlatformAdapter interface
type MockPlatformAdapter struct {
	PlatformValue  domain.Platform
	ParseCalls     int
	SerializeCalls int
	ParseFunc      func(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error)
	SerializeFunc  func(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error)
}

func NewMockPlatformAdapter(platform domain.Platform) *MockPlatformAdapter {
	return &MockPlatformAdapter{PlatformValue: platform}
}

func (m *MockPlatformAdapter) Platform() domain.Platform {
	return m.PlatformValue
}

func (m *MockPlatformAdapter) Parse(ctx context.Context, raw []byte, headers map[string]string) (*domain.AssistantRequest, error) {
	m.ParseCalls++
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, raw, headers)
	}
	return &domain.AssistantRequest{Type: domain.RequestTypeLaunch}, nil
}

func (m *MockPlatformAdapter) Serialize(ctx context.Context, resp *domain.AssistantResponse) ([]byte, error) {
	m.SerializeCalls++
	if m.SerializeFunc != nil {
		return m.SerializeFunc(ctx, resp)
	}
	return []byte(`{}`), nil
}
