package mocks

import (
	"context"

	"github.com/seu-repo/vui-gateway/internal/domain"
)

// MockHandler is a mock implementation of Handler interface
type MockHandler struct {
	LaunchCalls  int
	IntentCalls  int
	LastIntent   string
	LastSlots    map[string]domain.SlotValue
	LastSession  map[string]any
	OnLaunchFunc func(ctx context.Context, resp *domain.AssistantResponse, session map[string]any) error
	OnIntentFunc func(ctx context.Context, resp *domain.AssistantResponse, intent string, slots map[string]domain.SlotValue, session map[string]any) error
}

func NewMockHandler() *MockHandler {
	return &MockHandler{}
}

func (m *MockHandler) OnLaunch(ctx context.Context, resp *domain.AssistantResponse, session map[string]any) error {
	m.LaunchCalls++
	m.LastSession = session
	if m.OnLaunchFunc != nil {
		return m.OnLaunchFunc(ctx, resp, session)
	}
	return nil
}

func (m *MockHandler) OnIntent(ctx context.Context, resp *domain.AssistantResponse, intent string, slots map[string]domain.SlotValue, session map[string]any) error {
	m.IntentCalls++
	m.LastIntent = intent
	m.LastSlots = slots
	m.LastSession = session
	if m.OnIntentFunc != nil {
		return m.OnIntentFunc(ctx, resp, intent, slots, session)
	}
	return nil
}
