package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/port"
)

// MockTemplateStore is a mock implementation of port.TemplateStore.
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) Load(ctx context.Context, id string) (*port.TemplateDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TemplateDefinition), args.Error(1)
}

func (m *MockTemplateStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
