package backend

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"admin-console/internal/apiclient"
)

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Request(ctx context.Context, path string, opts apiclient.RequestOptions) (json.RawMessage, error) {
	args := m.Called(path, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if raw, ok := args.Get(0).(string); ok {
		return json.RawMessage(raw), args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
