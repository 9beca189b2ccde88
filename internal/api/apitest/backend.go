// Package apitest provides a testify mock of api.Backend. Each expectation returns the raw JSON
// body the backend would send, which is decoded into the caller's out value.
package apitest

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Get(ctx context.Context, path string, out any) error {
	return fill(m.Called(ctx, path), out)
}

func (m *MockBackend) Post(ctx context.Context, path string, body, out any) error {
	return fill(m.Called(ctx, path, body), out)
}

func (m *MockBackend) Put(ctx context.Context, path string, body, out any) error {
	return fill(m.Called(ctx, path, body), out)
}

func (m *MockBackend) Delete(ctx context.Context, path string, body, out any) error {
	return fill(m.Called(ctx, path, body), out)
}

func (m *MockBackend) Multipart(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out any) error {
	return fill(m.Called(ctx, method, path, fields, fileField, filePath), out)
}

func fill(args mock.Arguments, out any) error {
	if err := args.Error(1); err != nil {
		return err
	}
	if raw := args.String(0); raw != "" && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}
