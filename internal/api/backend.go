package api

import "context"

// Backend is the slice of Client the domain services depend on.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, body, out any) error
	Multipart(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out any) error
}

var _ Backend = (*Client)(nil)

// Envelope is the backend's usual {success, message, data} wrapper.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}
