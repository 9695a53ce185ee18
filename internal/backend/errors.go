// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeNetwork: the request never produced an HTTP response.
	ErrTypeNetwork
	// ErrTypeHTTP: the backend answered with a non-2xx status.
	ErrTypeHTTP
	// ErrTypeCancelled: the caller's context was cancelled.
	ErrTypeCancelled
	// ErrTypeInvalidResponse: the body could not be decoded.
	ErrTypeInvalidResponse
)

// String returns a short name for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeNetwork:
		return "network"
	case ErrTypeHTTP:
		return "http"
	case ErrTypeCancelled:
		return "cancelled"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Type == ErrTypeHTTP && e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// classifyTransport turns an error from http.Client.Do into a ClientError.
func classifyTransport(ctx context.Context, op string, err error) *ClientError {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &ClientError{Type: ErrTypeCancelled, Message: op + " cancelled", Cause: err}
	}
	return &ClientError{Type: ErrTypeNetwork, Message: op + " failed", Cause: err}
}

// IsCancelled reports whether err is a cancellation, either a ClientError of
// that type or a bare context.Canceled.
func IsCancelled(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeCancelled
	}
	return errors.Is(err, context.Canceled)
}

// IsHTTP reports whether err is a non-2xx response from the backend.
func IsHTTP(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeHTTP
	}
	return false
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNetwork
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}
