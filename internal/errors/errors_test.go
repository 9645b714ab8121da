package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("send message", "http://localhost:5000/get_response", cause)

	expected := "network error during send message at http://localhost:5000/get_response: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrNetwork) {
		t.Error("Expected error to match ErrNetwork")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}

	noEndpoint := NewNetworkError("send message", "", cause)
	if noEndpoint.Error() != "network error during send message: connection refused" {
		t.Errorf("unexpected message without endpoint: %s", noEndpoint.Error())
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"direct", NewNetworkError("op", "", errors.New("x")), true},
		{"wrapped", fmt.Errorf("outer: %w", NewNetworkError("op", "", errors.New("x"))), true},
		{"config error", NewConfigError("k", "bad"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("request_timeout", "must not be negative")

	if err.Error() != "config error: request_timeout: must not be negative" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Error("Expected error to match ErrInvalidValue")
	}
	if GetEndpoint(err) != "" {
		t.Error("Expected no endpoint for config error")
	}
}
