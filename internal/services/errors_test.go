package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"squeeze/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrProbe, "probe", "ffprobe", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"probe", "ffprobe", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected default encode marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "squeeze failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, services.ExitOK},
		{"probe", services.Wrap(services.ErrProbe, "probe", "", "bad json", nil), services.ExitFailure},
		{"encode", services.Wrap(services.ErrEncode, "encode", "", "exit 1", nil), services.ExitFailure},
		{"interrupt", services.Wrap(services.ErrInterrupted, "encode", "", "", nil), services.ExitInterrupted},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), services.ExitInterrupted},
		{"config", services.Wrap(services.ErrConfiguration, "config", "", "", nil), services.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSkippable(t *testing.T) {
	if !services.Skippable(services.Wrap(services.ErrInvalidInput, "probe", "", "not media", nil)) {
		t.Fatal("expected invalid input to be skippable")
	}
	if services.Skippable(services.Wrap(services.ErrProbe, "probe", "", "", nil)) {
		t.Fatal("expected probe failure to be fatal")
	}
}
