package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSCAErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *SCAError
		wantErr  string
		wantUser string
	}{
		{
			name:     "what only",
			err:      &SCAError{What: "something broke"},
			wantErr:  "something broke",
			wantUser: "Error: something broke",
		},
		{
			name:     "what and why",
			err:      &SCAError{What: "something broke", Why: "bad input"},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input",
		},
		{
			name: "full error",
			err: &SCAError{
				What: "something broke",
				Why:  "bad input",
				Fix:  "try again",
			},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input\n\nFix: try again",
		},
		{
			name: "with cause",
			err: &SCAError{
				What:  "something broke",
				Cause: errors.New("underlying error"),
			},
			wantErr:  "something broke: underlying error",
			wantUser: "Error: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantErr {
				t.Errorf("Error() = %q, want %q", got, tt.wantErr)
			}
			if got := tt.err.UserMessage(); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestSCAErrorIs(t *testing.T) {
	err := ErrMetadataNotFound("/scene/LC08_MTL.txt")

	if !errors.Is(err, &SCAError{Code: CodeMetadataNotFound}) {
		t.Error("expected errors.Is to match on code")
	}
	if errors.Is(err, &SCAError{Code: CodeToolFailed}) {
		t.Error("expected errors.Is to reject a different code")
	}
}

func TestSCAErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := ErrSceneDirNotWritable("/scene").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via Unwrap")
	}
}

func TestAsSCAError(t *testing.T) {
	inner := ErrToolFailed("scene_based_sca", 1)
	wrapped := fmt.Errorf("run scene: %w", inner)

	got := AsSCAError(wrapped)
	if got == nil {
		t.Fatal("expected AsSCAError to find wrapped SCAError")
	}
	if got.Code != CodeToolFailed {
		t.Errorf("Code = %q, want %q", got.Code, CodeToolFailed)
	}

	if AsSCAError(errors.New("plain")) != nil {
		t.Error("expected nil for non-SCAError")
	}
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *SCAError
		code Code
	}{
		{"missing argument", ErrMissingArgument("metadata-file"), CodeMissingArgument},
		{"metadata not found", ErrMetadataNotFound("x"), CodeMetadataNotFound},
		{"metadata invalid", ErrMetadataInvalid("x", "no corners"), CodeMetadataInvalid},
		{"dir not writable", ErrSceneDirNotWritable("/x"), CodeSceneDirReadOnly},
		{"tool failed", ErrToolFailed("geomresample", 2), CodeToolFailed},
		{"tool unavailable", ErrToolUnavailable("retrieve_elevation"), CodeToolUnavailable},
		{"config missing", ErrConfigMissing("bin_dir"), CodeConfigMissing},
		{"config invalid", ErrConfigInvalid("tool_timeout", "negative"), CodeConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.What == "" {
				t.Error("expected non-empty What")
			}
		})
	}
}
