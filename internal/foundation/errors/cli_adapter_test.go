package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "classified validation error",
			err:      NewError(CategoryValidation, "invalid input").Build(),
			expected: 2,
		},
		{
			name:     "missing page",
			err:      NotFoundError("page not found").Build(),
			expected: 3,
		},
		{
			name:     "locked page",
			err:      LockedError("page is locked").Build(),
			expected: 4,
		},
		{
			name:     "config error",
			err:      ConfigError("bad config").Build(),
			expected: 7,
		},
		{
			name:     "wrapped filesystem error",
			err:      fmt.Errorf("save: %w", FileSystemError("disk full").Build()),
			expected: 11,
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "nil error",
			err:      nil,
			contains: "",
		},
		{
			name:     "internal error in non-verbose mode",
			err:      InternalError("internal issue").Build(),
			contains: "Internal error occurred (use -v for details)",
		},
		{
			name:     "config error shows message",
			err:      ConfigError("bad config").Build(),
			contains: "Error: bad config",
		},
		{
			name:     "context is appended",
			err:      NotFoundError("container not found").WithContext("page", "a.html").WithContext("container", "main").Build(),
			contains: "Error: container not found (container=main page=a.html)",
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			contains: "Error: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("FormatError() = %q, want empty string", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}
}

func TestCLIErrorAdapter_VerboseShowsFullError(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, slog.Default())
	err := ConfigError("bad config").WithContext("file", "sitecake.yaml").Build()

	got := adapter.FormatError(err)
	if got != err.Error() {
		t.Errorf("FormatError() = %q, want %q", got, err.Error())
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	code := adapter.Report(&stderr, ValidationError("invalid page name").WithContext("page", "../x.html").Build())
	if code != 2 {
		t.Errorf("Report() = %d, want 2", code)
	}
	if got, want := stderr.String(), "Error: invalid page name (page=../x.html)\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if !strings.Contains(logs.String(), "category=validation") {
		t.Errorf("expected fatal error to be logged, got %q", logs.String())
	}

	logs.Reset()
	stderr.Reset()
	if code := adapter.Report(&stderr, LockedError("page is locked").Build()); code != 4 {
		t.Errorf("Report() = %d, want 4", code)
	}
	if logs.Len() != 0 {
		t.Errorf("expected non-fatal error to stay out of the log, got %q", logs.String())
	}
	if code := adapter.Report(&stderr, nil); code != 0 {
		t.Errorf("Report(nil) = %d, want 0", code)
	}
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
