package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(cause, CategoryFileSystem, "write failed").
		Warning().
		WithContext("page", "index.html").
		WithContext("size", 443).
		Build()

	if err.Category() != CategoryFileSystem {
		t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap its cause")
	}
	if page, _ := err.Context().GetString("page"); page != "index.html" {
		t.Errorf("expected page context 'index.html', got %s", page)
	}
	if got, want := err.Error(), "[filesystem:warning] write failed: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("x"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("x"), CategoryValidation, SeverityFatal},
		{"NotFoundError", NotFoundError("x"), CategoryNotFound, SeverityError},
		{"FileSystemError", FileSystemError("x"), CategoryFileSystem, SeverityError},
		{"LockedError", LockedError("x"), CategoryLocked, SeverityWarning},
		{"RuntimeError", RuntimeError("x"), CategoryRuntime, SeverityFatal},
		{"InternalError", InternalError("x"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}

func TestWithContext_CopiesError(t *testing.T) {
	base := NotFoundError("container not found").WithContext("page", "a.html").Build()
	derived := base.WithContext("container", "main")

	if _, ok := base.Context().Get("container"); ok {
		t.Error("WithContext must not mutate the receiver")
	}
	if name, _ := derived.Context().GetString("container"); name != "main" {
		t.Errorf("expected container=main, got %q", name)
	}
	if !errors.Is(derived, base) {
		t.Error("errors with equal category and message should match")
	}
}

func TestErrorContext_String(t *testing.T) {
	var empty ErrorContext
	if empty.String() != "" {
		t.Errorf("expected empty string, got %q", empty.String())
	}

	ctx := ErrorContext{}.Set("selector", "nav a[").Set("page", "index.html")
	if got, want := ctx.String(), "page=index.html selector=nav a["; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, ok := ctx.GetString("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestAsClassified_FindsWrappedError(t *testing.T) {
	inner := NotFoundError("page missing").WithContext("page", "about.html").Build()
	wrapped := fmt.Errorf("render: %w", inner)

	got, ok := AsClassified(wrapped)
	if !ok {
		t.Fatal("expected classified error in chain")
	}
	if got.Category() != CategoryNotFound {
		t.Errorf("expected category %s, got %s", CategoryNotFound, got.Category())
	}
	if !HasCategory(wrapped, CategoryNotFound) {
		t.Error("expected HasCategory to see through wrapping")
	}
	if GetCategory(errors.New("plain")) != CategoryInternal {
		t.Error("expected plain errors to report internal category")
	}
}
