// Package storage persists the HTML pages of a site.
package storage

import (
	"context"
	"path"
	"strings"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
)

// PageStore reads and writes site pages by name. Names are slash-separated
// paths relative to the site root and always end in ".html".
type PageStore interface {
	// Read returns the markup of the named page.
	// Returns a not_found ClassifiedError if the page doesn't exist.
	Read(ctx context.Context, name string) (string, error)

	// Write replaces the markup of the named page, creating it if needed.
	Write(ctx context.Context, name, content string) error

	// List returns every page name in lexical order.
	List(ctx context.Context) ([]string, error)

	// Lock reserves the named page for a single editor. The returned function
	// releases the reservation; calling it more than once is harmless.
	// Returns a locked ClassifiedError while another holder keeps the page.
	Lock(ctx context.Context, name string) (UnlockFunc, error)
}

// UnlockFunc releases a page lock.
type UnlockFunc func() error

// PageExt is the file extension of every stored page.
const PageExt = ".html"

// ValidateName rejects names that are not local, clean ".html" paths.
func ValidateName(name string) error {
	switch {
	case name == "":
		return invalidName(name, "page name cannot be empty")
	case strings.Contains(name, `\`) || strings.ContainsRune(name, 0):
		return invalidName(name, "page name contains illegal characters")
	case path.IsAbs(name) || path.Clean(name) != name || name == ".." || strings.HasPrefix(name, "../"):
		return invalidName(name, "page name must be a clean path inside the site root")
	case !strings.HasSuffix(name, PageExt) || path.Base(name) == PageExt:
		return invalidName(name, "page name must end in "+PageExt)
	}
	return nil
}

func invalidName(name, message string) error {
	return errors.ValidationError(message).WithContext("page", name).Build()
}

// IsNotFound reports whether err says the page does not exist.
func IsNotFound(err error) bool {
	return errors.HasCategory(err, errors.CategoryNotFound)
}

// IsLocked reports whether err says the page is held by another editor.
func IsLocked(err error) bool {
	return errors.HasCategory(err, errors.CategoryLocked)
}

func notFound(name string) error {
	return errors.NotFoundError("page not found").WithContext("page", name).Build()
}

func locked(name string) error {
	return errors.LockedError("page is locked by another editor").WithContext("page", name).Build()
}
