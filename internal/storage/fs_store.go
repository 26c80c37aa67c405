package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecake/internal/retry"
)

// lockExt is appended to a page path to form its lock file.
const lockExt = ".lock"

// FSStore is a filesystem implementation of PageStore rooted at a site directory:
//
//	site/
//	  index.html
//	  about/team.html
//	  about/team.html.lock   (present while an editor holds the page)
//
// Writes go through a temporary file and a rename so readers never observe a
// partially written page. Hidden directories are not listed.
type FSStore struct {
	root       string
	lockPolicy retry.Policy
	mu         sync.RWMutex
}

// FSOption configures an FSStore.
type FSOption func(*FSStore)

// WithLockPolicy sets the backoff used while waiting for a held lock.
func WithLockPolicy(p retry.Policy) FSOption {
	return func(s *FSStore) { s.lockPolicy = p }
}

// NewFSStore opens the site directory at root.
func NewFSStore(root string, opts ...FSOption) (*FSStore, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("site root not found").WithContext("path", root).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "stat site root").WithContext("path", root).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("site root is not a directory").WithContext("path", root).Build()
	}
	s := &FSStore{root: root, lockPolicy: retry.DefaultPolicy()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.lockPolicy.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid lock policy").Build()
	}
	return s, nil
}

// Root returns the site directory.
func (s *FSStore) Root() string { return s.root }

// Read returns the markup of the named page.
func (s *FSStore) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// #nosec G304 - name is validated to stay inside root
	data, err := os.ReadFile(s.pagePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(name)
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "read page").WithContext("page", name).Build()
	}
	return string(data), nil
}

// Write atomically replaces the markup of the named page.
func (s *FSStore) Write(ctx context.Context, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.pagePath(name)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create page directory").WithContext("page", name).Build()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create temporary page").WithContext("page", name).Build()
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "write page").WithContext("page", name).Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "close page").WithContext("page", name).Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "chmod page").WithContext("page", name).Build()
	}
	if err := os.Rename(tmpName, target); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "replace page").WithContext("page", name).Build()
	}
	return nil
}

// List returns every page under the root in lexical order.
func (s *FSStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), PageExt) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "list pages").WithContext("path", s.root).Build()
	}

	slices.Sort(names)
	return names, nil
}

// Lock creates the page's lock file exclusively. While the lock is held by
// someone else, Lock backs off and retries until ctx is done if ctx carries a
// deadline and fails immediately otherwise.
func (s *FSStore) Lock(ctx context.Context, name string) (UnlockFunc, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	lockPath := s.pagePath(name) + lockExt
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "create lock directory").WithContext("page", name).Build()
	}

	_, waitable := ctx.Deadline()
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		unlock, err := s.tryLock(name, lockPath)
		if err == nil || !IsLocked(err) || !waitable {
			return unlock, err
		}

		if werr := s.lockPolicy.Wait(ctx, attempt); werr != nil {
			return nil, locked(name)
		}
	}
}

func (s *FSStore) tryLock(name, lockPath string) (UnlockFunc, error) {
	// #nosec G304 - lockPath is derived from a validated page name
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, locked(name)
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "create lock file").WithContext("page", name).Build()
	}

	token := uuid.NewString()
	_, werr := f.WriteString(token + "\n")
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(lockPath)
		return nil, errors.FileSystemError("write lock file").WithContext("page", name).Build()
	}

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			if rerr := os.Remove(lockPath); rerr != nil && !os.IsNotExist(rerr) {
				err = errors.WrapError(rerr, errors.CategoryFileSystem, "remove lock file").WithContext("page", name).Build()
			}
		})
		return err
	}, nil
}

// pagePath maps a validated page name onto the filesystem.
func (s *FSStore) pagePath(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}
