package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"flea-market/internal/pkg/clock"
	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/errs"
)

var (
	ErrEmptyContent = errors.New("cannot store empty content")
	ErrInvalidName  = errors.New("invalid file name")
	ErrNotFound     = errors.New("file not found")
)

const maxCollisionAttempts = 10000

// Store persists uploaded blobs in a single flat directory. Stored names are
// derived from a millisecond timestamp plus the sanitized original base name,
// so they are safe to use directly as URL path segments. Files are created
// with O_EXCL, which makes the collision check and the creation one atomic
// unit: when two uploads derive the same name in the same millisecond,
// exactly one wins it and the other retries with a counter suffix.
type Store struct {
	root string
	clk  clock.Clock
}

func New(cfg config.StorageConfig, clk clock.Clock) *Store {
	return &Store{
		root: cfg.Location,
		clk:  clk,
	}
}

// Init creates the storage directory if it does not exist.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return errs.Wrap(err, "failed to initialize blob storage")
	}
	return nil
}

// Save writes content under a collision-safe derived name and returns it.
// The original name only contributes its sanitized base and extension; two
// concurrent saves of identically named files always get distinct names.
func (s *Store) Save(content []byte, originalName string) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyContent
	}
	if strings.Contains(originalName, "..") {
		return "", ErrInvalidName
	}

	base, ext := splitName(originalName)
	stamp := s.clk.Now().UnixMilli()

	for attempt := 0; attempt < maxCollisionAttempts; attempt++ {
		name := derivedName(stamp, base, ext, attempt)
		f, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return "", errs.Wrapf(err, "failed to store file %q", name)
		}

		if _, err := f.Write(content); err != nil {
			f.Close()
			_ = os.Remove(filepath.Join(s.root, name))
			return "", errs.Wrapf(err, "failed to write file %q", name)
		}
		if err := f.Close(); err != nil {
			return "", errs.Wrapf(err, "failed to close file %q", name)
		}
		return name, nil
	}

	return "", errs.New("exhausted collision suffixes for stored name")
}

// Load resolves a stored name back to its bytes.
func (s *Store) Load(storedName string) ([]byte, error) {
	if err := validateStoredName(storedName); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(s.root, storedName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errs.Wrapf(err, "failed to read file %q", storedName)
	}
	return content, nil
}

// Delete removes the file if present; deleting an absent file is a no-op.
func (s *Store) Delete(storedName string) error {
	if err := validateStoredName(storedName); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, storedName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.Wrapf(err, "failed to delete file %q", storedName)
	}
	return nil
}

// PurgeAll removes every stored file. Only meant for controlled
// initialization: it is irreversible and not scoped per owner.
func (s *Store) PurgeAll() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errs.Wrap(err, "failed to list stored files")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err != nil {
			return errs.Wrapf(err, "failed to purge file %q", entry.Name())
		}
	}
	return nil
}

// validateStoredName rejects path-traversal input before any filesystem
// operation is attempted.
func validateStoredName(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

func derivedName(stamp int64, base, ext string, attempt int) string {
	if attempt == 0 {
		return fmt.Sprintf("%d_%s%s", stamp, base, ext)
	}
	return fmt.Sprintf("%d_%s_%d%s", stamp, base, attempt, ext)
}

func splitName(originalName string) (base, ext string) {
	// Browsers may send a full client-side path; only the last segment counts.
	cleaned := strings.ReplaceAll(originalName, `\`, `/`)
	cleaned = filepath.Base(cleaned)

	ext = filepath.Ext(cleaned)
	base = strings.TrimSuffix(cleaned, ext)
	return sanitizeBase(base), sanitizeExt(ext)
}

func sanitizeBase(base string) string {
	out := strings.Trim(replaceUnsafe(base), "-.")
	if out == "" {
		return "file"
	}
	return out
}

// sanitizeExt applies the same character policy as sanitizeBase. An
// extension that sanitizes to nothing is dropped entirely.
func sanitizeExt(ext string) string {
	out := strings.Trim(replaceUnsafe(strings.TrimPrefix(ext, ".")), "-.")
	if out == "" {
		return ""
	}
	return "." + out
}

func replaceUnsafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
