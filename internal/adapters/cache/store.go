// Package cache implements the on-disk store for installed toolchain
// pairings and target specification files.
package cache

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvCacheDir overrides the cache root when set. Tests point it at an
// isolated directory so runs never interfere with the user's cache.
const EnvCacheDir = "SPVBUILD_CACHE_DIR"

const targetSpecSubdir = "target-specs"

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore rooted at an OS-appropriate cache
// directory.
type Store struct {
	// rootOverride takes precedence over the environment and the OS
	// default. Set from the settings file.
	rootOverride string
}

// NewStore creates a Store. rootOverride may be empty.
func NewStore(rootOverride string) *Store {
	return &Store{rootOverride: rootOverride}
}

// Root returns the cache root, creating it if missing.
func (s *Store) Root() (string, error) {
	dir, err := s.rootPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create cache root"), "path", dir)
	}
	return dir, nil
}

func (s *Store) rootPath() (string, error) {
	if s.rootOverride != "" {
		return s.rootOverride, nil
	}
	if env := os.Getenv(EnvCacheDir); env != "" {
		return env, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "could not resolve the user cache directory")
	}
	return filepath.Join(base, "spvbuild"), nil
}

// EntryDir returns the installation directory for a signature.
func (s *Store) EntryDir(sig domain.Signature) (string, error) {
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, sig.String()), nil
}

// Installed reports whether both artifacts exist under EntryDir.
func (s *Store) Installed(sig domain.Signature) (bool, error) {
	dir, err := s.EntryDir(sig)
	if err != nil {
		return false, err
	}
	return entryComplete(dir), nil
}

// Toolchain returns the artifact paths for a signature. It does not
// verify the entry is complete; callers check Installed first.
func (s *Store) Toolchain(sig domain.Signature) (domain.Toolchain, error) {
	dir, err := s.EntryDir(sig)
	if err != nil {
		return domain.Toolchain{}, err
	}
	return domain.Toolchain{
		BackendPath: filepath.Join(dir, domain.BackendFilename()),
		HelperPath:  filepath.Join(dir, domain.HelperFilename()),
	}, nil
}

// TargetSpecDir returns the target-spec subdirectory, creating it on
// demand.
func (s *Store) TargetSpecDir() (string, error) {
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, targetSpecSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create target-spec directory"), "path", dir)
	}
	return dir, nil
}

// InstalledSignatures lists every complete entry under the root, sorted
// lexically. Partial entries and unrelated files are skipped.
func (s *Store) InstalledSignatures() ([]domain.Signature, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache root"), "path", root)
	}

	var sigs []domain.Signature
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == targetSpecSubdir {
			continue
		}
		// Signature sanitization replaces '.', so any name containing one
		// is in-flight installer state (.stage-*, .publish-*, <sig>.old),
		// not a published entry.
		if strings.Contains(entry.Name(), ".") {
			continue
		}
		if entryComplete(filepath.Join(root, entry.Name())) {
			sigs = append(sigs, domain.Signature(entry.Name()))
		}
	}
	slices.Sort(sigs)
	return sigs, nil
}

func entryComplete(dir string) bool {
	return fileExists(filepath.Join(dir, domain.BackendFilename())) &&
		fileExists(filepath.Join(dir, domain.HelperFilename()))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
