// Package installer materializes versioned toolchain pairings into the
// cache.
//
// A pairing is the codegen backend dylib plus the helper executable that
// drives it. Both are compiled from a generated helper crate pinned to
// the requested backend descriptor and toolchain channel, then published
// into the cache entry for that signature by atomic rename. A reader
// therefore never observes a half-written entry.
package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// BuildTool is the host build tool invoked to compile the pairing.
const BuildTool = "cargo"

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer.
type Installer struct {
	cache     ports.CacheStore
	exec      ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry

	// group collapses concurrent in-process installs of one signature
	// into a single compile.
	group singleflight.Group
}

// New creates an Installer.
func New(cache ports.CacheStore, exec ports.Executor, logger ports.Logger, telemetry ports.Telemetry) *Installer {
	return &Installer{
		cache:     cache,
		exec:      exec,
		logger:    logger,
		telemetry: telemetry,
	}
}

// EnsureInstalled returns the artifact paths for the requested pairing,
// compiling and publishing it first when needed. Calls for an already
// installed signature return without spawning any subprocess.
func (i *Installer) EnsureInstalled(ctx context.Context, spec domain.ToolchainSpec) (domain.Toolchain, error) {
	sig := spec.Signature()

	v, err, _ := i.group.Do(sig.String(), func() (any, error) {
		return i.ensure(ctx, spec, sig)
	})
	if err != nil {
		return domain.Toolchain{}, err
	}
	return v.(domain.Toolchain), nil
}

func (i *Installer) ensure(ctx context.Context, spec domain.ToolchainSpec, sig domain.Signature) (domain.Toolchain, error) {
	ctx, vtx := i.telemetry.Record(ctx, "install "+sig.String())

	if !spec.Force {
		installed, err := i.cache.Installed(sig)
		if err != nil {
			vtx.Complete(err)
			return domain.Toolchain{}, err
		}
		if installed {
			vtx.Cached()
			return i.cache.Toolchain(sig)
		}
	}

	tc, err := i.install(ctx, spec, sig, vtx)
	vtx.Complete(err)
	return tc, err
}

func (i *Installer) install(ctx context.Context, spec domain.ToolchainSpec, sig domain.Signature, vtx ports.Vertex) (domain.Toolchain, error) {
	root, err := i.cache.Root()
	if err != nil {
		return domain.Toolchain{}, err
	}

	// Advisory lock so two tool invocations installing the same
	// signature serialize instead of clobbering each other.
	mu := lockedfile.MutexAt(filepath.Join(root, sig.String()+".lock"))
	unlock, err := mu.Lock()
	if err != nil {
		return domain.Toolchain{}, zerr.With(zerr.Wrap(err, "failed to lock cache entry"), "signature", sig.String())
	}
	defer unlock()

	// Another process may have finished the install while we waited.
	if !spec.Force {
		installed, err := i.cache.Installed(sig)
		if err != nil {
			return domain.Toolchain{}, err
		}
		if installed {
			return i.cache.Toolchain(sig)
		}
	}

	stage, err := os.MkdirTemp(root, ".stage-")
	if err != nil {
		return domain.Toolchain{}, zerr.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(stage) //nolint:errcheck // best effort cleanup

	if err := writeHelperSource(stage, spec); err != nil {
		return domain.Toolchain{}, err
	}

	i.logger.Info("compiling toolchain pairing for " + sig.String())
	cmd := domain.Command{
		Name:   BuildTool,
		Args:   []string{"+" + spec.Channel, "build", "--release"},
		Dir:    stage,
		Stdout: vtx.Stdout(),
		Stderr: vtx.Stderr(),
	}
	if err := i.exec.Run(ctx, cmd); err != nil {
		return domain.Toolchain{}, zerr.With(
			zerr.With(
				zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "descriptor", spec.Descriptor),
				"channel", spec.Channel,
			),
			"staging_dir", stage,
		)
	}

	if err := i.publish(root, stage, sig); err != nil {
		return domain.Toolchain{}, err
	}

	if err := writeTargetSpecs(i.cache); err != nil {
		return domain.Toolchain{}, err
	}

	return i.cache.Toolchain(sig)
}

// publish moves the two compiled artifacts into the cache entry for sig.
// The artifacts are first collected into a fresh sibling directory which
// then replaces the entry by rename, so the entry is complete the moment
// it exists. A pre-existing entry (forced rebuild) stays untouched until
// the new one is known-good.
func (i *Installer) publish(root, stage string, sig domain.Signature) error {
	releaseDir := filepath.Join(stage, "target", "release")

	pending, err := os.MkdirTemp(root, ".publish-")
	if err != nil {
		return zerr.Wrap(err, "failed to create publish directory")
	}
	defer os.RemoveAll(pending) //nolint:errcheck // no-op after successful rename

	for _, name := range []string{domain.BackendFilename(), domain.HelperFilename()} {
		src, err := findArtifact(releaseDir, name)
		if err != nil {
			return err
		}
		if err := copyFile(src, filepath.Join(pending, name)); err != nil {
			return err
		}
	}
	if err := os.Chmod(filepath.Join(pending, domain.HelperFilename()), 0o755); err != nil {
		return zerr.Wrap(err, "failed to mark helper executable")
	}

	entryDir, err := i.cache.EntryDir(sig)
	if err != nil {
		return err
	}
	return swapDir(pending, entryDir)
}

// findArtifact locates a build product in the release directory, falling
// back to deps/ where the build tool places library artifacts on some
// platforms.
func findArtifact(releaseDir, name string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(releaseDir, name),
		filepath.Join(releaseDir, "deps", name),
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", zerr.With(
		zerr.With(zerr.New("compiled artifact not found"), "artifact", name),
		"release_dir", releaseDir,
	)
}

// swapDir renames src into place at dst. An existing dst is moved aside
// first and restored if the swap fails, so a forced rebuild never leaves
// the entry in a worse state than before.
func swapDir(src, dst string) error {
	aside := dst + ".old"
	hadOld := false
	if _, err := os.Stat(dst); err == nil {
		if err := os.RemoveAll(aside); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clear previous entry"), "path", aside)
		}
		if err := os.Rename(dst, aside); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to move old entry aside"), "path", dst)
		}
		hadOld = true
	}
	if err := os.Rename(src, dst); err != nil {
		if hadOld {
			_ = os.Rename(aside, dst)
		}
		return zerr.With(zerr.Wrap(err, "failed to publish cache entry"), "path", dst)
	}
	if hadOld {
		if err := os.RemoveAll(aside); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove old entry"), "path", aside)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) //nolint:gosec // paths derived from the staging dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read artifact"), "path", src)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", dst)
	}
	return nil
}
