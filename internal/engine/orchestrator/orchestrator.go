// Package orchestrator drives an installed toolchain pairing against a
// shader crate and normalizes the result into a deterministic manifest.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"github.com/spvbuild/spvbuild/internal/ui"
	"go.trai.ch/zerr"
)

// Orchestrator runs shader builds.
type Orchestrator struct {
	exec      ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry
	out       *ui.Sink
}

// New creates an Orchestrator.
func New(exec ports.Executor, logger ports.Logger, telemetry ports.Telemetry, out *ui.Sink) *Orchestrator {
	return &Orchestrator{
		exec:      exec,
		logger:    logger,
		telemetry: telemetry,
		out:       out,
	}
}

// Build compiles the crate described by req, writes the sorted manifest
// into req.OutputDir and returns its records. On any failure no
// manifest.json is created; steps before the final write leave nothing a
// downstream consumer could mistake for valid output.
func (o *Orchestrator) Build(ctx context.Context, req domain.BuildRequest) ([]domain.Linkage, error) {
	ctx, vtx := o.telemetry.Record(ctx, "build "+req.ShaderCrate)
	links, err := o.build(ctx, req, vtx)
	vtx.Complete(err)
	return links, err
}

func (o *Orchestrator) build(ctx context.Context, req domain.BuildRequest, vtx ports.Vertex) ([]domain.Linkage, error) {
	req, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	if err := o.invoke(ctx, req, vtx); err != nil {
		return nil, err
	}

	modules, rawPath, err := o.readRawManifest(req)
	if err != nil {
		return nil, err
	}

	links, err := o.rewrite(req, modules)
	if err != nil {
		return nil, err
	}

	domain.SortLinkages(links)

	if err := o.writeManifest(req, links); err != nil {
		return nil, err
	}

	// The raw manifest has been consumed. Removing it keeps a stale
	// listing from being mistaken for fresh output by a later failed
	// build into the same directory.
	if err := os.Remove(rawPath); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to remove raw manifest"), "path", rawPath)
	}

	return links, nil
}

// validate creates the output directory and canonicalizes both it and
// the shader crate path, failing fast before any subprocess is spawned.
func (o *Orchestrator) validate(req domain.BuildRequest) (domain.BuildRequest, error) {
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return req, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", req.OutputDir)
	}
	outputDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return req, zerr.With(zerr.Wrap(err, "failed to resolve output directory"), "path", req.OutputDir)
	}
	req.OutputDir = outputDir

	crate, err := filepath.Abs(req.ShaderCrate)
	if err != nil {
		return req, zerr.With(zerr.Wrap(err, "failed to resolve shader crate path"), "path", req.ShaderCrate)
	}
	if _, err := os.Stat(crate); err != nil {
		cwd, _ := os.Getwd()
		return req, zerr.With(
			zerr.With(zerr.Wrap(err, domain.ErrShaderCrateNotFound.Error()), "shader_crate", crate),
			"working_dir", cwd,
		)
	}
	req.ShaderCrate = crate
	return req, nil
}

// invoke runs the helper with the serialized request as its single
// argument, streaming its diagnostics through the vertex writers.
func (o *Orchestrator) invoke(ctx context.Context, req domain.BuildRequest, vtx ports.Vertex) error {
	arg, err := json.MarshalIndent(req.HelperArgs(), "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to serialize helper arguments")
	}
	o.logger.Debug("helper args: " + string(arg))

	o.out.Printf("compiling shader crate %s...\n", req.ShaderCrate)

	cmd := domain.Command{
		Name:   req.Toolchain.HelperPath,
		Args:   []string{string(arg)},
		Stdout: vtx.Stdout(),
		Stderr: vtx.Stderr(),
	}
	if err := o.exec.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "shader_crate", req.ShaderCrate)
	}
	return nil
}

// readRawManifest loads the per-invocation manifest the helper must have
// produced. Its absence after a success exit is a pipeline defect and
// fails loudly.
func (o *Orchestrator) readRawManifest(req domain.BuildRequest) ([]domain.ShaderModule, string, error) {
	rawPath := filepath.Join(req.OutputDir, domain.RawManifestName)
	data, err := os.ReadFile(rawPath) //nolint:gosec // path derived from validated output dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", zerr.With(domain.ErrMissingRawManifest, "path", rawPath)
		}
		return nil, "", zerr.With(zerr.Wrap(err, "failed to read raw manifest"), "path", rawPath)
	}

	var modules []domain.ShaderModule
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to parse raw manifest"), "path", rawPath)
	}
	return modules, rawPath, nil
}

// rewrite copies every artifact flat into the output directory and
// re-expresses its path relative to the shader-crate root, the working
// context of the build scripts that consume the manifest.
func (o *Orchestrator) rewrite(req domain.BuildRequest, modules []domain.ShaderModule) ([]domain.Linkage, error) {
	links := make([]domain.Linkage, 0, len(modules))
	for _, m := range modules {
		name := filepath.Base(m.Path)
		if name == "." || name == string(filepath.Separator) {
			return nil, zerr.With(domain.ErrNoFileName, "path", m.Path)
		}
		dst := filepath.Join(req.OutputDir, name)
		if err := copyArtifact(m.Path, dst); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(req.ShaderCrate, dst)
		if err != nil {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(err, "artifact path has no common ancestor with shader crate"), "artifact", dst),
				"shader_crate", req.ShaderCrate,
			)
		}
		links = append(links, domain.Linkage{Entry: m.Entry, Path: filepath.ToSlash(rel)})
	}
	return links, nil
}

// writeManifest serializes the sorted records and publishes them as
// manifest.json by write-then-rename, so no reader ever sees a partial
// manifest.
func (o *Orchestrator) writeManifest(req domain.BuildRequest, links []domain.Linkage) error {
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to serialize manifest")
	}

	tmp, err := os.CreateTemp(req.OutputDir, ".manifest-")
	if err != nil {
		return zerr.Wrap(err, "failed to create manifest temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close manifest"), "path", tmp.Name())
	}

	manifestPath := filepath.Join(req.OutputDir, domain.ManifestName)
	if err := os.Rename(tmp.Name(), manifestPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish manifest"), "path", manifestPath)
	}

	o.logger.Info("wrote manifest to " + manifestPath)
	return nil
}

// copyArtifact copies src to dst, skipping the write when dst already
// holds identical bytes so repeated builds do not churn timestamps.
func copyArtifact(src, dst string) error {
	srcSum, err := fileDigest(src)
	if err != nil {
		return err
	}
	if dstSum, err := fileDigest(dst); err == nil && dstSum == srcSum {
		return nil
	}

	in, err := os.Open(src) //nolint:gosec // path comes from the raw manifest
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only file

	out, err := os.Create(dst) //nolint:gosec // path derived from validated output dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact copy"), "path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy artifact"), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close artifact copy"), "path", dst)
	}
	return nil
}

func fileDigest(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file"), "path", path)
	}
	return h.Sum64(), nil
}
