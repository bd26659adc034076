package installer

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// The helper crate source ships inside this binary and is written out
// into the staging directory, pinned to the requested backend descriptor
// and toolchain channel.
//
//go:embed helpersrc
var helperSource embed.FS

//go:embed targetspec.json.tmpl
var targetSpecTemplate string

// targetSpecEnvs are the output format identifiers a pairing supports
// out of the box. One spec file per identifier is written into the
// cache's target-spec directory at install time.
var targetSpecEnvs = []string{
	"spirv-unknown-vulkan1.0",
	"spirv-unknown-vulkan1.1",
	"spirv-unknown-vulkan1.1spv1.4",
	"spirv-unknown-vulkan1.2",
}

type sourceParams struct {
	// Dependency is the backend dependency entry exactly as it appears
	// in the generated manifest, e.g. `"0.9.0"` or
	// `{ git = "...", rev = "..." }`.
	Dependency string

	// Channel is the toolchain channel the crate is pinned to.
	Channel string
}

// writeHelperSource materializes the helper crate into dir.
func writeHelperSource(dir string, spec domain.ToolchainSpec) error {
	params := sourceParams{
		Dependency: dependencyEntry(spec.Descriptor),
		Channel:    spec.Channel,
	}

	files := map[string]string{
		"helpersrc/Cargo.toml.tmpl":          "Cargo.toml",
		"helpersrc/rust-toolchain.toml.tmpl": "rust-toolchain.toml",
		"helpersrc/src/main.rs":              filepath.Join("src", "main.rs"),
	}
	for src, dst := range files {
		data, err := helperSource.ReadFile(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "missing embedded helper source"), "file", src)
		}
		if strings.HasSuffix(src, ".tmpl") {
			data, err = renderTemplate(src, string(data), params)
			if err != nil {
				return err
			}
		}
		target := filepath.Join(dir, dst)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage helper source"), "path", target)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage helper source"), "path", target)
		}
	}
	return nil
}

// dependencyEntry renders the descriptor as a manifest dependency value.
// A bare registry version gets quoted; a source table passes through.
func dependencyEntry(descriptor string) string {
	trimmed := strings.TrimSpace(descriptor)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	return `"` + trimmed + `"`
}

// writeTargetSpecs publishes one target specification file per supported
// output format identifier. Existing files are rewritten in place; the
// content is deterministic so the result is identical either way.
func writeTargetSpecs(cache ports.CacheStore) error {
	dir, err := cache.TargetSpecDir()
	if err != nil {
		return err
	}
	for _, env := range targetSpecEnvs {
		data, err := renderTemplate("targetspec", targetSpecTemplate, struct{ Target, Env string }{
			Target: env,
			Env:    strings.TrimPrefix(env, "spirv-unknown-"),
		})
		if err != nil {
			return err
		}
		path := filepath.Join(dir, env+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write target spec"), "path", path)
		}
	}
	return nil
}

func renderTemplate(name, text string, data any) ([]byte, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid embedded template"), "template", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to render template"), "template", name)
	}
	return buf.Bytes(), nil
}
