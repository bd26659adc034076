// Package app implements the application layer for spvbuild.
package app

import (
	"context"
	"path/filepath"

	"github.com/spvbuild/spvbuild/internal/adapters/config"
	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"github.com/spvbuild/spvbuild/internal/engine/orchestrator"
	"github.com/spvbuild/spvbuild/internal/ui"
	"go.trai.ch/zerr"
)

// App wires the installer and the build orchestrator behind the CLI
// commands.
type App struct {
	installer ports.Installer
	orch      *orchestrator.Orchestrator
	cache     ports.CacheStore
	settings  config.Settings
	out       *ui.Sink
}

// New creates a new App instance.
func New(installer ports.Installer, orch *orchestrator.Orchestrator, cache ports.CacheStore, settings config.Settings, out *ui.Sink) *App {
	return &App{
		installer: installer,
		orch:      orch,
		cache:     cache,
		settings:  settings,
		out:       out,
	}
}

// Install ensures the requested toolchain pairing exists in the cache
// and reports where its artifacts live.
func (a *App) Install(ctx context.Context, spec domain.ToolchainSpec) (domain.Toolchain, error) {
	spec = a.applySpecDefaults(spec)
	tc, err := a.installer.EnsureInstalled(ctx, spec)
	if err != nil {
		return domain.Toolchain{}, err
	}
	a.out.Printf("backend: %s\nhelper:  %s\n", tc.BackendPath, tc.HelperPath)
	return tc, nil
}

// Build installs the pairing if needed, then compiles the shader crate.
func (a *App) Build(ctx context.Context, spec domain.ToolchainSpec, params config.BuildParams) error {
	spec = a.applySpecDefaults(spec)
	tc, err := a.installer.EnsureInstalled(ctx, spec)
	if err != nil {
		return err
	}

	if params.ShaderTarget == "" {
		params.ShaderTarget = a.defaultShaderTarget()
	}
	specDir, err := a.cache.TargetSpecDir()
	if err != nil {
		return err
	}

	req := domain.BuildRequest{
		Toolchain:         tc,
		ShaderCrate:       params.ShaderCrate,
		ShaderTarget:      params.ShaderTarget,
		TargetSpecPath:    filepath.Join(specDir, params.ShaderTarget+".json"),
		NoDefaultFeatures: params.NoDefaultFeatures,
		Features:          params.Features,
		OutputDir:         params.OutputDir,
	}
	if _, err := a.orch.Build(ctx, req); err != nil {
		return err
	}
	return nil
}

// BuildBatch runs the install and build described by a TOML batch file.
func (a *App) BuildBatch(ctx context.Context, path string) error {
	batch, err := config.LoadBatch(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load batch configuration")
	}
	return a.Build(ctx, batch.Spec, batch.Build)
}

// Show prints the cache root and every installed signature.
func (a *App) Show(_ context.Context) error {
	root, err := a.cache.Root()
	if err != nil {
		return err
	}
	sigs, err := a.cache.InstalledSignatures()
	if err != nil {
		return err
	}

	a.out.Printf("cache directory: %s\n", root)
	a.out.Printf("installed toolchain pairings:\n")
	for _, sig := range sigs {
		a.out.Printf("  %s\n", sig)
	}
	return nil
}

// applySpecDefaults fills empty descriptor and channel fields from the
// settings file, then from the built-in defaults.
func (a *App) applySpecDefaults(spec domain.ToolchainSpec) domain.ToolchainSpec {
	if spec.Descriptor == "" {
		spec.Descriptor = a.settings.Backend
	}
	if spec.Descriptor == "" {
		spec.Descriptor = domain.DefaultBackend
	}
	if spec.Channel == "" {
		spec.Channel = a.settings.Toolchain
	}
	if spec.Channel == "" {
		spec.Channel = domain.DefaultChannel
	}
	return spec
}

func (a *App) defaultShaderTarget() string {
	if a.settings.ShaderTarget != "" {
		return a.settings.ShaderTarget
	}
	return domain.DefaultShaderTarget
}
