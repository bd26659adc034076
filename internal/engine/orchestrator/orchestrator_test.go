package orchestrator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spvbuild/spvbuild/internal/adapters/logger"
	"github.com/spvbuild/spvbuild/internal/adapters/telemetry"
	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/spvbuild/spvbuild/internal/core/ports/mocks"
	"github.com/spvbuild/spvbuild/internal/engine/orchestrator"
	"github.com/spvbuild/spvbuild/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newOrchestrator(exec *mocks.MockExecutor) *orchestrator.Orchestrator {
	return orchestrator.New(exec, logger.New(false), telemetry.NewNoOp(), ui.New(&bytes.Buffer{}))
}

func testRequest(t *testing.T) (domain.BuildRequest, string) {
	t.Helper()
	crate := t.TempDir()
	return domain.BuildRequest{
		Toolchain: domain.Toolchain{
			BackendPath: "/cache/sig/backend.so",
			HelperPath:  "/cache/sig/spirv-builder-cli",
		},
		ShaderCrate:    crate,
		ShaderTarget:   "spirv-unknown-vulkan1.2",
		TargetSpecPath: "/cache/target-specs/spirv-unknown-vulkan1.2.json",
		OutputDir:      filepath.Join(crate, "out"),
	}, crate
}

// helperFake simulates the helper subprocess: it decodes the JSON
// argument, writes artifact files and the raw manifest into the output
// directory named by that argument.
func helperFake(t *testing.T, entries map[string]string) func(context.Context, domain.Command) error {
	t.Helper()
	return func(_ context.Context, cmd domain.Command) error {
		require.Len(t, cmd.Args, 1, "helper protocol is a single JSON argument")

		var args domain.HelperArgs
		require.NoError(t, json.Unmarshal([]byte(cmd.Args[0]), &args))

		artifactDir := filepath.Join(args.OutputDir, "raw")
		require.NoError(t, os.MkdirAll(artifactDir, 0o755))

		var modules []domain.ShaderModule
		for entry, file := range entries {
			path := filepath.Join(artifactDir, file)
			require.NoError(t, os.WriteFile(path, []byte("spirv:"+entry), 0o644))
			modules = append(modules, domain.ShaderModule{Entry: entry, Path: path})
		}

		data, err := json.Marshal(modules)
		require.NoError(t, err)
		return os.WriteFile(filepath.Join(args.OutputDir, domain.RawManifestName), data, 0o644)
	}
}

func TestBuild_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, crate := testRequest(t)

	exec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		helperFake(t, map[string]string{"main_vs": "a.spv", "main_fs": "b.spv"}),
	).Times(1)

	links, err := o.Build(context.Background(), req)
	require.NoError(t, err)

	// Sorted by entry name, paths relative to the shader-crate root.
	require.Len(t, links, 2)
	assert.Equal(t, domain.Linkage{Entry: "main_fs", Path: "out/b.spv"}, links[0])
	assert.Equal(t, domain.Linkage{Entry: "main_vs", Path: "out/a.spv"}, links[1])

	// Artifacts are copied flat into the output directory.
	copied, err := os.ReadFile(filepath.Join(crate, "out", "a.spv"))
	require.NoError(t, err)
	assert.Equal(t, "spirv:main_vs", string(copied))

	// The final manifest matches the returned records.
	data, err := os.ReadFile(filepath.Join(crate, "out", "manifest.json"))
	require.NoError(t, err)
	var fromDisk []domain.Linkage
	require.NoError(t, json.Unmarshal(data, &fromDisk))
	assert.Equal(t, links, fromDisk)

	// The raw manifest was consumed and removed.
	_, err = os.Stat(filepath.Join(crate, "out", domain.RawManifestName))
	assert.True(t, os.IsNotExist(err))
}

func TestBuild_HelperProtocol(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, _ := testRequest(t)
	req.NoDefaultFeatures = true
	req.Features = []string{"clouds"}

	var got domain.HelperArgs
	exec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, cmd domain.Command) error {
			require.NoError(t, json.Unmarshal([]byte(cmd.Args[0]), &got))
			assert.Equal(t, req.Toolchain.HelperPath, cmd.Name)
			return helperFake(t, map[string]string{"main": "m.spv"})(ctx, cmd)
		},
	).Times(1)

	_, err := o.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/cache/sig/backend.so", got.DylibPath)
	assert.Equal(t, req.ShaderTarget, got.ShaderTarget)
	assert.Equal(t, req.TargetSpecPath, got.PathToTargetSpec)
	assert.True(t, got.NoDefaultFeatures)
	assert.Equal(t, []string{"clouds"}, got.Features)
}

func TestBuild_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, crate := testRequest(t)

	exec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		helperFake(t, map[string]string{"main_vs": "a.spv", "main_fs": "b.spv"}),
	).Times(2)

	_, err := o.Build(context.Background(), req)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(crate, "out", "manifest.json"))
	require.NoError(t, err)

	_, err = o.Build(context.Background(), req)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(crate, "out", "manifest.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged inputs must produce byte-identical manifests")
}

func TestBuild_MissingCrateFailsBeforeSpawn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT: any Run call fails the test.
	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)

	req, _ := testRequest(t)
	req.ShaderCrate = filepath.Join(req.ShaderCrate, "does-not-exist")

	_, err := o.Build(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shader crate does not exist")
}

func TestBuild_HelperFailureLeavesNoManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, crate := testRequest(t)

	exec.EXPECT().Run(gomock.Any(), gomock.Any()).Return(fakeExitError{}).Times(1)

	_, err := o.Build(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shader build failed")

	_, err = os.Stat(filepath.Join(crate, "out", "manifest.json"))
	assert.True(t, os.IsNotExist(err), "failed build must not leave a manifest behind")
}

func TestBuild_MissingRawManifestIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, crate := testRequest(t)

	// Helper claims success but writes nothing.
	exec.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := o.Build(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no raw manifest")

	_, err = os.Stat(filepath.Join(crate, "out", "manifest.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuild_UnparseableRawManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)
	req, _ := testRequest(t)

	exec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			var args domain.HelperArgs
			require.NoError(t, json.Unmarshal([]byte(cmd.Args[0]), &args))
			return os.WriteFile(filepath.Join(args.OutputDir, domain.RawManifestName), []byte("not json"), 0o644)
		},
	).Times(1)

	_, err := o.Build(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse raw manifest")
}

func TestBuild_SingleEntryAtCrateRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	o := newOrchestrator(exec)

	// Output directory is the crate root itself, so the manifest path is
	// just the artifact's file name.
	crate := t.TempDir()
	req := domain.BuildRequest{
		Toolchain:    domain.Toolchain{HelperPath: "/cache/sig/helper"},
		ShaderCrate:  crate,
		ShaderTarget: "spirv-unknown-vulkan1.2",
		OutputDir:    crate,
	}

	exec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		helperFake(t, map[string]string{"main": "out0.spv"}),
	).Times(1)

	links, err := o.Build(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, links, 1)
	assert.Equal(t, domain.Linkage{Entry: "main", Path: "out0.spv"}, links[0])

	copied, err := os.ReadFile(filepath.Join(crate, "out0.spv"))
	require.NoError(t, err)
	assert.Equal(t, "spirv:main", string(copied))
}

type fakeExitError struct{}

func (fakeExitError) Error() string { return "exit status 1" }
