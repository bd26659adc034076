package domain_test

import (
	"testing"

	"github.com/spvbuild/spvbuild/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortLinkages(t *testing.T) {
	links := []domain.Linkage{
		{Entry: "main_fs", Path: "out/b.spv"},
		{Entry: "main_vs", Path: "out/a.spv"},
		{Entry: "main_fs", Path: "out/a.spv"},
	}

	domain.SortLinkages(links)

	assert.Equal(t, []domain.Linkage{
		{Entry: "main_fs", Path: "out/a.spv"},
		{Entry: "main_fs", Path: "out/b.spv"},
		{Entry: "main_vs", Path: "out/a.spv"},
	}, links)
}

func TestBuildRequest_HelperArgs(t *testing.T) {
	req := domain.BuildRequest{
		Toolchain: domain.Toolchain{
			BackendPath: "/cache/sig/backend.so",
			HelperPath:  "/cache/sig/helper",
		},
		ShaderCrate:    "/crates/sky",
		ShaderTarget:   "spirv-unknown-vulkan1.2",
		TargetSpecPath: "/cache/target-specs/spirv-unknown-vulkan1.2.json",
		OutputDir:      "/crates/sky/out",
	}

	args := req.HelperArgs()

	assert.Equal(t, "/cache/sig/backend.so", args.DylibPath)
	assert.Equal(t, "/crates/sky", args.ShaderCrate)
	assert.Equal(t, "spirv-unknown-vulkan1.2", args.ShaderTarget)
	assert.NotNil(t, args.Features, "features must serialize as [] rather than null")
}
