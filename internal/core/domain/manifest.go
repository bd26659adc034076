package domain

import (
	"cmp"
	"slices"
)

// RawManifestName is the per-invocation manifest the helper writes into
// the output directory. It is consumed once and then deleted.
const RawManifestName = "spirv-manifest.json"

// ManifestName is the final, durable manifest of a build.
const ManifestName = "manifest.json"

// ShaderModule is one record of the raw manifest: an entry point mapped
// to the absolute path of its compiled artifact.
type ShaderModule struct {
	Entry string `json:"entry"`
	Path  string `json:"path"`
}

// Linkage is one record of the final manifest. Path is relative to the
// shader-crate root, which is the working context of the downstream
// build scripts that consume the manifest.
type Linkage struct {
	Entry string `json:"entry"`
	Path  string `json:"path"`
}

// SortLinkages orders records by entry name, then path. The order is a
// determinism contract: repeated builds of identical inputs must produce
// byte-identical manifests.
func SortLinkages(links []Linkage) {
	slices.SortFunc(links, func(a, b Linkage) int {
		if c := cmp.Compare(a.Entry, b.Entry); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
}
