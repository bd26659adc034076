package domain_test

import (
	"strings"
	"testing"

	"github.com/spvbuild/spvbuild/internal/core/domain"
)

func TestComputeSignature_Sanitization(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		channel    string
		want       string
	}{
		{
			name:       "registry version",
			descriptor: "0.9.0",
			channel:    "nightly-2024-04-24",
			want:       "0_9_0+nightly-2024-04-24",
		},
		{
			name:       "git source table",
			descriptor: `{ git = "https://github.com/Rust-GPU/rust-gpu", rev = "86fc480" }`,
			channel:    "nightly-2024-04-24",
			want:       "git_https___github_com_Rust-GPU_rust-gpu,rev_86fc480+nightly-2024-04-24",
		},
		{
			name:       "local path with separators",
			descriptor: `/home/user/backends/dev`,
			channel:    "stable",
			want:       "_home_user_backends_dev+stable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeSignature(tt.descriptor, tt.channel)
			if got.String() != tt.want {
				t.Errorf("ComputeSignature(%q, %q) = %q, want %q", tt.descriptor, tt.channel, got, tt.want)
			}
		})
	}
}

func TestComputeSignature_NoForbiddenCharacters(t *testing.T) {
	sig := domain.ComputeSignature(`{ git = "a/b\c.d:e@f=g" }`, "chan 'x'\n")
	for _, forbidden := range []string{"/", `\`, ".", ":", "@", "=", "{", "}", " ", "\n", `"`, "'"} {
		if strings.Contains(sig.String(), forbidden) {
			t.Errorf("signature %q contains forbidden character %q", sig, forbidden)
		}
	}
}

func TestComputeSignature_Deterministic(t *testing.T) {
	a := domain.ComputeSignature("0.9.0", "nightly-2024-04-24")
	b := domain.ComputeSignature("0.9.0", "nightly-2024-04-24")
	if a != b {
		t.Errorf("same inputs produced different signatures: %q vs %q", a, b)
	}
}

func TestComputeSignature_DistinctInputsDiffer(t *testing.T) {
	pairs := [][2]string{
		{"0.9.0", "nightly-2024-04-24"},
		{"0.9.0", "nightly-2024-05-24"},
		{"0.8.0", "nightly-2024-04-24"},
		{`{ git = "https://example.com/a", rev = "1" }`, "nightly-2024-04-24"},
		{`{ git = "https://example.com/a", rev = "2" }`, "nightly-2024-04-24"},
	}
	seen := make(map[domain.Signature][2]string)
	for _, p := range pairs {
		sig := domain.ComputeSignature(p[0], p[1])
		if prev, ok := seen[sig]; ok {
			t.Errorf("signature collision: %v and %v both map to %q", prev, p, sig)
		}
		seen[sig] = p
	}
}

func TestToolchainSpec_Signature(t *testing.T) {
	spec := domain.ToolchainSpec{Descriptor: "0.9.0", Channel: "stable"}
	if spec.Signature() != domain.ComputeSignature("0.9.0", "stable") {
		t.Error("ToolchainSpec.Signature does not match ComputeSignature")
	}
}
