package shell_test

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/spvbuild/spvbuild/internal/adapters/logger"
	"github.com/spvbuild/spvbuild/internal/adapters/shell"
	"github.com/spvbuild/spvbuild/internal/core/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}
}

func TestExecutor_Run_Success(t *testing.T) {
	skipOnWindows(t)
	e := shell.NewExecutor(logger.New(false))

	var stdout bytes.Buffer
	err := e.Run(context.Background(), domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "echo hello"},
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}

func TestExecutor_Run_ExitCode(t *testing.T) {
	skipOnWindows(t)
	e := shell.NewExecutor(logger.New(false))

	err := e.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	if err == nil {
		t.Fatal("expected an error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "command failed") {
		t.Errorf("error %q does not mention the failed command", err)
	}
}

func TestExecutor_Run_WorkingDirAndEnv(t *testing.T) {
	skipOnWindows(t)
	e := shell.NewExecutor(logger.New(false))
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := e.Run(context.Background(), domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "pwd && printf '%s' \"$SPVBUILD_TEST_VAR\""},
		Dir:    dir,
		Env:    []string{"SPVBUILD_TEST_VAR=42"},
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, dir) {
		t.Errorf("output %q does not contain working dir %q", out, dir)
	}
	if !strings.HasSuffix(out, "42") {
		t.Errorf("output %q does not end with injected env value", out)
	}
}

func TestExecutor_Run_ContextCancel(t *testing.T) {
	skipOnWindows(t)
	e := shell.NewExecutor(logger.New(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx, domain.Command{
		Name: "sh",
		Args: []string{"-c", "sleep 30"},
	})
	if err == nil {
		t.Fatal("expected an error when the context is already cancelled")
	}
}

func TestExecutor_Run_ExecutableNotFound(t *testing.T) {
	e := shell.NewExecutor(logger.New(false))

	err := e.Run(context.Background(), domain.Command{
		Name: "spvbuild-definitely-not-a-real-binary",
	})
	if err == nil {
		t.Fatal("expected an error for a missing executable")
	}
}
