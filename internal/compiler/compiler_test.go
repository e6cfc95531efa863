package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// fakeCompiler writes a shell script that mimics the MetaEditor CLI: it
// requires /compile:, honors /out:, and exits with the given code.
func fakeCompiler(t *testing.T, exitCode int) string {
	t.Helper()
	script := `#!/bin/sh
src=""
out=""
for a in "$@"; do
  case "$a" in
    /compile:*) src="${a#/compile:}" ;;
    /out:*) out="${a#/out:}" ;;
  esac
done
if [ -z "$src" ]; then
  echo "Missing /compile flag" >&2
  exit 2
fi
if [ -z "$out" ]; then
  out="${src%.*}.ex5"
fi
echo "compiled $src" > "$out"
echo "Compilation succeeded for $src"
exit ` + strconv.Itoa(exitCode) + "\n"

	path := filepath.Join(t.TempDir(), "fake_compiler.sh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write fake compiler: %v", err)
	}
	return path
}

func writeSource(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("//+--- script ---+\n"), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	return path
}

func TestBuildCommand_WineAndExtraArgs(t *testing.T) {
	cfg := Config{
		CompilerPath: "/opt/MetaTrader/MetaEditor64.exe",
		Wine:         true,
		ExtraArgs:    []string{"/q"},
	}
	command := cfg.BuildCommand("/tmp/script.mq5", "/tmp/script.ex5")

	if command[0] != "wine" {
		t.Errorf("Expected wine prefix, got %s", command[0])
	}
	joined := strings.Join(command, " ")
	if !strings.Contains(joined, "/compile:/tmp/script.mq5") {
		t.Errorf("Missing /compile switch: %s", joined)
	}
	if !strings.Contains(joined, "/out:/tmp/script.ex5") {
		t.Errorf("Missing /out switch: %s", joined)
	}
	if command[len(command)-1] != "/q" {
		t.Errorf("Extra args should come last, got %s", command[len(command)-1])
	}
}

func TestDefaultOutputPath(t *testing.T) {
	if got := DefaultOutputPath("/tmp/ea.mq4"); got != "/tmp/ea.ex4" {
		t.Errorf("Expected /tmp/ea.ex4, got %s", got)
	}
	if got := DefaultOutputPath("/tmp/ea.mq5"); got != "/tmp/ea.ex5" {
		t.Errorf("Expected /tmp/ea.ex5, got %s", got)
	}
}

func TestCompile_Succeeds(t *testing.T) {
	source := writeSource(t, "sample.mq5")

	result, err := Compile(context.Background(), Config{
		CompilerPath: fakeCompiler(t, 0),
		ExtraArgs:    []string{"/q"},
		Timeout:      10 * time.Second,
	}, source, "")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !result.Succeeded() {
		t.Errorf("Expected success, exit code %d, stderr: %s", result.ExitCode, result.Stderr)
	}
	if result.OutputPath != strings.TrimSuffix(source, ".mq5")+".ex5" {
		t.Errorf("Unexpected output path %s", result.OutputPath)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Errorf("Compiled artifact missing: %v", err)
	}
	if !strings.Contains(result.Stdout, "sample.mq5") {
		t.Errorf("Expected source name in stdout, got %q", result.Stdout)
	}
	if !strings.Contains(strings.Join(result.Command, " "), "/q") {
		t.Errorf("Extra arg missing from command: %v", result.Command)
	}
}

func TestCompile_ReportsCompilerFailure(t *testing.T) {
	source := writeSource(t, "fail.mq4")

	result, err := Compile(context.Background(), Config{
		CompilerPath: fakeCompiler(t, 3),
	}, source, "")
	if err != nil {
		t.Fatalf("A failing compiler is a result, not an error: %v", err)
	}

	if result.Succeeded() {
		t.Error("Expected failure")
	}
	if result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", result.ExitCode)
	}
	// The output path is still reported for diagnostics.
	if filepath.Ext(result.OutputPath) != ".ex4" {
		t.Errorf("Expected .ex4 output path, got %s", result.OutputPath)
	}
}

func TestCompile_UsesEnvVariable(t *testing.T) {
	source := writeSource(t, "env_based.mq5")
	t.Setenv(CompilerEnv, fakeCompiler(t, 0))

	result, err := Compile(context.Background(), Config{}, source, "")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !result.Succeeded() {
		t.Errorf("Expected success, got exit code %d", result.ExitCode)
	}
}

func TestCompile_MissingSource(t *testing.T) {
	_, err := Compile(context.Background(), Config{
		CompilerPath: fakeCompiler(t, 0),
	}, filepath.Join(t.TempDir(), "missing.mq5"), "")
	if err == nil {
		t.Fatal("Expected error for missing source")
	}
}

func TestCompile_MissingCompilerConfig(t *testing.T) {
	source := writeSource(t, "orphan.mq5")
	t.Setenv(CompilerEnv, "")

	_, err := Compile(context.Background(), Config{}, source, "")
	if err == nil {
		t.Fatal("Expected error when no compiler path is available")
	}
	if !strings.Contains(err.Error(), CompilerEnv) {
		t.Errorf("Error should mention %s, got: %v", CompilerEnv, err)
	}
}

func TestCompile_ExplicitOutputPath(t *testing.T) {
	source := writeSource(t, "custom.mq5")
	output := filepath.Join(t.TempDir(), "custom_build.ex5")

	result, err := Compile(context.Background(), Config{
		CompilerPath: fakeCompiler(t, 0),
	}, source, output)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if result.OutputPath != output {
		t.Errorf("Expected output %s, got %s", output, result.OutputPath)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Artifact not written to explicit path: %v", err)
	}
}
