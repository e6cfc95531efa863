package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeCompiler(t *testing.T) string {
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
echo "compiled $src" > "$out"
echo "Compilation succeeded for $src"
exit 0
`
	path := filepath.Join(t.TempDir(), "fake_compiler.sh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write fake compiler: %v", err)
	}
	return path
}

func TestRun_CompilesSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "cli_test.mq5")
	if err := os.WriteFile(source, []byte("// cli invocation\n"), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	// Keep the build log out of the working directory.
	t.Setenv("MQL_COMPILER_LOG", filepath.Join(dir, "build.log"))

	var stdout, stderr strings.Builder
	code := run([]string{"--compiler", fakeCompiler(t), "--timeout", "10", source}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("Expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Command:") {
		t.Errorf("Expected command echo, got:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Return code: 0") {
		t.Errorf("Expected return code line, got:\n%s", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "cli_test.ex5")); err != nil {
		t.Errorf("Compiled artifact missing: %v", err)
	}
}

func TestRun_MissingSource(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MQL_COMPILER_LOG", filepath.Join(dir, "build.log"))

	var stdout, stderr strings.Builder
	code := run([]string{"--compiler", fakeCompiler(t), filepath.Join(dir, "missing.mq5")}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "source file") {
		t.Errorf("Expected source file error on stderr, got: %s", stderr.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr strings.Builder
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("Expected exit 1 with no arguments, got %d", code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Errorf("Expected usage text on stderr, got: %s", stderr.String())
	}
}
