// Package compiler shells out to a locally installed MetaEditor/MetaTrader
// compiler to build .mq4/.mq5 sources. The analyzer has no dependency on it.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilerEnv names the environment variable holding the compiler executable
// path when none is given explicitly.
const CompilerEnv = "MQL_COMPILER"

// DefaultTimeout bounds a single compiler invocation.
const DefaultTimeout = 120 * time.Second

// Config describes how to invoke the compiler.
type Config struct {
	// CompilerPath is the MetaEditor/MetaTrader executable. Empty falls back
	// to the MQL_COMPILER environment variable.
	CompilerPath string
	// Wine prefixes the command with "wine" for running the Windows binary
	// on Linux.
	Wine bool
	// Timeout bounds the subprocess; zero means DefaultTimeout.
	Timeout time.Duration
	// ExtraArgs are passed through to the compiler verbatim.
	ExtraArgs []string
}

// Result captures one compiler invocation.
type Result struct {
	Command    []string
	ExitCode   int
	Stdout     string
	Stderr     string
	OutputPath string
}

// Succeeded reports whether the compiler exited cleanly.
func (r Result) Succeeded() bool { return r.ExitCode == 0 }

// DefaultOutputPath maps a source path to the platform's compiled artifact
// path: .mq4 becomes .ex4, everything else .ex5.
func DefaultOutputPath(source string) string {
	ext := ".ex5"
	if strings.EqualFold(filepath.Ext(source), ".mq4") {
		ext = ".ex4"
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}

// BuildCommand assembles the argv for compiling source into output. The
// MetaEditor CLI takes Windows-style /compile: and /out: switches.
func (c Config) BuildCommand(source, output string) []string {
	var command []string
	if c.Wine {
		command = append(command, "wine")
	}
	command = append(command,
		c.CompilerPath,
		"/compile:"+source,
		"/out:"+output,
	)
	return append(command, c.ExtraArgs...)
}

// Compile builds one source file. An empty output selects the default
// artifact path next to the source. The compiler's own failure is not an
// error: it comes back as a Result with a non-zero ExitCode and the captured
// streams, so callers can show the diagnostics.
func Compile(ctx context.Context, cfg Config, source, output string) (Result, error) {
	if _, err := os.Stat(source); err != nil {
		return Result{}, fmt.Errorf("source file: %w", err)
	}

	if cfg.CompilerPath == "" {
		cfg.CompilerPath = os.Getenv(CompilerEnv)
	}
	if cfg.CompilerPath == "" {
		return Result{}, fmt.Errorf("compiler path not provided and %s is not set", CompilerEnv)
	}
	if _, err := os.Stat(cfg.CompilerPath); err != nil {
		return Result{}, fmt.Errorf("compiler executable: %w", err)
	}

	if output == "" {
		output = DefaultOutputPath(source)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	command := cfg.BuildCommand(source, output)
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Command: command, OutputPath: output}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	switch {
	case err == nil:
	case ctx.Err() != nil:
		return res, fmt.Errorf("compiler timed out after %s", timeout)
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, fmt.Errorf("run compiler: %w", err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}
