// mql_compiler compiles MQL4/MQL5 sources with a locally installed
// MetaEditor/MetaTrader compiler.
//
// The compiler executable comes from --compiler, the MQL_COMPILER environment
// variable, or a yaml config file, in that order of precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"mt_tools/internal/compiler"
	"mt_tools/internal/config"
	"mt_tools/internal/logger"
)

// stringList collects a repeatable flag value.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mql_compiler", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var extraArgs stringList
	compilerPath := fs.String("compiler", "", "path to the compiler executable (falls back to the MQL_COMPILER env var)")
	output := fs.String("o", "", "destination for the compiled output (defaults to .ex4/.ex5 alongside the source)")
	wine := fs.Bool("wine", false, "prefix the compiler command with wine")
	timeout := fs.Int("timeout", 0, "timeout in seconds before aborting the compiler process")
	configFile := fs.String("config", "", "yaml config file with compiler defaults")
	fs.Var(&extraArgs, "extra-arg", "additional argument passed to the compiler (repeatable)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mql_compiler [flags] <source.mq4|source.mq5>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	source := fs.Arg(0)

	cfg := config.Load()
	if *configFile != "" {
		if err := cfg.MergeFile(*configFile); err != nil {
			fmt.Fprintf(stderr, "mql_compiler: %v\n", err)
			return 1
		}
	}
	// Flags override env and file settings.
	if *compilerPath != "" {
		cfg.CompilerPath = *compilerPath
	}
	if *wine {
		cfg.Wine = true
	}
	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
	}

	logger.Setup(cfg.LogFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	cc := compiler.Config{
		CompilerPath: cfg.CompilerPath,
		Wine:         cfg.Wine,
		Timeout:      cfg.Timeout(),
		ExtraArgs:    append(cfg.ExtraArgs, extraArgs...),
	}

	log.Printf("Compiling %s (compiler=%s wine=%v)", source, cc.CompilerPath, cc.Wine)
	result, err := compiler.Compile(context.Background(), cc, source, *output)
	if err != nil {
		fmt.Fprintf(stderr, "mql_compiler: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Command:", strings.Join(result.Command, " "))
	fmt.Fprintln(stdout, "Return code:", result.ExitCode)
	fmt.Fprintln(stdout, "Output file:", result.OutputPath)
	if result.Stdout != "" {
		fmt.Fprintf(stdout, "stdout:\n%s", result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintf(stdout, "stderr:\n%s", result.Stderr)
	}

	if !result.Succeeded() {
		log.Printf("Compilation of %s failed with exit code %d", source, result.ExitCode)
		return 1
	}
	log.Printf("Compiled %s -> %s", source, result.OutputPath)
	return 0
}
