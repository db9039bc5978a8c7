// Package main provides the latan CLI.
//
// latan inspects and extends latan ASCII containers: it lists stored objects,
// prints them as container text or YAML, summarizes samples, appends
// generator states and follows a file while another program writes it.
// Settings come from a YAML file (-config) and global flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/born-ml/latan/internal/config"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("invalid usage")

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "latan: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// run parses global flags and dispatches to a command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("latan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath(), "Path to the YAML configuration file")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	noColor := fs.Bool("no-color", false, "Disable colored logs")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		if _, err := config.ParseLevel(*logLevel); err != nil {
			return err
		}
		cfg.LogLevel = *logLevel
	}
	if *noColor {
		cfg.NoColor = true
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr, fs)
		return errUsage
	}

	a := &app{
		cfg:    cfg,
		logger: newLogger(stderr, cfg),
		stdout: stdout,
		stderr: stderr,
	}
	a.logger.Debug("configuration loaded", "path", *configPath, "precision", cfg.Precision)

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "version":
		_, err := fmt.Fprintf(stdout, "latan %s\n", version)
		return err
	case "ls":
		return a.ls(ctx, cmdArgs)
	case "cat":
		return a.cat(cmdArgs)
	case "stat":
		return a.stat(cmdArgs)
	case "rng":
		return a.rng(cmdArgs)
	case "watch":
		return a.watch(ctx, cmdArgs)
	default:
		usage(stderr, fs)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: latan [flags] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                          Show version")
	fmt.Fprintln(w, "  ls [-j N] <file>...              List stored objects")
	fmt.Fprintln(w, "  cat [-format F] <file> [name]    Print an object (text or yaml)")
	fmt.Fprintln(w, "  stat <file> [name]               Summarize a sample")
	fmt.Fprintln(w, "  rng [-seed S] [-name N] <file>   Append a generator state")
	fmt.Fprintln(w, "  watch <file>                     List objects each time the file changes")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

// defaultConfigPath returns the per-user configuration file, or "" when the
// platform has no configuration directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "latan", "config.yaml")
}
