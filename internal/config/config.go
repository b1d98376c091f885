package config

import (
	"errors"
	"fmt"

	"github.com/Breureka/exifrenamer/internal/layout"
)

type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
)

// Config is the immutable configuration of one run.
type Config struct {
	SourceDir string
	TargetDir string
	InPlace   bool
	DryRun    bool
	Verbosity Verbosity
	Template  layout.Template
	Workers   int
	Progress  bool
}

// Flags holds the raw command line options before validation.
type Flags struct {
	DryRun   bool
	Template string
	Quiet    bool
	Verbose  bool
	Original bool
	Workers  int
	Progress bool
}

// New validates the positional arguments and flags and builds a Config.
func New(args []string, flags Flags) (Config, error) {
	cfg := Config{
		InPlace:   flags.Original,
		DryRun:    flags.DryRun,
		Verbosity: Normal,
		Template:  layout.Default(),
		Workers:   flags.Workers,
		Progress:  flags.Progress,
	}

	switch {
	case len(args) == 0:
		return Config{}, errors.New("SOURCE is required")
	case len(args) == 1 && !flags.Original:
		return Config{}, errors.New("the option --original (modifies the source files) must be specified when using only a source directory")
	case len(args) == 2 && flags.Original:
		return Config{}, errors.New("DEST cannot be combined with --original")
	case len(args) > 2:
		return Config{}, fmt.Errorf("expected SOURCE [DEST], got %d arguments", len(args))
	}

	cfg.SourceDir = args[0]
	cfg.TargetDir = args[0]
	if len(args) == 2 {
		cfg.TargetDir = args[1]
	}
	if cfg.SourceDir == "" || cfg.TargetDir == "" {
		return Config{}, errors.New("SOURCE and DEST must not be empty")
	}

	if flags.Quiet && flags.Verbose {
		return Config{}, errors.New("--quiet and --verbose are mutually exclusive")
	}
	if flags.Quiet {
		cfg.Verbosity = Quiet
	}
	if flags.Verbose {
		cfg.Verbosity = Verbose
	}

	if flags.Workers < 0 {
		return Config{}, errors.New("workers must not be negative")
	}

	if flags.Template != "" {
		tpl, err := layout.Parse(flags.Template)
		if err != nil {
			return Config{}, fmt.Errorf("invalid template: %w", err)
		}
		cfg.Template = tpl
	}

	return cfg, nil
}
