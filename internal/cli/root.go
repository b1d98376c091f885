package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Breureka/exifrenamer/internal/app"
	"github.com/Breureka/exifrenamer/internal/config"
	"github.com/Breureka/exifrenamer/internal/domain"
	appErrors "github.com/Breureka/exifrenamer/internal/errors"
	"github.com/Breureka/exifrenamer/internal/infra/exif"
	"github.com/Breureka/exifrenamer/internal/infra/fs"
	"github.com/Breureka/exifrenamer/internal/infra/sniff"
	"github.com/Breureka/exifrenamer/internal/logging"
	"github.com/Breureka/exifrenamer/internal/presentation"
	"github.com/Breureka/exifrenamer/internal/tui"
)

var version = "0.2.0"

const description = `Copies JPEG files within SOURCE to DEST, renaming each file based on its EXIF
DateTimeOriginal timestamp.

Template directives: %Y = 4 digit year, %y = 2 digit year, %m = 2 digit month,
%b = abbreviated month name, %B = full month name, %d = 2 digit day,
%H = 24 hour clock, %I = 12 hour clock, %M = minutes, %S = seconds.`

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, appErrors.UserMessage(err))
		if appErrors.KindOf(err) == appErrors.InvalidConfig {
			fmt.Fprintln(stderr, cmd.UsageString())
		}
	}
	return appErrors.ExitCode(err)
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:           "exifrenamer [flags] SOURCE [DEST]",
		Short:         "Copy JPEGs into a date-organized tree named by capture time",
		Long:          description,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(args, flags)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return appErrors.Wrap(appErrors.InvalidConfig, "flags", "", err)
	})

	f := cmd.Flags()
	f.BoolVarP(&flags.DryRun, "dry-run", "n", false, "Simulate actions without making any changes")
	f.StringVarP(&flags.Template, "template", "t", "", "Destination directory and file format (default: %Y/%m/%d/%Y-%m-%d_%H.%M.%S)")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress all per-file output")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbosely list files processed")
	f.BoolVarP(&flags.Original, "original", "o", false, "Operate in place: move files within SOURCE instead of copying to DEST")
	f.IntVarP(&flags.Workers, "workers", "w", 0, "Number of EXIF reading workers (0 = number of CPUs)")
	f.BoolVarP(&flags.Progress, "progress", "p", false, "Show an interactive progress display")

	return cmd
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	filesystem := fs.OSFS{}

	info, err := filesystem.Stat(cfg.SourceDir)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.SourceDir, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.SourceDir, errors.New("not a directory"))
	}

	engine := &app.Engine{
		FS:      filesystem,
		Exif:    exif.Reader{},
		Sniffer: sniff.Detector{},
		Logger:  logging.New(stderr, cfg.Verbosity >= config.Verbose),
	}

	if cfg.Progress {
		return runInteractive(ctx, engine, cfg)
	}

	printer := presentation.NewPrinter(stdout, stderr, cfg.Verbosity)
	engine.Reporter = printer
	printer.PrintTemplate(cfg.Template)

	summary, err := engine.Run(ctx, cfg)
	if err != nil {
		return err
	}
	printer.PrintSummary(summary, cfg.DryRun)
	return nil
}

func runInteractive(ctx context.Context, engine *app.Engine, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    cfg.DryRun,
		Cancel:    cancel,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))
	engine.Reporter = tui.Reporter{Program: program}
	engine.OnProgress = tui.Progress(program)
	engine.Logger = logging.Logger{}

	type outcome struct {
		summary domain.Summary
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		summary, err := engine.Run(ctx, cfg)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: errors.New(appErrors.UserMessage(err))})
		} else {
			program.Send(tui.DoneMsg{Summary: summary})
		}
		done <- outcome{summary: summary, err: err}
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		<-done
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	cancel()
	res := <-done
	if errors.Is(res.err, context.Canceled) {
		return appErrors.Wrap(appErrors.Internal, "run", cfg.SourceDir, errors.New("aborted by user"))
	}
	return res.err
}
