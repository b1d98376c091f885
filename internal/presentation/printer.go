package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Breureka/exifrenamer/internal/config"
	"github.com/Breureka/exifrenamer/internal/domain"
	"github.com/Breureka/exifrenamer/internal/layout"
)

// Printer narrates a run line by line. Regular output goes to Writer,
// errors to ErrWriter.
type Printer struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Verbosity config.Verbosity

	label lipgloss.Style
	dim   lipgloss.Style
	fail  lipgloss.Style
}

func NewPrinter(out, errOut io.Writer, verbosity config.Verbosity) *Printer {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)
	return &Printer{
		Writer:    out,
		ErrWriter: errOut,
		Verbosity: verbosity,
		label:     outRenderer.NewStyle().Foreground(lipgloss.Color("#85DCB0")).Bold(true),
		dim:       outRenderer.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		fail:      errRenderer.NewStyle().Foreground(lipgloss.Color("#E85D75")).Bold(true),
	}
}

func (p *Printer) Report(ev domain.Event) {
	switch ev.Kind {
	case domain.EventProcess:
		p.verbose("*PROCESS:", ev.Path)
	case domain.EventTimestamp:
		p.verbose("TIMESTAMP:", ev.Raw)
	case domain.EventMkdir:
		if ev.Simulated {
			p.verbose("*MKDIR:", ev.Path+" (simulated)")
		} else {
			p.verbose("*MKDIR:", ev.Path)
		}
	case domain.EventCopied:
		if p.Verbosity >= config.Normal {
			fmt.Fprintf(p.Writer, "%s %s --> %s\n", p.label.Render("COPY:"), ev.Path, ev.Target)
		}
	case domain.EventInPlace:
		p.verbose("*KEEP:", ev.Path+" is already in place")
	case domain.EventCorrupt:
		p.errorf("Corrupt File - %s", ev.Path)
	case domain.EventTimestampFailed:
		p.errorf("Timestamp [ %s ] - %s", ev.Reason, ev.Path)
	case domain.EventReadFailed:
		p.errorf("Unreadable File - %s: %v", ev.Path, ev.Err)
	case domain.EventCopyFailed:
		p.errorf("Copy Failed - %s --> %s: %v", ev.Path, ev.Target, ev.Err)
	}
}

// PrintTemplate echoes a user supplied template in verbose mode.
func (p *Printer) PrintTemplate(tpl layout.Template) {
	if tpl.IsDefault() {
		return
	}
	p.verbose("*TEMPLATE:", tpl.String())
}

func (p *Printer) PrintSummary(summary domain.Summary, dryRun bool) {
	if p.Verbosity >= config.Verbose {
		line := fmt.Sprintf("Copied %d of %d JPEG files, %d failed, %d kept in place, %d other files skipped, %d directories created.",
			summary.Copied, summary.Seen-summary.NotJPEG, summary.Failed(), summary.InPlace, summary.NotJPEG, summary.DirsCreated)
		fmt.Fprintln(p.Writer, p.dim.Render(line))
	}
	if dryRun && p.Verbosity >= config.Normal {
		fmt.Fprintln(p.Writer, "DRY RUN: All actions simulated.")
	}
}

func (p *Printer) verbose(label, text string) {
	if p.Verbosity < config.Verbose {
		return
	}
	fmt.Fprintf(p.Writer, "%s %s\n", p.dim.Render(label), text)
}

func (p *Printer) errorf(format string, args ...any) {
	if p.ErrWriter == nil {
		return
	}
	fmt.Fprintf(p.ErrWriter, "%s %s\n", p.fail.Render("ERROR:"), fmt.Sprintf(format, args...))
}
