package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Breureka/exifrenamer/internal/domain"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseCopying
	PhaseDone
	PhaseError
)

const maxRecentErrors = 4

// Messages for the TUI
type (
	ScanProgressMsg struct {
		Current int
		Total   int
	}
	CopyProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	EventMsg struct {
		Event domain.Event
	}
	DoneMsg struct {
		Summary domain.Summary
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Config for the TUI
type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	// Cancel is called when the user quits before the run finished.
	Cancel func()
}

// Model is the main TUI model
type Model struct {
	config       Config
	Phase        Phase
	Summary      domain.Summary
	spinner      spinner.Model
	progress     progress.Model
	scanCurrent  int
	scanTotal    int
	copyProgress int
	copyTotal    int
	currentFile  string
	lastCopy     string
	Errors       []string
	ErrorCount   int
	Err          error
	Quitting     bool
	width        int
	height       int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.running() && m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		return m, nil

	case CopyProgressMsg:
		m.Phase = PhaseCopying
		m.copyProgress = msg.Current
		m.copyTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Summary = msg.Summary
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.running() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseCopying {
			var cmds []tea.Cmd
			if m.copyTotal > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.copyProgress)/float64(m.copyTotal)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
		if m.running() {
			return m, tickCmd()
		}
	}

	return m, nil
}

func (m Model) running() bool {
	return m.Phase == PhaseScanning || m.Phase == PhaseCopying
}

func (m *Model) applyEvent(ev domain.Event) {
	var line string
	switch ev.Kind {
	case domain.EventCopied:
		m.lastCopy = fmt.Sprintf("%s %s", shortenPath(ev.Path), shortenPath(ev.Target))
		return
	case domain.EventCorrupt:
		line = fmt.Sprintf("Corrupt file %s", shortenPath(ev.Path))
	case domain.EventTimestampFailed:
		line = fmt.Sprintf("Timestamp [ %s ] %s", ev.Reason, shortenPath(ev.Path))
	case domain.EventReadFailed:
		line = fmt.Sprintf("Unreadable %s: %v", shortenPath(ev.Path), ev.Err)
	case domain.EventCopyFailed:
		line = fmt.Sprintf("Copy failed %s: %v", shortenPath(ev.Path), ev.Err)
	default:
		return
	}
	m.ErrorCount++
	m.Errors = append(m.Errors, line)
	if len(m.Errors) > maxRecentErrors {
		m.Errors = m.Errors[len(m.Errors)-maxRecentErrors:]
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseCopying:
		b.WriteString(m.renderCopying())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	if len(m.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderErrors())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 exifrenamer")
	subtitle := subtitleStyle.Render("Photos filed by capture date")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir))),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal > 0 {
		percent := float64(m.scanCurrent) / float64(m.scanTotal)
		progressBar := m.progress.ViewAs(percent)

		countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
		percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

		return fmt.Sprintf("%s Reading EXIF timestamps...\n\n  %s\n  %s %s",
			m.spinner.View(),
			progressBar,
			countStyle.Render(fmt.Sprintf("%d/%d", m.scanCurrent, m.scanTotal)),
			percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
		)
	}
	return fmt.Sprintf("%s Scanning photos...", m.spinner.View())
}

func (m Model) renderCopying() string {
	var b strings.Builder

	verb := "Copying"
	if m.config.DryRun {
		verb = "Planning"
	}
	b.WriteString(sectionStyle.Render(verb + " Files"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.copyTotal > 0 {
		percent = float64(m.copyProgress) / float64(m.copyTotal)
	}

	b.WriteString(fmt.Sprintf("  %s %s...\n\n", m.spinner.View(), verb))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.copyProgress, m.copyTotal)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.lastCopy != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.lastCopy)))
	} else if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(shortenPath(m.currentFile))))
	}

	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	s := m.Summary
	label := "Copied:"
	if m.config.DryRun {
		label = "Would copy:"
	}
	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(label), successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, s.Copied))))
	if s.InPlace > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Already in place:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, s.InPlace))))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Other files:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, s.NotJPEG))))
	if s.Failed() > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, s.Failed()))))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Directories:"), statValueStyle.Render(fmt.Sprintf("%d", s.DirsCreated))))

	if m.config.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - All actions simulated"))
	}

	return b.String()
}

func (m Model) renderErrors() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render(fmt.Sprintf("%s Problems (%d)", iconWarning, m.ErrorCount)))
	b.WriteString("\n")
	for _, line := range m.Errors {
		b.WriteString(fmt.Sprintf("  %s %s\n", iconWarning, line))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning, PhaseCopying:
		help = "Press q to abort"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
