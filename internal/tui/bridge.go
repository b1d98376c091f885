package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Breureka/exifrenamer/internal/app"
	"github.com/Breureka/exifrenamer/internal/domain"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Reporter forwards engine events to a running program.
type Reporter struct {
	Program Sender
}

func (r Reporter) Report(ev domain.Event) {
	r.Program.Send(EventMsg{Event: ev})
}

// Progress returns an engine progress callback feeding the program.
func Progress(program Sender) app.ProgressFunc {
	return func(stage app.Stage, current, total int, path string) {
		switch stage {
		case app.StageInspect:
			program.Send(ScanProgressMsg{Current: current, Total: total})
		case app.StagePlace:
			program.Send(CopyProgressMsg{Current: current, Total: total, File: path})
		}
	}
}
