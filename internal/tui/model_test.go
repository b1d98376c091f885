package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Breureka/exifrenamer/internal/app"
	"github.com/Breureka/exifrenamer/internal/domain"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelPhases(t *testing.T) {
	m := NewModel(Config{SourceDir: "/src", TargetDir: "/dst"})
	if m.Phase != PhaseScanning {
		t.Fatalf("expected scanning phase")
	}

	m = update(t, m, ScanProgressMsg{Current: 1, Total: 2})
	if !strings.Contains(m.View(), "1/2") {
		t.Fatalf("expected scan counter in view:\n%s", m.View())
	}

	m = update(t, m, CopyProgressMsg{Current: 1, Total: 2, File: "/src/a.jpg"})
	if m.Phase != PhaseCopying {
		t.Fatalf("expected copying phase, got %v", m.Phase)
	}

	m = update(t, m, DoneMsg{Summary: domain.Summary{Copied: 2, Seen: 2}})
	if m.Phase != PhaseDone || m.Summary.Copied != 2 {
		t.Fatalf("unexpected state %+v", m.Summary)
	}
	if !strings.Contains(m.View(), "Summary") {
		t.Fatalf("expected summary in view:\n%s", m.View())
	}
}

func TestModelKeepsRecentErrors(t *testing.T) {
	m := NewModel(Config{})
	for i := 0; i < 6; i++ {
		m = update(t, m, EventMsg{Event: domain.Event{
			Kind:   domain.EventTimestampFailed,
			Path:   fmt.Sprintf("/src/%d.jpg", i),
			Reason: "missing",
		}})
	}
	m = update(t, m, EventMsg{Event: domain.Event{Kind: domain.EventCopied, Path: "a", Target: "b"}})

	if m.ErrorCount != 6 || len(m.Errors) != maxRecentErrors {
		t.Fatalf("unexpected error bookkeeping: count=%d kept=%d", m.ErrorCount, len(m.Errors))
	}
	if !strings.Contains(m.Errors[len(m.Errors)-1], "5.jpg") {
		t.Fatalf("expected newest error last, got %v", m.Errors)
	}
}

func TestModelQuitCancelsRun(t *testing.T) {
	canceled := false
	m := NewModel(Config{Cancel: func() { canceled = true }})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !canceled || !m.Quitting {
		t.Fatalf("expected quit to cancel the run")
	}
}

func TestModelError(t *testing.T) {
	m := update(t, NewModel(Config{}), ErrorMsg{Err: errors.New("mkdir failed")})
	if m.Phase != PhaseError || !strings.Contains(m.View(), "mkdir failed") {
		t.Fatalf("expected error view:\n%s", m.View())
	}
}

type sink struct {
	msgs []tea.Msg
}

func (s *sink) Send(msg tea.Msg) { s.msgs = append(s.msgs, msg) }

func TestBridgeForwardsMessages(t *testing.T) {
	s := &sink{}
	Reporter{Program: s}.Report(domain.Event{Kind: domain.EventCorrupt})
	progress := Progress(s)
	progress(app.StageInspect, 1, 3, "a")
	progress(app.StagePlace, 2, 3, "b")

	if len(s.msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(s.msgs))
	}
	if _, ok := s.msgs[1].(ScanProgressMsg); !ok {
		t.Fatalf("expected scan progress, got %T", s.msgs[1])
	}
	if msg, ok := s.msgs[2].(CopyProgressMsg); !ok || msg.File != "b" {
		t.Fatalf("expected copy progress, got %#v", s.msgs[2])
	}
}
