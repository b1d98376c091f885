package domain

import "path/filepath"

// CopyItem is the planned placement of one source file.
type CopyItem struct {
	FileMeta  FileMeta
	TargetDir string
	BaseName  string
}

func (c CopyItem) TargetPath() string {
	return filepath.Join(c.TargetDir, c.BaseName+JPEGExt)
}

type EventKind int

const (
	EventProcess EventKind = iota
	EventTimestamp
	EventMkdir
	EventCopied
	EventInPlace
	EventCorrupt
	EventTimestampFailed
	EventReadFailed
	EventCopyFailed
)

// Event narrates one decision taken for a file.
type Event struct {
	Kind      EventKind
	Path      string
	Target    string
	Raw       string
	Reason    string
	Simulated bool
	Err       error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Seen               int
	Copied             int
	InPlace            int
	NotJPEG            int
	Corrupt            int
	MissingTimestamp   int
	InvalidTimestamp   int
	MalformedTimestamp int
	ReadFailures       int
	CopyFailures       int
	DirsCreated        int
}

func (s Summary) Failed() int {
	return s.Corrupt + s.MissingTimestamp + s.InvalidTimestamp + s.MalformedTimestamp + s.ReadFailures + s.CopyFailures
}
