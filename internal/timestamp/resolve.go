// Package timestamp turns the raw DateTimeOriginal tag of an image into a
// capture time, or into exactly one classified failure.
package timestamp

import (
	"strings"
	"time"

	"github.com/Breureka/exifrenamer/internal/domain"
)

// Layout is the EXIF date-time layout.
const Layout = "2006:01:02 15:04:05"

// Sentinel is the date some cameras write when their clock was never set.
const Sentinel = "0000:00:00"

type Kind int

const (
	OK Kind = iota
	Missing
	Invalid
	Malformed
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is either a resolved time (Kind == OK) or a failure kind. Raw keeps
// the tag value as read, for diagnostics.
//
// Time holds the camera's wall clock in UTC. The zone carries no meaning; it
// only keeps DST transitions from shifting any field.
type Result struct {
	Kind Kind
	Time time.Time
	Raw  string
}

func (r Result) OK() bool { return r.Kind == OK }

// Date is the date portion of the raw value.
func (r Result) Date() string {
	fields := strings.Fields(r.Raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Reason is the short diagnostic printed next to a failed file.
func (r Result) Reason() string {
	if r.Kind == Invalid {
		return r.Date()
	}
	return r.Kind.String()
}

func Resolve(tag domain.RawTag) Result {
	if !tag.Present {
		return Result{Kind: Missing}
	}

	raw := strings.TrimSpace(strings.TrimRight(tag.Value, "\x00"))
	res := Result{Raw: raw}

	if res.Date() == Sentinel {
		res.Kind = Invalid
		return res
	}

	parsed, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		res.Kind = Malformed
		return res
	}
	res.Kind = OK
	res.Time = parsed
	return res
}
