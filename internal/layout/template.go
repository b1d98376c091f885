// Package layout derives destination directories and file names from a
// capture time using strftime-style templates.
//
// Supported directives include %Y (4 digit year), %y (2 digit year),
// %m (month), %b and %B (abbreviated and full month name), %d (day),
// %H (24 hour clock), %I (12 hour clock), %M (minutes) and %S (seconds).
package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

const (
	DefaultDir  = "%Y/%m/%d"
	DefaultFile = "%Y-%m-%d_%H.%M.%S"
)

var (
	ErrNoSeparator = errors.New("template has no path separator, DEST cannot be current directory")
	ErrEmptyFile   = errors.New("template has no file name after the last path separator")
)

// Template is a compiled directory and file name template pair.
type Template struct {
	text string
	dir  *strftime.Strftime
	file *strftime.Strftime
}

// Default returns the year/month/day template.
func Default() Template {
	t, err := compile("", DefaultDir, DefaultFile)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse splits text at its last path separator ('/' or '\') into a directory
// and a file name template and compiles both.
func Parse(text string) (Template, error) {
	normalized := strings.ReplaceAll(text, `\`, "/")
	idx := strings.LastIndex(normalized, "/")
	if idx < 0 {
		return Template{}, ErrNoSeparator
	}
	dir, file := normalized[:idx], normalized[idx+1:]
	if file == "" {
		return Template{}, ErrEmptyFile
	}
	return compile(text, dir, file)
}

func compile(text, dir, file string) (Template, error) {
	dirFmt, err := strftime.New(dir)
	if err != nil {
		return Template{}, fmt.Errorf("directory template %q: %w", dir, err)
	}
	fileFmt, err := strftime.New(file)
	if err != nil {
		return Template{}, fmt.Errorf("file template %q: %w", file, err)
	}
	return Template{text: text, dir: dirFmt, file: fileFmt}, nil
}

// String returns the template as given on the command line, or the default
// pattern.
func (t Template) String() string {
	if t.text != "" {
		return t.text
	}
	return t.DirPattern() + "/" + t.FilePattern()
}

// IsDefault reports whether the template was not supplied by the user.
func (t Template) IsDefault() bool { return t.text == "" }

func (t Template) DirPattern() string {
	if t.dir == nil {
		return DefaultDir
	}
	return t.dir.Pattern()
}

func (t Template) FilePattern() string {
	if t.file == nil {
		return DefaultFile
	}
	return t.file.Pattern()
}

// Format returns the destination directory (relative, OS separators) and the
// base file name without extension. The zero Template formats with the
// default patterns.
func (t Template) Format(ts time.Time) (dir, base string) {
	if t.dir == nil || t.file == nil {
		t = Default()
	}
	dir = filepath.FromSlash(t.dir.FormatString(ts))
	base = t.file.FormatString(ts)
	return dir, base
}
