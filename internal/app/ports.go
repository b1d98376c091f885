package app

import (
	"context"
	"io/fs"

	"github.com/Breureka/exifrenamer/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	// CopyFile must fail with an error matching fs.ErrExist when dst exists.
	CopyFile(src, dst string) error
	Remove(path string) error
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (domain.RawTag, error)
}

type Sniffer interface {
	IsJPEG(path string) (bool, error)
}

type Reporter interface {
	Report(event domain.Event)
}

type nopReporter struct{}

func (nopReporter) Report(domain.Event) {}
