package domain

import (
	"mime"
	"path/filepath"
	"strings"
)

// JPEGExt is the extension given to every placed file.
const JPEGExt = ".jpg"

type FileMeta struct {
	SourcePath string
	Name       string
	Ext        string
}

func NewFileMeta(sourcePath string) FileMeta {
	name := filepath.Base(sourcePath)
	return FileMeta{
		SourcePath: sourcePath,
		Name:       name,
		Ext:        strings.ToLower(filepath.Ext(name)),
	}
}

// IsJpegExtension reports whether the extension guesses to image/jpeg.
func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".jpe":
		return true
	case "":
		return false
	}
	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(ext)))
	return err == nil && mediaType == "image/jpeg"
}

// RawTag is the DateTimeOriginal value as stored in the image. Present is
// false when the image carries no such tag.
type RawTag struct {
	Value   string
	Present bool
}
