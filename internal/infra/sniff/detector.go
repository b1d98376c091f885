package sniff

import (
	"github.com/gabriel-vasile/mimetype"
)

const jpegMIME = "image/jpeg"

// Detector identifies files by their leading magic bytes.
type Detector struct{}

func (Detector) IsJPEG(path string) (bool, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false, err
	}
	return mt.Is(jpegMIME), nil
}
