// Package testutil builds minimal JPEG files for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003
	typeASCII           = 2
	typeLong            = 4
)

// JPEG returns a JPEG stream whose EXIF block carries dateTimeOriginal.
func JPEG(dateTimeOriginal string) []byte {
	tiff := exifTIFF(dateTimeOriginal)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write([]byte{0xFF, 0xE1})
	binary.Write(&buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write(scanData())
	return buf.Bytes()
}

// PlainJPEG returns a JPEG stream without any EXIF block.
func PlainJPEG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write([]byte{0xFF, 0xE0, 0x00, 0x10})
	buf.WriteString("JFIF\x00")
	buf.Write([]byte{0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00})
	buf.Write(scanData())
	return buf.Bytes()
}

func scanData() []byte {
	return []byte{0x00, 0x11, 0x22, 0x33, 0xFF, 0xD9}
}

func exifTIFF(value string) []byte {
	var buf bytes.Buffer
	be := binary.BigEndian

	buf.WriteString("MM")
	binary.Write(&buf, be, uint16(42))
	binary.Write(&buf, be, uint32(8))

	// IFD0 at 8: a single pointer to the EXIF sub-IFD at 26.
	binary.Write(&buf, be, uint16(1))
	writeEntry(&buf, tagExifIFDPointer, typeLong, 1, uint32(26))
	binary.Write(&buf, be, uint32(0))

	data := append([]byte(value), 0)
	count := uint32(len(data))

	binary.Write(&buf, be, uint16(1))
	if count <= 4 {
		inline := make([]byte, 4)
		copy(inline, data)
		binary.Write(&buf, be, uint16(tagDateTimeOriginal))
		binary.Write(&buf, be, uint16(typeASCII))
		binary.Write(&buf, be, count)
		buf.Write(inline)
		binary.Write(&buf, be, uint32(0))
		return buf.Bytes()
	}
	writeEntry(&buf, tagDateTimeOriginal, typeASCII, count, uint32(44))
	binary.Write(&buf, be, uint32(0))
	buf.Write(data)
	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, tag, typ uint16, count, value uint32) {
	be := binary.BigEndian
	binary.Write(buf, be, tag)
	binary.Write(buf, be, typ)
	binary.Write(buf, be, count)
	binary.Write(buf, be, value)
}

// WriteFile writes data below dir, creating parents, and returns the path.
func WriteFile(t testing.TB, dir, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
