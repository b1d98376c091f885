package exif

import (
	"context"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/Breureka/exifrenamer/internal/domain"
)

type Reader struct{}

// DateTimeOriginal reads the DateTimeOriginal tag of the image at path. An
// image without decodable EXIF data, or without the tag, yields an absent
// tag rather than an error; only failures to read the file are returned.
func (Reader) DateTimeOriginal(ctx context.Context, path string) (domain.RawTag, error) {
	select {
	case <-ctx.Done():
		return domain.RawTag{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.RawTag{}, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if x == nil || (err != nil && goexif.IsCriticalError(err)) {
		return domain.RawTag{}, nil
	}

	tag, err := x.Get(goexif.DateTimeOriginal)
	if err != nil {
		return domain.RawTag{}, nil
	}
	value, err := tag.StringVal()
	if err != nil {
		// Present but not ASCII; let the resolver classify it.
		return domain.RawTag{Value: tag.String(), Present: true}, nil
	}
	return domain.RawTag{Value: value, Present: true}, nil
}
