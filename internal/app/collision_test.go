package app

import (
	"errors"
	"path/filepath"
	"testing"
)

type errFS struct {
	*mockFS
}

func (errFS) Exists(path string) (bool, error) {
	return false, errors.New("stat failed")
}

func TestCollisionResolverFreeName(t *testing.T) {
	cr := NewCollisionResolver(newMockFS())
	name, err := cr.Resolve("/dest", "photo")
	if err != nil || name != "photo" {
		t.Fatalf("expected photo, got %q (%v)", name, err)
	}
}

func TestCollisionResolverSkipsExisting(t *testing.T) {
	fsys := newMockFS(filepath.Join("/dest", "photo.jpg"), filepath.Join("/dest", "photo_1.jpg"))
	cr := NewCollisionResolver(fsys)

	name, err := cr.Resolve("/dest", "photo")
	if err != nil || name != "photo_2" {
		t.Fatalf("expected photo_2, got %q (%v)", name, err)
	}
}

func TestCollisionResolverHonorsClaims(t *testing.T) {
	cr := NewCollisionResolver(newMockFS())
	first, _ := cr.Resolve("/dest", "photo")
	second, _ := cr.Resolve("/dest", "photo")
	third, _ := cr.Resolve("/dest", "photo")
	if first != "photo" || second != "photo_1" || third != "photo_2" {
		t.Fatalf("unexpected sequence %q %q %q", first, second, third)
	}

	other, _ := cr.Resolve("/other", "photo")
	if other != "photo" {
		t.Fatalf("claims must be per directory, got %q", other)
	}
}

func TestCollisionResolverPropagatesErrors(t *testing.T) {
	cr := NewCollisionResolver(errFS{newMockFS()})
	if _, err := cr.Resolve("/dest", "photo"); err == nil {
		t.Fatalf("expected error")
	}
}
