package app

import (
	"fmt"
	"path/filepath"

	"github.com/Breureka/exifrenamer/internal/domain"
)

// CollisionResolver picks destination names that neither exist on disk nor
// were handed out earlier in the same run. Not safe for concurrent use.
type CollisionResolver struct {
	FS      FileSystem
	claimed map[string]bool
}

func NewCollisionResolver(fsys FileSystem) *CollisionResolver {
	return &CollisionResolver{FS: fsys, claimed: make(map[string]bool)}
}

// Resolve returns base when dir/base.jpg is free, otherwise the first free
// base_N (N = 1, 2, ...). The returned name is claimed.
func (cr *CollisionResolver) Resolve(dir, base string) (string, error) {
	name := base
	for n := 1; ; n++ {
		taken, err := cr.taken(filepath.Join(dir, name+domain.JPEGExt))
		if err != nil {
			return "", err
		}
		if !taken {
			cr.Claim(filepath.Join(dir, name+domain.JPEGExt))
			return name, nil
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// Claim marks path as used by this run.
func (cr *CollisionResolver) Claim(path string) {
	if cr.claimed == nil {
		cr.claimed = make(map[string]bool)
	}
	cr.claimed[filepath.Clean(path)] = true
}

func (cr *CollisionResolver) taken(path string) (bool, error) {
	if cr.claimed[filepath.Clean(path)] {
		return true, nil
	}
	return cr.FS.Exists(path)
}
