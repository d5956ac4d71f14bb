package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker walks the files of an unpacked package.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the slash-separated paths of all regular files and symlinks below root,
// relative to root. Directories whose name matches one of skip are not descended into.
// A walk failure is yielded once with an empty path and ends the sequence.
func (w *Walker) WalkFiles(root string, skip []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d.Name(), skip) {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if !yield(filepath.ToSlash(rel), nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

func (w *Walker) shouldSkipDir(name string, skip []string) bool {
	for _, pattern := range skip {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
