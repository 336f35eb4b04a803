package monitor

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the subset of file operations the package needs, so lookups
// can be tested against an in-memory tree.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

// Stat calls os.Stat
func (OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile calls os.ReadFile
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WalkDir calls filepath.WalkDir
func (OSFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
