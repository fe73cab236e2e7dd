package testutils

import (
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// ImportFiles copies the regular files of the os directory src into
// the directory dst of the given file system.
func ImportFiles(fs vfs.FileSystem, src, dst string) error {
	list, err := vfs.ReadDir(osfs.OsFs, src)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	for _, fi := range list {
		if !fi.Mode().IsRegular() {
			continue
		}
		data, err := vfs.ReadFile(osfs.OsFs, filepath.Join(src, fi.Name()))
		if err != nil {
			return err
		}
		if err := vfs.WriteFile(fs, filepath.Join(dst, fi.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFileSystem provides an empty in-memory file system with the
// given directories already created.
func MemoryFileSystem(dirs ...string) (vfs.FileSystem, error) {
	fs := memoryfs.New()
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// Exists reports whether the path exists on the file system.
func Exists(fs vfs.FileSystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// DirExists reports whether the path is an existing directory.
func DirExists(fs vfs.FileSystem, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.IsDir()
}
