package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/dwcj/installer/pkg/installlog"
)

// Archive is an opened zip archive located on a virtual file system.
type Archive struct {
	path string
	file vfs.File
	*zip.Reader
}

func Open(fs vfs.FileSystem, p string) (*Archive, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, newError(p, "", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError(p, "", err)
	}
	r, err := zip.NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, newError(p, "", err)
	}
	return &Archive{path: p, file: f, Reader: r}, nil
}

func (a *Archive) Path() string {
	return a.path
}

func (a *Archive) Close() error {
	return a.file.Close()
}

// Find returns the first file entry whose name ends with the given suffix.
func (a *Archive) Find(suffix string) *zip.File {
	for _, e := range a.File {
		if !e.FileInfo().IsDir() && strings.HasSuffix(e.Name, suffix) {
			return e
		}
	}
	return nil
}

// ExtractSingle copies the first entry whose name ends with suffix to
// destDir/<base name of suffix> and returns the destination path. An
// existing file is replaced. The log line is prefixed with prefix.
func ExtractSingle(fs vfs.FileSystem, archive, suffix, destDir string, out *installlog.Log, prefix string) (string, error) {
	a, err := Open(fs, archive)
	if err != nil {
		return "", err
	}
	defer a.Close()

	e := a.Find(suffix)
	if e == nil {
		return "", newError(archive, suffix, ErrNoMatch)
	}
	dst := filepath.Join(destDir, path.Base(suffix))
	if out != nil {
		out.Add(fmt.Sprintf("%sextracting %s", prefix, path.Base(suffix)))
	}
	log.Debug("extracting {{entry}} from {{archive}} to {{dest}}", "entry", e.Name, "archive", archive, "dest", dst)
	if err := copyEntry(fs, e, dst, 0); err != nil {
		return "", newError(archive, e.Name, err)
	}
	return dst, nil
}

// ExtractAllMatching copies every entry whose name ends with suffix to
// destDir, keeping the relative entry path. Existing files are replaced.
// It reports one log line per extracted file and returns the number of
// extracted files.
func ExtractAllMatching(fs vfs.FileSystem, archive, suffix, destDir string, out *installlog.Log, prefix string) (int, error) {
	a, err := Open(fs, archive)
	if err != nil {
		return 0, err
	}
	defer a.Close()

	count := 0
	for _, e := range a.File {
		if e.FileInfo().IsDir() || !strings.HasSuffix(e.Name, suffix) {
			continue
		}
		dst, err := Target(destDir, e.Name)
		if err != nil {
			return count, newError(archive, e.Name, err)
		}
		if out != nil {
			out.Add(fmt.Sprintf("%sextracting %s", prefix, dst))
		}
		if err := copyEntry(fs, e, dst, 0); err != nil {
			return count, newError(archive, e.Name, err)
		}
		count++
	}
	log.Debug("extracted {{count}} {{suffix}} entries from {{archive}}", "count", count, "suffix", suffix, "archive", archive)
	return count, nil
}

// ExtractAll unpacks the complete archive into destDir, creating
// directory entries and keeping the file modes stored in the archive.
func ExtractAll(fs vfs.FileSystem, archive, destDir string) error {
	a, err := Open(fs, archive)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, e := range a.File {
		dst, err := Target(destDir, e.Name)
		if err != nil {
			return newError(archive, e.Name, err)
		}
		if e.FileInfo().IsDir() {
			if err := fs.MkdirAll(dst, 0o755); err != nil {
				return newError(archive, e.Name, err)
			}
			continue
		}
		if err := copyEntry(fs, e, dst, e.Mode().Perm()); err != nil {
			return newError(archive, e.Name, err)
		}
	}
	return nil
}

// Target maps an entry name to its location below destDir. Names
// escaping destDir are rejected.
func Target(destDir, name string) (string, error) {
	rel := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrIllegalPath, name)
	}
	return filepath.Join(destDir, filepath.FromSlash(rel)), nil
}

func copyEntry(fs vfs.FileSystem, e *zip.File, dst string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := fs.Remove(dst); err != nil && !errors.Is(err, vfs.ErrNotExist) {
		return err
	}
	r, err := e.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
