package testutils

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// ZipEntry describes a file in a generated zip archive.
// Names ending with a slash describe directory entries.
type ZipEntry struct {
	Name    string
	Content string
	Mode    os.FileMode
}

// ZipData creates an in-memory zip archive containing the given entries
// in the given order.
func ZipData(entries ...ZipEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		h := &zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		}
		if strings.HasSuffix(e.Name, "/") {
			h.Method = zip.Store
			h.SetMode(os.ModeDir | 0o755)
		} else if e.Mode != 0 {
			h.SetMode(e.Mode)
		}
		f, err := w.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(e.Content)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteZip stores a generated zip archive at path, creating the parent
// directory if required.
func WriteZip(fs vfs.FileSystem, path string, entries ...ZipEntry) error {
	data, err := ZipData(entries...)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return vfs.WriteFile(fs, path, data, 0o644)
}
