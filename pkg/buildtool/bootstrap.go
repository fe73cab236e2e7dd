package buildtool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/dwcj/installer/pkg/archive"
	"github.com/dwcj/installer/pkg/utils"
)

// EXECUTABLE is rwxrwxr-x.
const EXECUTABLE os.FileMode = 0o775

// Bootstrapper provides a local copy of the build tool. The tool is
// downloaded and unpacked on first use only.
type Bootstrapper struct {
	fs     vfs.FileSystem
	client *http.Client
	tool   Tool
}

func NewBootstrapper(tool Tool, client *http.Client, fss ...vfs.FileSystem) *Bootstrapper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Bootstrapper{
		fs:     utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
		client: client,
		tool:   tool.Complete(),
	}
}

func (b *Bootstrapper) Tool() Tool {
	return b.tool
}

// EnsureAvailable returns the path of the tool binary below installDir,
// installing the tool if the binary is not present.
func (b *Bootstrapper) EnsureAvailable(ctx context.Context, installDir string) (string, error) {
	bin := b.tool.BinaryPath(installDir)
	if _, err := b.fs.Stat(bin); err == nil {
		log.Debug("using build tool {{binary}}", "binary", bin)
		return bin, nil
	}

	log.Info("installing build tool from {{url}} into {{dir}}", "url", b.tool.URL, "dir", installDir)
	if err := b.fs.MkdirAll(installDir, 0o755); err != nil {
		return "", &BootstrapError{Op: "create", Path: installDir, Err: err}
	}
	download := filepath.Join(installDir, DOWNLOAD)
	if err := b.download(ctx, download); err != nil {
		return "", err
	}
	if err := archive.ExtractAll(b.fs, download, installDir); err != nil {
		return "", &BootstrapError{Op: "unpack", Path: download, Err: err}
	}
	if err := b.fs.Remove(download); err != nil {
		return "", &BootstrapError{Op: "remove", Path: download, Err: err}
	}
	for _, p := range []string{bin, b.tool.BatchBinaryPath(installDir)} {
		if err := b.fs.Chmod(p, EXECUTABLE); err != nil {
			return "", &BootstrapError{Op: "chmod", Path: p, Err: err}
		}
	}
	return bin, nil
}

func (b *Bootstrapper) download(ctx context.Context, dst string) error {
	if err := b.fs.RemoveAll(dst); err != nil {
		return &BootstrapError{Op: "remove", Path: dst, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.tool.URL, nil)
	if err != nil {
		return &BootstrapError{Op: "download", Path: b.tool.URL, Err: err}
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return &BootstrapError{Op: "download", Path: b.tool.URL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &BootstrapError{Op: "download", Path: b.tool.URL, Err: fmt.Errorf("request failed with status %s", resp.Status)}
	}

	f, err := b.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &BootstrapError{Op: "create", Path: dst, Err: err}
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &BootstrapError{Op: "download", Path: b.tool.URL, Err: err}
	}
	log.Debug("downloaded {{size}} bytes to {{file}}", "size", n, "file", dst)
	return nil
}
