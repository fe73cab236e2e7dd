package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Request describes a single installation.
type Request struct {
	// SourceArchivePath is the location of the archive to install.
	SourceArchivePath string
	// ArchiveFileName is the file name of the archive. The part before
	// the first dot is used as base name of the application.
	ArchiveFileName   string
	HostHomeDirectory string
	DeployRoot        string
}

// BaseName returns the application base name derived from the archive
// file name.
func (r *Request) BaseName() (string, error) {
	i := strings.Index(r.ArchiveFileName, ".")
	if i < 0 {
		return "", fmt.Errorf("archive file name %q has no extension", r.ArchiveFileName)
	}
	if i == 0 {
		return "", fmt.Errorf("archive file name %q has no base name", r.ArchiveFileName)
	}
	return r.ArchiveFileName[:i], nil
}

func (r *Request) Validate() error {
	if r.SourceArchivePath == "" {
		return fmt.Errorf("source archive required")
	}
	if r.DeployRoot == "" {
		return fmt.Errorf("deploy root required")
	}
	if strings.ContainsAny(r.ArchiveFileName, `/\`) {
		return fmt.Errorf("archive file name %q must not contain a path", r.ArchiveFileName)
	}
	_, err := r.BaseName()
	return err
}

// StagingDir returns the directory the application is installed to.
func (r *Request) StagingDir() (string, error) {
	base, err := r.BaseName()
	if err != nil {
		return "", err
	}
	return filepath.Join(r.DeployRoot, base), nil
}
