// Package archive packs a catalog directory into a single distributable
// bundle and unpacks it again. Bundles are xz-compressed tar archives.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// CreateTarXz packs srcDir into a tar.xz bundle at dstPath. Entry names are
// relative to srcDir; timestamps are normalized so packing is reproducible
// up to the archive creation time.
func CreateTarXz(srcDir, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return cperrors.NewIO("mkdir", filepath.Dir(dstPath), err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return cperrors.NewIO("create", dstPath, err)
	}
	defer out.Close()

	xw, err := xz.NewWriter(out)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	now := time.Now()
	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}
		header.ModTime = now
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("pack %s: %w", srcDir, err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("close xz: %w", err)
	}
	return out.Close()
}

// ExtractTarXz unpacks a bundle into dstDir. Entries escaping dstDir are
// rejected.
func ExtractTarXz(archivePath, dstDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return cperrors.NewIO("open", archivePath, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("xz reader: %w", err)
	}
	tr := tar.NewReader(xr)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		target, err := securePath(dstDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return cperrors.NewIO("mkdir", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return cperrors.NewIO("mkdir", filepath.Dir(target), err)
			}
			if err := extractFile(target, tr, header.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported entry type %q in %s", header.Typeflag, header.Name)
		}
	}
}

// securePath joins an archive entry name onto dstDir, refusing absolute
// names and parent-directory escapes.
func securePath(dstDir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("unsafe entry path %q: %w", name, cperrors.ErrInvalidInput)
	}
	return filepath.Join(dstDir, clean), nil
}

func extractFile(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return cperrors.NewIO("create", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return cperrors.NewIO("write", target, err)
	}
	return out.Close()
}
