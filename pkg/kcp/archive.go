// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ArchiveExt is the file extension of packed package artifacts.
const ArchiveExt = ".kcp"

// archive packs the contents of root into dest/<name>.kcp (a gzipped
// tarball) and returns the artifact path. Symlinks are skipped.
func archive(name, root, dest string) (string, error) {
	target := filepath.Join(dest, name+ArchiveExt)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
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
	if walkErr != nil {
		return "", fmt.Errorf("failed to pack %s: %w", root, walkErr)
	}

	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}

	return target, nil
}

// unarchive unpacks a .kcp artifact into dest. Entries escaping dest are
// rejected.
func unarchive(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}

		name := filepath.FromSlash(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("archive entry %q escapes destination", hdr.Name)
		}
		path := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, hdr.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("failed to unpack directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to unpack file: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return fmt.Errorf("failed to unpack file: %w", err)
			}
			if _, err := io.Copy(f, tr); err != nil { //nolint:gosec // packages are trusted local artifacts
				f.Close()
				return fmt.Errorf("failed to unpack file: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to unpack file: %w", err)
			}
		default:
			// Symlinks and special files are dropped on pack; ignore any
			// that show up here.
		}
	}
}
