// Package utils holds small helpers shared by the emulator and its
// command line front end.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: archive contains no files")

// romExtensions are preferred when picking a file out of an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Files ending in .gz, .zip or .7z are decompressed; from archives the
// first ROM image is returned, or the first file if none looks like a
// ROM. Anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		files := make([]archiveFile, 0, len(r.File))
		for _, f := range r.File {
			files = append(files, archiveFile{f.Name, f.FileInfo().IsDir(), f.Open})
		}
		return readArchive(filename, files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		files := make([]archiveFile, 0, len(r.File))
		for _, f := range r.File {
			files = append(files, archiveFile{f.Name, f.FileInfo().IsDir(), f.Open})
		}
		return readArchive(filename, files)
	default:
		return data, nil
	}
}

// archiveFile is a file in a zip or 7z archive.
type archiveFile struct {
	name  string
	isDir bool
	open  func() (io.ReadCloser, error)
}

func readArchive(filename string, files []archiveFile) ([]byte, error) {
	var pick *archiveFile
	for i := range files {
		f := &files[i]
		if f.isDir {
			continue
		}
		if pick == nil {
			pick = f
		}
		if isROM(f.name) {
			pick = f
			break
		}
	}
	if pick == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyArchive, filename)
	}

	rc, err := pick.open()
	if err != nil {
		return nil, fmt.Errorf("utils: %s: %s: %w", filename, pick.name, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func isROM(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range romExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
