// Package fs provides file-based storage: composed documents written to
// disk and a directory-backed key-value store.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/resumekit"
)

// Writer writes composed outputs into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePDF writes doc under its download filename and returns the path.
func (w *Writer) WritePDF(doc *resumekit.PDFDocument) (string, error) {
	if doc == nil || len(doc.Data) == 0 {
		return "", resumekit.Errorf(resumekit.EINVALID, "no PDF to write")
	}
	name := doc.Filename
	if name == "" {
		name = resumekit.PDFFilename("")
	}
	return w.write(name, doc.Data)
}

// WriteMarkdown writes markdown under name, or MarkdownFilename when name
// is empty, and returns the path.
func (w *Writer) WriteMarkdown(name, markdown string) (string, error) {
	if name == "" {
		name = resumekit.MarkdownFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".md") {
		name += ".md"
	}
	return w.write(name, []byte(markdown))
}

func (w *Writer) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(w.baseDir, filepath.Base(name))
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes to a temporary sibling and renames it over path
// so readers never observe a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
