package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/san-kum/gravsandbox/internal/body"
)

// Ext is the only file extension the sandbox reads and writes.
const Ext = "xml"

// Engine loads and saves the session document as XML.
type Engine struct {
	Doc *body.Document
}

func NewEngine(doc *body.Document) *Engine {
	return &Engine{Doc: doc}
}

// Load replaces the document with the content of path. The file is decoded
// in full first; on any error the document is left as it was.
func (e *Engine) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Op: "load", Path: path, Err: err}
	}
	bodies, err := Decode(bytes.NewReader(data))
	if err != nil {
		return &Error{Op: "load", Path: path, Err: err}
	}
	e.Doc.Replace(bodies)
	return nil
}

// Save writes the document to path through a temp file in the same
// directory, so a failed save never leaves a partial target behind.
func (e *Engine) Save(path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, e.Doc.Bodies()); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	return nil
}

// writeAtomic replaces path with data. An existing target keeps its
// permission bits; a new one gets 0644.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, unwrapPath(err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// unwrapPath strips the temp file name from a *fs.PathError.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// LoadFile decodes path without touching any document.
func LoadFile(path string) ([]body.Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "load", Path: path, Err: err}
	}
	defer f.Close()
	bodies, err := Decode(f)
	if err != nil {
		return nil, &Error{Op: "load", Path: path, Err: err}
	}
	return bodies, nil
}

// SaveFile encodes bodies to path without a document.
func SaveFile(path string, bodies []body.Body) error {
	var buf bytes.Buffer
	if err := Encode(&buf, bodies); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	return nil
}
