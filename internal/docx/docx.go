// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads and writes the word-processor document container.
// A .docx file is a ZIP package; the citation pipeline only ever touches
// the body part (word/document.xml), so this package exposes the body as
// raw text and repackages everything else byte-for-byte.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// bodyPart is the package path of the document body.
const bodyPart = "word/document.xml"

// Document is one opened container: the raw body text plus the source
// path for repackaging.
type Document struct {
	// Body is the raw XML text of word/document.xml.
	Body string

	path string
}

// Open reads the container at path and extracts the body part.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != bodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", bodyPart, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", bodyPart, err)
		}
		return &Document{Body: string(data), path: path}, nil
	}

	return nil, fmt.Errorf("document %s has no %s", path, bodyPart)
}

// WritePatched writes a copy of the container to outPath with the body
// part replaced by body. Every other part is copied through unchanged,
// preserving the package's manifest, relationships, and media exactly.
func (d *Document) WritePatched(outPath, body string) (err error) {
	zr, err := zip.OpenReader(d.path)
	if err != nil {
		return fmt.Errorf("reopening document %s: %w", d.path, err)
	}
	defer zr.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", outPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		if f.Name == bodyPart {
			w, werr := zw.Create(f.Name)
			if werr != nil {
				return fmt.Errorf("writing %s: %w", bodyPart, werr)
			}
			if _, werr := io.WriteString(w, body); werr != nil {
				return fmt.Errorf("writing %s: %w", bodyPart, werr)
			}
			continue
		}
		if cerr := copyEntry(zw, f); cerr != nil {
			return cerr
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing output %s: %w", outPath, err)
	}
	return nil
}

func copyEntry(zw *zip.Writer, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading part %s: %w", f.Name, err)
	}
	defer rc.Close()

	header := f.FileHeader
	w, err := zw.CreateHeader(&header)
	if err != nil {
		return fmt.Errorf("writing part %s: %w", f.Name, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copying part %s: %w", f.Name, err)
	}
	return nil
}
