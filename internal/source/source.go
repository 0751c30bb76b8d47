// Package source extracts positioned text spans from document files. It
// is the upstream collaborator of the layout analyzer: everything after
// span extraction is format-agnostic.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doclayout/internal/layout"
)

// ErrUnsupported reports a file extension with no span provider.
var ErrUnsupported = errors.New("unsupported file format")

// Document is the extraction output: page-ordered spans plus a title.
type Document struct {
	Title string
	Pages []layout.PageInput
}

// Provider extracts spans from one file format.
type Provider interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// SourceError tags failures of the span source itself (unreadable or
// corrupt input) so callers can tell them apart from a valid document
// that simply has no content.
type SourceError struct {
	Format string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read %s source: %v", e.Format, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate provider for a filename.
func ForFile(filename string) (Provider, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFProvider{}, nil
	case ".docx":
		return &DOCXProvider{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
