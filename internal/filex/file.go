// Package filex provides helpers for describing local files selected by the
// operator before they are staged for upload.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Description holds everything the upload pipeline needs to know about a
// local file: its base name, size, and sniffed MIME type.
type Description struct {
	Name      string
	Path      string
	SizeBytes int64
	MIMEType  string
}

// Describe stats path and sniffs its MIME type from content. The type comes
// from the file's leading bytes, not its extension, so a renamed file cannot
// masquerade as an allowed type.
func Describe(path string) (*Description, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return &Description{
		Name:      filepath.Base(path),
		Path:      path,
		SizeBytes: info.Size(),
		MIMEType:  mt.String(),
	}, nil
}
