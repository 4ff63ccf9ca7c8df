// Package export names and saves rendered note artifacts.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/renameio"
	"golang.org/x/text/unicode/norm"
)

// Format is an export artifact type.
type Format string

// Formats.
const (
	PDF  Format = "PDF"
	Word Format = "WORD"
)

// Ext returns the file extension of the format, without a leading dot.
func (f Format) Ext() string {
	switch f {
	case PDF:
		return "pdf"
	case Word:
		return "docx"
	default:
		return ""
	}
}

// ParseFormat matches the format names accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "pdf", "PDF":
		return PDF, nil
	case "word", "WORD", "docx", "doc":
		return Word, nil
	default:
		return "", fmt.Errorf("unknown export format %q, want pdf or word", s)
	}
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f\x7f]`)
)

// Filename derives the artifact file name for a note title: every whitespace
// run becomes an underscore, followed by "_Notes" and the format extension.
// Path separators and other characters not allowed in file names also become
// underscores, so the name never leaves the export directory.
func Filename(title string, format Format) string {
	title = norm.NFC.String(title)
	title = whitespace.ReplaceAllLiteralString(title, "_")
	title = unsafeName.ReplaceAllLiteralString(title, "_")
	return title + "_Notes." + format.Ext()
}

// Save atomically writes data to name within dir, creating dir if needed.
// Either the complete file is in place afterwards, or none is.
func Save(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("unable to save %v: %w", path, err)
	}
	return path, nil
}
