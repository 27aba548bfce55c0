package ingestion

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Supported formats, keyed by extension without the dot.
var (
	plainFormats    = map[string]bool{"txt": true, "md": true, "json": true}
	documentFormats = map[string]bool{"pdf": true, "docx": true, "doc": true, "rtf": true, "odt": true}
	htmlFormats     = map[string]bool{"html": true, "htm": true}
)

// FormatOf returns the lowercased extension of name without the dot.
func FormatOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// IsSupported reports whether ExtractReader can handle name.
func IsSupported(name string) bool {
	format := FormatOf(name)
	return plainFormats[format] || documentFormats[format] || htmlFormats[format]
}

// ExtractText reads the file at path and returns its text content.
func ExtractText(path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, &ExtractionError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return ExtractReader(path, f)
}

// ExtractReader returns the text content of r, choosing an extractor from
// the extension of name. Plain text is returned as-is; office documents and
// PDFs go through docconv; HTML is flattened with list items as bullets.
func ExtractReader(name string, r io.Reader) (string, *Metadata, error) {
	format := FormatOf(name)

	var text string
	switch {
	case plainFormats[format]:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", nil, &ExtractionError{Source: name, Message: "failed to read text", Cause: err}
		}
		text = string(data)
	case documentFormats[format]:
		res, err := docconv.Convert(r, docconv.MimeTypeByExtension(name), false)
		if err != nil {
			return "", nil, &ExtractionError{Source: name, Message: "failed to convert document", Cause: err}
		}
		text = res.Body
	case htmlFormats[format]:
		var err error
		text, err = HTMLToText(r)
		if err != nil {
			return "", nil, &ExtractionError{Source: name, Message: "failed to parse HTML", Cause: err}
		}
	default:
		return "", nil, &UnsupportedFormatError{Source: name, Format: format}
	}

	return text, NewMetadata(text, name, format), nil
}
