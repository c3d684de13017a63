package extract

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPlainText = "text/plain"
	MIMEPDF       = "application/pdf"
)

// Document is an uploaded CV before its text has been extracted.
// Only the extracted text is kept once the document has been consumed.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// NewDocument builds a Document. The declared MIME type wins; when it is empty
// the type is detected from the payload.
func NewDocument(name string, data []byte, declared string) Document {
	mimeType := normalizeMIMEType(declared)
	if mimeType == "" {
		mimeType = detectMIMEType(name, data)
	}

	return Document{
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
	}
}

func detectMIMEType(name string, data []byte) string {
	detected := normalizeMIMEType(mimetype.Detect(data).String())

	// Short plain text files are sometimes sniffed as a generic binary stream.
	if detected == "application/octet-stream" && strings.EqualFold(filepath.Ext(name), ".txt") {
		return MIMEPlainText
	}

	return detected
}

func normalizeMIMEType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
