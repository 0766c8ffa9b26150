// Package extract converts uploaded resume documents into plain text.
// Only PDF and DOCX containers are supported; anything else is reported as
// unsupported so the caller can warn and skip the file.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for file types outside the hardened
// PDF/DOCX path.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// FromBytes extracts plain text from the named document. Failures never
// panic; they surface as an empty string plus an error the caller is expected
// to log and move past.
func FromBytes(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return fromPDF(data)
	case ".docx":
		return fromDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

func fromPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	raw, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return string(raw), nil
}

func fromDOCX(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	return flattenDocumentXML(content), nil
}

// flattenDocumentXML turns the word/document.xml payload into plain text:
// paragraph boundaries become newlines, remaining tags are dropped and XML
// entities unescaped.
func flattenDocumentXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	return strings.TrimSpace(content)
}
